package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lturcios/turicash-backend/internal/apierror"
	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/model"
	"github.com/lturcios/turicash-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory TicketRepository stub ──────────────────────────────────────────

type stubTicketRepo struct {
	nextID    uint
	headers   map[string]*model.Ticket // keyed by local UUID
	items     map[uint][]model.TicketItem
	failOn    string // local UUID whose header insert fails
	failItems bool
	listRows  []dto.TicketRow
	lastQuery repository.TicketQuery
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{
		headers: make(map[string]*model.Ticket),
		items:   make(map[uint][]model.TicketItem),
	}
}

func (r *stubTicketRepo) DB() *gorm.DB { return nil }

func (r *stubTicketRepo) CreateHeaderTx(_ context.Context, _ *gorm.DB, t *model.Ticket) (bool, error) {
	if t.LocalTicketUUID == r.failOn {
		return false, errors.New("insert failed")
	}
	if _, exists := r.headers[t.LocalTicketUUID]; exists {
		return false, nil
	}
	r.nextID++
	t.ID = r.nextID
	cloned := *t
	r.headers[t.LocalTicketUUID] = &cloned
	return true, nil
}

func (r *stubTicketRepo) CreateItemsTx(_ context.Context, _ *gorm.DB, items []model.TicketItem) error {
	if r.failItems {
		return errors.New("items insert failed")
	}
	r.items[items[0].TicketID] = append(r.items[items[0].TicketID], items...)
	return nil
}

func (r *stubTicketRepo) List(_ context.Context, q repository.TicketQuery) ([]dto.TicketRow, error) {
	r.lastQuery = q
	return r.listRows, nil
}

func (r *stubTicketRepo) ItemsByTicketID(_ context.Context, ticketID uint) ([]model.TicketItem, error) {
	return r.items[ticketID], nil
}

func (r *stubTicketRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.headers)), nil
}

func errorKind(t *testing.T, err error) apierror.Kind {
	t.Helper()
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Kind
}

func submission(localUUID string, items ...dto.TicketItemSubmission) dto.TicketSubmission {
	return dto.TicketSubmission{
		LocalUUID:         localUUID,
		UserID:            1,
		LocationID:        1,
		CorrelativeNumber: 1,
		TotalAmount:       decimal.NewFromFloat(25.50),
		PaymentType:       "cash",
		CreatedAtLocal:    time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC).UnixMilli(),
		Items:             items,
	}
}

// ── SyncBatch ────────────────────────────────────────────────────────────────

func TestSyncBatchPersistsTicketWithItems(t *testing.T) {
	repo := newStubTicketRepo()
	svc := NewTicketService(repo, nil)

	req := dto.SyncRequest{Tickets: []dto.TicketSubmission{
		submission("a1",
			dto.TicketItemSubmission{ItemID: 10, Quantity: 2, UnitPrice: decimal.NewFromFloat(10.00), ItemName: "Cafe"},
			dto.TicketItemSubmission{ItemID: 11, Quantity: 1, UnitPrice: decimal.NewFromFloat(5.50), ItemName: "Medialuna"},
		),
	}}

	persisted, err := svc.SyncBatch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, persisted)

	header := repo.headers["a1"]
	require.NotNil(t, header)
	assert.True(t, header.TotalAmount.Equal(decimal.NewFromFloat(25.50)))
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), header.CreatedAtLocal.UTC())

	lines := repo.items[header.ID]
	require.Len(t, lines, 2)
	assert.Equal(t, "Cafe", lines[0].ItemName)
	assert.Equal(t, header.ID, lines[1].TicketID)
}

func TestSyncBatchEmpty(t *testing.T) {
	svc := NewTicketService(newStubTicketRepo(), nil)

	_, err := svc.SyncBatch(context.Background(), dto.SyncRequest{})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, errorKind(t, err))
	assert.Contains(t, err.Error(), "No se recibieron tickets validos")
}

func TestSyncBatchSkipsDuplicates(t *testing.T) {
	repo := newStubTicketRepo()
	svc := NewTicketService(repo, nil)

	first := dto.SyncRequest{Tickets: []dto.TicketSubmission{
		submission("a1", dto.TicketItemSubmission{ItemID: 10, Quantity: 1, UnitPrice: decimal.NewFromInt(5), ItemName: "Cafe"}),
	}}
	persisted, err := svc.SyncBatch(context.Background(), first)
	require.NoError(t, err)
	require.Equal(t, 1, persisted)

	// Retry the same UUID plus one new ticket: only the new one counts.
	retry := dto.SyncRequest{Tickets: []dto.TicketSubmission{
		submission("a1", dto.TicketItemSubmission{ItemID: 10, Quantity: 9, UnitPrice: decimal.NewFromInt(5), ItemName: "Cafe"}),
		submission("b2"),
	}}
	persisted, err = svc.SyncBatch(context.Background(), retry)
	require.NoError(t, err)
	assert.Equal(t, 1, persisted)

	// The duplicate's lines were not re-inserted.
	assert.Len(t, repo.items[repo.headers["a1"].ID], 1)
}

func TestSyncBatchFailureReportsStorageError(t *testing.T) {
	repo := newStubTicketRepo()
	repo.failOn = "b2"
	svc := NewTicketService(repo, nil)

	req := dto.SyncRequest{Tickets: []dto.TicketSubmission{
		submission("a1"),
		submission("b2"),
		submission("c3"),
	}}

	persisted, err := svc.SyncBatch(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 0, persisted)
	assert.Equal(t, apierror.KindStorage, errorKind(t, err))
	assert.Contains(t, err.Error(), "Error en el servidor al guardar tickets")
}

func TestSyncBatchItemFailureReportsStorageError(t *testing.T) {
	repo := newStubTicketRepo()
	repo.failItems = true
	svc := NewTicketService(repo, nil)

	req := dto.SyncRequest{Tickets: []dto.TicketSubmission{
		submission("a1", dto.TicketItemSubmission{ItemID: 10, Quantity: 1, UnitPrice: decimal.NewFromInt(5), ItemName: "Cafe"}),
	}}

	_, err := svc.SyncBatch(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apierror.KindStorage, errorKind(t, err))
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestListParsesDateRange(t *testing.T) {
	repo := newStubTicketRepo()
	svc := NewTicketService(repo, nil)

	userID := uint(4)
	_, err := svc.List(context.Background(), dto.TicketFilter{
		DateFrom: "2025-03-01",
		DateTo:   "2025-03-31",
		UserID:   &userID,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastQuery.From)
	require.NotNil(t, repo.lastQuery.To)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *repo.lastQuery.From)
	// date_to covers the whole requested day.
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC).Add(24*time.Hour-time.Millisecond), *repo.lastQuery.To)
	require.NotNil(t, repo.lastQuery.UserID)
	assert.Equal(t, uint(4), *repo.lastQuery.UserID)
}

func TestListRejectsBadDate(t *testing.T) {
	svc := NewTicketService(newStubTicketRepo(), nil)

	_, err := svc.List(context.Background(), dto.TicketFilter{DateFrom: "31/03/2025"})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, errorKind(t, err))
}
