package service

import (
	"context"
	"time"

	"github.com/lturcios/turicash-backend/internal/apierror"
	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/model"
	"github.com/lturcios/turicash-backend/internal/repository"
	"github.com/lturcios/turicash-backend/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type TicketService interface {
	// SyncBatch persists a batch of offline tickets atomically and returns
	// how many were newly stored (already-synced tickets are skipped).
	SyncBatch(ctx context.Context, req dto.SyncRequest) (int, error)
	List(ctx context.Context, filter dto.TicketFilter) ([]dto.TicketRow, error)
	ItemsByTicketID(ctx context.Context, ticketID uint) ([]model.TicketItem, error)
}

type ticketService struct {
	repo       repository.TicketRepository
	dispatcher *worker.Dispatcher
}

func NewTicketService(repo repository.TicketRepository, dispatcher *worker.Dispatcher) TicketService {
	return &ticketService{repo: repo, dispatcher: dispatcher}
}

// runTx wraps fn in a database transaction. A nil db runs fn directly,
// which keeps the service testable against stubbed stores.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *ticketService) SyncBatch(ctx context.Context, req dto.SyncRequest) (int, error) {
	if len(req.Tickets) == 0 {
		return 0, apierror.New(apierror.KindValidation, "No se recibieron tickets validos.")
	}

	persisted := 0
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for i := range req.Tickets {
			sub := &req.Tickets[i]
			ticket := model.Ticket{
				LocalTicketUUID:   sub.LocalUUID,
				UserID:            sub.UserID,
				LocationID:        sub.LocationID,
				CorrelativeNumber: sub.CorrelativeNumber,
				TotalAmount:       sub.TotalAmount,
				PaymentType:       sub.PaymentType,
				CreatedAtLocal:    time.UnixMilli(sub.CreatedAtLocal),
			}
			inserted, err := s.repo.CreateHeaderTx(ctx, tx, &ticket)
			if err != nil {
				return err
			}
			if !inserted {
				// Already applied by an earlier sync attempt.
				log.Debug().Str("local_uuid", sub.LocalUUID).Msg("sync: duplicate ticket skipped")
				continue
			}

			if len(sub.Items) > 0 {
				items := make([]model.TicketItem, len(sub.Items))
				for j, it := range sub.Items {
					items[j] = model.TicketItem{
						TicketID:  ticket.ID,
						ItemID:    it.ItemID,
						Quantity:  it.Quantity,
						UnitPrice: it.UnitPrice,
						ItemName:  it.ItemName,
					}
				}
				if err := s.repo.CreateItemsTx(ctx, tx, items); err != nil {
					return err
				}
			}
			persisted++
		}
		return nil
	})
	if txErr != nil {
		return 0, apierror.Wrap(apierror.KindStorage, "Error en el servidor al guardar tickets.", txErr)
	}

	if s.dispatcher != nil && persisted > 0 {
		payload := worker.InvalidationPayload{
			LocationID: req.Tickets[0].LocationID,
			Tickets:    persisted,
		}
		if err := s.dispatcher.EnqueueCacheInvalidation(ctx, payload); err != nil {
			// Stale dashboard numbers are acceptable; the sync already committed.
			log.Warn().Err(err).Msg("sync: cache invalidation enqueue failed")
		}
	}

	return persisted, nil
}

func (s *ticketService) List(ctx context.Context, filter dto.TicketFilter) ([]dto.TicketRow, error) {
	var query repository.TicketQuery
	if filter.DateFrom != "" {
		from, err := time.Parse(dateLayout, filter.DateFrom)
		if err != nil {
			return nil, apierror.New(apierror.KindValidation, "Fecha date_from invalida (YYYY-MM-DD)")
		}
		query.From = &from
	}
	if filter.DateTo != "" {
		to, err := time.Parse(dateLayout, filter.DateTo)
		if err != nil {
			return nil, apierror.New(apierror.KindValidation, "Fecha date_to invalida (YYYY-MM-DD)")
		}
		// Inclusive upper bound: the whole requested day counts.
		end := to.Add(24*time.Hour - time.Millisecond)
		query.To = &end
	}
	query.UserID = filter.UserID
	query.LocationID = filter.LocationID

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return rows, nil
}

func (s *ticketService) ItemsByTicketID(ctx context.Context, ticketID uint) ([]model.TicketItem, error) {
	items, err := s.repo.ItemsByTicketID(ctx, ticketID)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindStorage, "Error en la base de datos", err)
	}
	return items, nil
}
