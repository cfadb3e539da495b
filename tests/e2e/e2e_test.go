//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lturcios/turicash-backend/internal/config"
	"github.com/lturcios/turicash-backend/internal/handler"
	"github.com/lturcios/turicash-backend/internal/infra"
	"github.com/lturcios/turicash-backend/internal/repository"
	"github.com/lturcios/turicash-backend/internal/router"
	"github.com/lturcios/turicash-backend/internal/service"
	"github.com/lturcios/turicash-backend/internal/token"
	"github.com/lturcios/turicash-backend/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, bearer string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test environment ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("turicash_test"),
		tcPostgres.WithUsername("turicash"),
		tcPostgres.WithPassword("turicash"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:           8000,
		Env:            "test",
		JWTSecret:      "test-secret-key",
		RedisURL:       rdURL,
		WorkerPoolSize: 1,
	}

	db, err := infra.NewDatabase(pgURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	workerCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	worker.StartPool(workerCtx, rdb, cfg.WorkerPoolSize)

	// Seed one location and one cashier.
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO locations (name, is_active, created_at, updated_at)
		VALUES ('Sucursal E2E', true, NOW(), NOW())`).Error)
	require.NoError(t, db.Exec(`INSERT INTO users (username, pin_hash, full_name, location_id, is_active, created_at, updated_at)
		SELECT 'cajero', ?, 'Cajero E2E', id, true, NOW(), NOW() FROM locations WHERE name = 'Sucursal E2E'`,
		string(hash)).Error)

	issuer := token.NewIssuer(cfg.JWTSecret)
	dispatcher := worker.NewDispatcher(rdb)

	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	itemRepo := repository.NewItemRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	authSvc := service.NewAuthService(userRepo, issuer)
	r := router.New(cfg, issuer, router.Handlers{
		Health:    handler.NewHealthHandler(db, rdb),
		Auth:      handler.NewAuthHandler(authSvc),
		Tickets:   handler.NewTicketHandler(service.NewTicketService(ticketRepo, dispatcher)),
		Locations: handler.NewLocationHandler(service.NewLocationService(locationRepo)),
		Items:     handler.NewItemHandler(service.NewItemService(itemRepo)),
		Users:     handler.NewUserHandler(authSvc),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(dashboardRepo, rdb)),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"username": "cajero", "pin": "1234"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		Token string `json:"token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.Token)

	return &testEnv{server: srv, token: loginBody.Token}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func createItem(t *testing.T, env *testEnv, name string, price float64) uint {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/items",
		jsonBody(t, map[string]any{"name": name, "price": price, "location_id": 1}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &created)
	require.NotZero(t, created.ID)
	return created.ID
}

func TestE2E_SyncAndHistory(t *testing.T) {
	env := setupTestEnv(t)
	now := time.Now().UnixMilli()

	cafeID := createItem(t, env, "Cafe", 10.00)
	medialunaID := createItem(t, env, "Medialuna", 5.50)

	batch := map[string]any{
		"tickets": []map[string]any{
			{
				"localUuid": "e2e-a1", "userId": 1, "locationId": 1,
				"correlativeNumber": 1, "totalAmount": 25.50,
				"paymentType": "cash", "createdAtLocal": now,
				"items": []map[string]any{
					{"itemId": cafeID, "quantity": 2, "unitPrice": 10.00, "itemName": "Cafe"},
					{"itemId": medialunaID, "quantity": 1, "unitPrice": 5.50, "itemName": "Medialuna"},
				},
			},
			{
				"localUuid": "e2e-b2", "userId": 1, "locationId": 1,
				"correlativeNumber": 2, "totalAmount": 10.00,
				"paymentType": "card", "createdAtLocal": now + 1000,
			},
		},
	}

	resp := do(t, env.server, "POST", "/api/tickets/sync", jsonBody(t, batch), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sync struct {
		Message string `json:"message"`
	}
	decodeJSON(t, resp, &sync)
	assert.Equal(t, "Sincronizacion exitosa. 2 tickets guardados.", sync.Message)

	// Retrying the same batch is a harmless no-op.
	retry := do(t, env.server, "POST", "/api/tickets/sync", jsonBody(t, batch), env.token)
	require.Equal(t, http.StatusCreated, retry.StatusCode)
	decodeJSON(t, retry, &sync)
	assert.Equal(t, "Sincronizacion exitosa. 0 tickets guardados.", sync.Message)

	// History lists both tickets, newest first.
	histResp := do(t, env.server, "GET", "/api/tickets", nil, env.token)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	var rows []map[string]any
	decodeJSON(t, histResp, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "e2e-b2", rows[0]["local_ticket_uuid"])
	assert.Equal(t, "cajero", rows[0]["username"])
	assert.Equal(t, "Sucursal E2E", rows[0]["location_name"])
}

func TestE2E_SyncRollsBackWholeBatch(t *testing.T) {
	env := setupTestEnv(t)
	now := time.Now().UnixMilli()

	cafeID := createItem(t, env, "Cafe", 10.00)

	// Second ticket references a nonexistent catalog item: the FK fails and
	// the first ticket must not survive either.
	batch := map[string]any{
		"tickets": []map[string]any{
			{
				"localUuid": "rb-a1", "userId": 1, "locationId": 1,
				"correlativeNumber": 1, "totalAmount": 10.00,
				"paymentType": "cash", "createdAtLocal": now,
				"items": []map[string]any{
					{"itemId": cafeID, "quantity": 1, "unitPrice": 10.00, "itemName": "Cafe"},
				},
			},
			{
				"localUuid": "rb-b2", "userId": 1, "locationId": 1,
				"correlativeNumber": 2, "totalAmount": 5.00,
				"paymentType": "cash", "createdAtLocal": now + 1000,
				"items": []map[string]any{
					{"itemId": 99999, "quantity": 1, "unitPrice": 5.00, "itemName": "Fantasma"},
				},
			},
		},
	}

	resp := do(t, env.server, "POST", "/api/tickets/sync", jsonBody(t, batch), env.token)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var failure struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	decodeJSON(t, resp, &failure)
	assert.Equal(t, "Error en el servidor al guardar tickets.", failure.Error)
	assert.NotEmpty(t, failure.Details)

	histResp := do(t, env.server, "GET", "/api/tickets", nil, env.token)
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	var rows []map[string]any
	decodeJSON(t, histResp, &rows)
	assert.Empty(t, rows)
}

func TestE2E_DashboardStats(t *testing.T) {
	env := setupTestEnv(t)
	now := time.Now().UnixMilli()

	batch := map[string]any{
		"tickets": []map[string]any{{
			"localUuid": "e2e-stats-1", "userId": 1, "locationId": 1,
			"correlativeNumber": 1, "totalAmount": 42.00,
			"paymentType": "cash", "createdAtLocal": now,
		}},
	}
	resp := do(t, env.server, "POST", "/api/tickets/sync", jsonBody(t, batch), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	statsResp := do(t, env.server, "GET", "/api/dashboard/stats", nil, env.token)
	require.Equal(t, http.StatusOK, statsResp.StatusCode)
	var stats struct {
		TotalTickets int64 `json:"totalTickets"`
		TotalUsers   int64 `json:"totalUsers"`
	}
	decodeJSON(t, statsResp, &stats)
	assert.Equal(t, int64(1), stats.TotalTickets)
	assert.Equal(t, int64(1), stats.TotalUsers)

	todayResp := do(t, env.server, "GET", "/api/dashboard/sales-today", nil, env.token)
	require.Equal(t, http.StatusOK, todayResp.StatusCode)
	var today struct {
		TicketCount int64 `json:"ticket_count"`
	}
	decodeJSON(t, todayResp, &today)
	assert.Equal(t, int64(1), today.TicketCount)
}

func TestE2E_SalesByPeriodServesMostRecentPeriods(t *testing.T) {
	env := setupTestEnv(t)

	// One ticket on each of three consecutive days. UTC throughout: the
	// container database renders to_char in its own (UTC) session zone.
	base := time.Now().UTC().Add(-48 * time.Hour)
	tickets := make([]map[string]any, 3)
	for i := range tickets {
		tickets[i] = map[string]any{
			"localUuid": fmt.Sprintf("period-%d", i), "userId": 1, "locationId": 1,
			"correlativeNumber": i + 1, "totalAmount": 10.00,
			"paymentType":    "cash",
			"createdAtLocal": base.Add(time.Duration(i) * 24 * time.Hour).UnixMilli(),
		}
	}
	resp := do(t, env.server, "POST", "/api/tickets/sync",
		jsonBody(t, map[string]any{"tickets": tickets}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// limit=2 must keep the two newest days, oldest-first.
	periodResp := do(t, env.server, "GET", "/api/dashboard/sales-by-period?period=day&limit=2", nil, env.token)
	require.Equal(t, http.StatusOK, periodResp.StatusCode)
	var rows []struct {
		Period string `json:"period"`
	}
	decodeJSON(t, periodResp, &rows)
	require.Len(t, rows, 2)

	dayFmt := "2006-01-02"
	assert.Equal(t, base.Add(24*time.Hour).Format(dayFmt), rows[0].Period)
	assert.Equal(t, base.Add(48*time.Hour).Format(dayFmt), rows[1].Period)
	assert.Less(t, rows[0].Period, rows[1].Period)
}

func TestE2E_ItemCatalogByLocation(t *testing.T) {
	env := setupTestEnv(t)

	create := do(t, env.server, "POST", "/api/items",
		jsonBody(t, map[string]any{"name": "Cafe", "price": 10.50, "location_id": 1}), env.token)
	require.Equal(t, http.StatusCreated, create.StatusCode)
	create.Body.Close()

	mine := do(t, env.server, "GET", "/api/items/active", nil, env.token)
	require.Equal(t, http.StatusOK, mine.StatusCode)
	var items []map[string]any
	decodeJSON(t, mine, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Cafe", items[0]["name"])
}
