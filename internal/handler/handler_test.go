package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lturcios/turicash-backend/internal/apierror"
	"github.com/lturcios/turicash-backend/internal/config"
	"github.com/lturcios/turicash-backend/internal/dto"
	"github.com/lturcios/turicash-backend/internal/handler"
	"github.com/lturcios/turicash-backend/internal/model"
	"github.com/lturcios/turicash-backend/internal/router"
	"github.com/lturcios/turicash-backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Service stubs ────────────────────────────────────────────────────────────

type stubAuthService struct {
	loginResp *dto.LoginResponse
	loginErr  error
}

func (s *stubAuthService) Login(context.Context, dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.loginResp, s.loginErr
}
func (s *stubAuthService) Register(context.Context, dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return &dto.RegisterResponse{Message: "Usuario registrado exitosamente", UserID: 1}, nil
}
func (s *stubAuthService) ListUsers(context.Context) ([]dto.UserRow, error) { return nil, nil }
func (s *stubAuthService) CreateUser(context.Context, dto.CreateUserRequest) (*dto.MutationResponse, error) {
	return &dto.MutationResponse{Message: "Usuario creado", ID: 1}, nil
}
func (s *stubAuthService) UpdateUser(context.Context, uint, dto.UpdateUserRequest) error { return nil }
func (s *stubAuthService) DeleteUser(context.Context, uint) error                        { return nil }

type stubTicketService struct {
	persisted int
	syncErr   error
	rows      []dto.TicketRow
}

func (s *stubTicketService) SyncBatch(context.Context, dto.SyncRequest) (int, error) {
	return s.persisted, s.syncErr
}
func (s *stubTicketService) List(context.Context, dto.TicketFilter) ([]dto.TicketRow, error) {
	return s.rows, nil
}
func (s *stubTicketService) ItemsByTicketID(context.Context, uint) ([]model.TicketItem, error) {
	return nil, nil
}

type stubLocationService struct{}

func (stubLocationService) List(context.Context) ([]model.Location, error) { return nil, nil }
func (stubLocationService) Create(context.Context, dto.CreateLocationRequest) (*dto.MutationResponse, error) {
	return &dto.MutationResponse{Message: "Ubicacion creada", ID: 1}, nil
}
func (stubLocationService) Update(context.Context, uint, dto.UpdateLocationRequest) error {
	return nil
}
func (stubLocationService) Delete(context.Context, uint) error { return nil }

type stubItemService struct{}

func (stubItemService) List(context.Context) ([]dto.ItemRow, error) { return nil, nil }
func (stubItemService) ListForLocation(context.Context, uint) ([]dto.ItemRow, error) {
	return nil, nil
}
func (stubItemService) Create(context.Context, dto.CreateItemRequest) (*dto.MutationResponse, error) {
	return &dto.MutationResponse{Message: "Item creado", ID: 1}, nil
}
func (stubItemService) Update(context.Context, uint, dto.UpdateItemRequest) error { return nil }
func (stubItemService) Delete(context.Context, uint) error                        { return nil }

type stubDashboardService struct{}

func (stubDashboardService) Stats(context.Context) (*dto.StatsResponse, error) {
	return &dto.StatsResponse{TotalTickets: 5}, nil
}
func (stubDashboardService) SalesByPeriod(context.Context, dto.DashboardFilter) ([]dto.PeriodSalesRow, error) {
	return nil, nil
}
func (stubDashboardService) TopItems(context.Context, dto.DashboardFilter) ([]dto.TopItemRow, error) {
	return nil, nil
}
func (stubDashboardService) SalesByLocation(context.Context, dto.DashboardFilter) ([]dto.LocationSalesRow, error) {
	return nil, nil
}
func (stubDashboardService) SalesByUser(context.Context, dto.DashboardFilter) ([]dto.UserSalesRow, error) {
	return nil, nil
}
func (stubDashboardService) PaymentMethods(context.Context, dto.DashboardFilter) ([]dto.PaymentMethodRow, error) {
	return nil, nil
}
func (stubDashboardService) RecentActivity(context.Context, dto.DashboardFilter) ([]dto.RecentActivityRow, error) {
	return nil, nil
}
func (stubDashboardService) SalesToday(context.Context, *uint) (*dto.TodaySalesResponse, error) {
	return &dto.TodaySalesResponse{}, nil
}
func (stubDashboardService) HourlySales(context.Context, dto.DashboardFilter) ([]dto.HourlySalesRow, error) {
	return nil, nil
}

type fixture struct {
	router *gin.Engine
	issuer *token.Issuer
	auth   *stubAuthService
	ticket *stubTicketService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		issuer: token.NewIssuer("test-secret"),
		auth:   &stubAuthService{},
		ticket: &stubTicketService{},
	}
	f.router = router.New(
		&config.Config{Env: "production"},
		f.issuer,
		router.Handlers{
			Auth:      handler.NewAuthHandler(f.auth),
			Tickets:   handler.NewTicketHandler(f.ticket),
			Locations: handler.NewLocationHandler(stubLocationService{}),
			Items:     handler.NewItemHandler(stubItemService{}),
			Users:     handler.NewUserHandler(f.auth),
			Dashboard: handler.NewDashboardHandler(stubDashboardService{}),
			Health:    handler.NewHealthHandler(nil, nil),
		},
	)
	return f
}

func (f *fixture) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// ── Auth surface ─────────────────────────────────────────────────────────────

func TestLoginEndpointSuccess(t *testing.T) {
	f := newFixture(t)
	f.auth.loginResp = &dto.LoginResponse{
		Message: "Login exitoso",
		Token:   "tok",
		User:    dto.UserSummary{ID: 1, Username: "admin", LocationID: 1, LocationName: "Centro"},
	}

	w := f.do(http.MethodPost, "/api/auth/login", `{"username":"admin","pin":"1234"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"tok"`)
}

func TestLoginEndpointValidation(t *testing.T) {
	f := newFixture(t)

	// PIN below the minimum length never reaches the service.
	w := f.do(http.MethodPost, "/api/auth/login", `{"username":"admin","pin":"12"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpointMapsServiceError(t *testing.T) {
	f := newFixture(t)
	f.auth.loginErr = apierror.New(apierror.KindUnauthenticated, "Credenciales invalidas")

	w := f.do(http.MethodPost, "/api/auth/login", `{"username":"admin","pin":"0000"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Credenciales invalidas")
}

// ── Protected surface ────────────────────────────────────────────────────────

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/tickets"},
		{http.MethodPost, "/api/tickets/sync"},
		{http.MethodGet, "/api/locations"},
		{http.MethodGet, "/api/items"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/dashboard/stats"},
	} {
		w := f.do(route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestSyncEndpointReportsPersistedCount(t *testing.T) {
	f := newFixture(t)
	f.ticket.persisted = 2

	signed, err := f.issuer.Issue(1, "admin", 1)
	require.NoError(t, err)

	body := `{"tickets":[
		{"localUuid":"a1","userId":1,"locationId":1,"correlativeNumber":1,
		 "totalAmount":25.50,"paymentType":"cash","createdAtLocal":1741617000000},
		{"localUuid":"b2","userId":1,"locationId":1,"correlativeNumber":2,
		 "totalAmount":10,"paymentType":"card","createdAtLocal":1741617100000}
	]}`
	w := f.do(http.MethodPost, "/api/tickets/sync", body, signed)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Sincronizacion exitosa. 2 tickets guardados.")
}

func TestSyncEndpointRejectsEmptyBatch(t *testing.T) {
	f := newFixture(t)

	signed, err := f.issuer.Issue(1, "admin", 1)
	require.NoError(t, err)

	w := f.do(http.MethodPost, "/api/tickets/sync", `{"tickets":[]}`, signed)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncEndpointMapsStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.ticket.syncErr = apierror.New(apierror.KindStorage, "Error en el servidor al guardar tickets.")

	signed, err := f.issuer.Issue(1, "admin", 1)
	require.NoError(t, err)

	body := `{"tickets":[{"localUuid":"a1","userId":1,"locationId":1,
		"correlativeNumber":1,"totalAmount":25.50,"paymentType":"cash",
		"createdAtLocal":1741617000000}]}`
	w := f.do(http.MethodPost, "/api/tickets/sync", body, signed)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error en el servidor al guardar tickets.")
}

func TestHealthReportsDownBackendsWithoutCrashing(t *testing.T) {
	f := newFixture(t)

	// No database or redis behind the handler: degraded, never a panic.
	w := f.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"down"`)
	assert.Contains(t, w.Body.String(), `"redis":"down"`)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestInvalidIDParam(t *testing.T) {
	f := newFixture(t)

	signed, err := f.issuer.Issue(1, "admin", 1)
	require.NoError(t, err)

	w := f.do(http.MethodDelete, "/api/items/abc", "", signed)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ID invalido")
}
