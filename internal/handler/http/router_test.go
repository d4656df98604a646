package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/config"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerTestSecret = "test-secret-key-for-jwt"

type stubAuthService struct {
	loginErr error
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if s.loginErr != nil {
		return auth.TokenResponse{}, s.loginErr
	}
	return auth.TokenResponse{AccessToken: "token", UserID: 1, Role: string(user.RoleEmployee)}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, accessToken string) error {
	return nil
}

type stubTimeBankService struct {
	timebank.TimeBankService

	balanceFor    []int64
	compensateErr error
	compensated   []timebank.CompensateRequest
}

func (s *stubTimeBankService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	s.balanceFor = append(s.balanceFor, userID)
	return 90, nil
}

func (s *stubTimeBankService) CompensateHours(ctx context.Context, req timebank.CompensateRequest) (bool, error) {
	s.compensated = append(s.compensated, req)
	if s.compensateErr != nil {
		return false, s.compensateErr
	}
	return true, nil
}

type stubAbsenceService struct {
	absence.AbsenceService

	request absence.RequestResponse
}

func (s *stubAbsenceService) GetAbsenceRequest(ctx context.Context, id int64) (absence.RequestResponse, error) {
	if id != s.request.ID {
		return absence.RequestResponse{}, absence.ErrAbsenceRequestNotFound
	}
	return s.request, nil
}

type routerFixture struct {
	router   *chi.Mux
	jwt      *jwt.JWTService
	authSvc  *stubAuthService
	timeBank *stubTimeBankService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	f := &routerFixture{
		jwt:      jwt.NewJWTService(routerTestSecret, "1h"),
		authSvc:  &stubAuthService{},
		timeBank: &stubTimeBankService{},
	}
	absences := &stubAbsenceService{request: absence.RequestResponse{ID: 7, UserID: 2}}

	f.router = NewRouter(
		config.AppConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		f.jwt,
		NewAuthHandler(f.authSvc),
		NewTimeRecordHandler(nil, f.timeBank),
		NewScheduleHandler(nil),
		NewTimeBankHandler(f.timeBank, nil),
		NewAbsenceHandler(absences),
		NewFinanceHandler(nil, nil, nil),
	)
	return f
}

func (f *routerFixture) token(t *testing.T, userID int64, role user.Role) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(userID, "someone@example.com", role)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "go_goroutines"))
}

func TestRouter_Login(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "a@example.com", Password: "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp["success"].(bool))

	f.authSvc.loginErr = auth.ErrInvalidCredentials
	w = f.do(http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "a@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_Login_InvalidJSON(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("invalid json"))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodGet, "/api/v1/time-bank/balance", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, "/api/v1/time-bank/balance", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, f.timeBank.balanceFor)
}

func TestRouter_RevokedToken(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, 2, user.RoleEmployee)

	f.jwt.RevokeToken(token, time.Now().Add(time.Hour).Unix())

	w := f.do(http.MethodGet, "/api/v1/time-bank/balance", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_EmployeeBalanceIsScoped(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, 2, user.RoleEmployee)

	w := f.do(http.MethodGet, "/api/v1/time-bank/balance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["user_id"])
	assert.Equal(t, float64(90), data["balance_minutes"])

	w = f.do(http.MethodGet, "/api/v1/time-bank/balance?user_id=3", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, []int64{2}, f.timeBank.balanceFor)
}

func TestRouter_AdminReadsAnyBalance(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, 1, user.RoleAdmin)

	w := f.do(http.MethodGet, "/api/v1/time-bank/balance?user_id=3", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{3}, f.timeBank.balanceFor)
}

func TestRouter_CompensationRequiresPermission(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, 2, user.RoleEmployee)

	body := timebank.CompensateHoursRequest{UserID: 2, CompensationDate: "2024-03-05", Minutes: 60}
	w := f.do(http.MethodPost, "/api/v1/time-bank/compensations", token, body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, f.timeBank.compensated)
}

func TestRouter_CompensationInsufficientBalance(t *testing.T) {
	f := newRouterFixture(t)
	f.timeBank.compensateErr = timebank.ErrInsufficientBalance
	token := f.token(t, 1, user.RoleAdmin)

	body := timebank.CompensateHoursRequest{UserID: 2, CompensationDate: "2024-03-05", Minutes: 600}
	w := f.do(http.MethodPost, "/api/v1/time-bank/compensations", token, body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeEnvelope(t, w)
	assert.False(t, resp["success"].(bool))
	errDetail := resp["error"].(map[string]interface{})
	assert.Equal(t, "INSUFFICIENT_BALANCE", errDetail["code"])

	require.Len(t, f.timeBank.compensated, 1)
	assert.Equal(t, int64(1), f.timeBank.compensated[0].CreatedBy)
	assert.Equal(t, int64(600), f.timeBank.compensated[0].Minutes)
}

func TestRouter_CompensationSuccess(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, 1, user.RoleAdmin)

	body := timebank.CompensateHoursRequest{UserID: 2, CompensationDate: "2024-03-05", Minutes: 30}
	w := f.do(http.MethodPost, "/api/v1/time-bank/compensations", token, body)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["compensated"])
	assert.Equal(t, float64(90), data["balance_minutes"])
	assert.Equal(t, []int64{2}, f.timeBank.balanceFor)
}

func TestRouter_AbsenceOwnership(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodGet, "/api/v1/absence-requests/7", f.token(t, 2, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/v1/absence-requests/7", f.token(t, 5, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodGet, "/api/v1/absence-requests/8", f.token(t, 1, user.RoleAdmin), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodPost, "/api/v1/absence-requests/7/approve", f.token(t, 2, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_AuditLogsAdminOnly(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodGet, "/api/v1/audit-logs", f.token(t, 2, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
