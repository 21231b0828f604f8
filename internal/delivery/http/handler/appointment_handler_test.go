package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agenda-backend/config"
	"agenda-backend/internal/delivery/dto"
	deliveryHttp "agenda-backend/internal/delivery/http"
	"agenda-backend/internal/delivery/http/handler"
	"agenda-backend/internal/delivery/http/middleware"
	"agenda-backend/internal/domain/entity"
	pkgjwt "agenda-backend/pkg/jwt"
	"agenda-backend/pkg/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAppointmentUsecase lets the route tests assert whether the request made
// it through the middleware and scope checks.
type fakeAppointmentUsecase struct {
	createCalls int
	listCalls   int
}

func (u *fakeAppointmentUsecase) CreateAppointment(_ context.Context, companyID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	u.createCalls++
	return &dto.AppointmentResponse{
		ID:        uuid.New(),
		Date:      req.Date,
		Hour:      req.Hour,
		UserID:    req.UserID,
		CompanyID: companyID,
		ServiceID: req.ServiceID,
	}, nil
}

func (u *fakeAppointmentUsecase) GetAppointmentDetail(_ context.Context, id uuid.UUID) (*dto.AppointmentDetailResponse, error) {
	return &dto.AppointmentDetailResponse{Identifier: id}, nil
}

func (u *fakeAppointmentUsecase) ListCompanyAppointments(_ context.Context, _ uuid.UUID) (*dto.AppointmentListResponse, error) {
	u.listCalls++
	return &dto.AppointmentListResponse{}, nil
}

type routerEnv struct {
	router      http.Handler
	jwtService  *pkgjwt.JWTService
	redis       *redis.Client
	appointment *fakeAppointmentUsecase
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	jwtService := pkgjwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		PendingExpiry: 5 * time.Minute,
	})
	customValidator := validator.NewValidator()

	appointmentUsecase := &fakeAppointmentUsecase{}
	router := deliveryHttp.NewRouter(
		handler.NewAuthHandler(nil, customValidator),
		handler.NewUserHandler(nil, customValidator),
		handler.NewCompanyHandler(nil, customValidator),
		handler.NewServiceHandler(nil, customValidator),
		handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		handler.NewAuditLogHandler(nil),
		middleware.NewAuthMiddleware(jwtService, redisClient),
		middleware.NewCORSMiddleware(),
	)

	return &routerEnv{
		router:      router.Setup(),
		jwtService:  jwtService,
		redis:       redisClient,
		appointment: appointmentUsecase,
	}
}

func (e *routerEnv) token(t *testing.T, role entity.RoleName, companyID *uuid.UUID) string {
	t.Helper()
	userID := uuid.New()
	token, tokenID, err := e.jwtService.GenerateAccessToken(userID, "user@example.com", role, companyID)
	require.NoError(t, err)
	key := fmt.Sprintf("access_token:%s:%s", userID, tokenID)
	require.NoError(t, e.redis.Set(context.Background(), key, "valid", time.Minute).Err())
	return token
}

func (e *routerEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func createBody() string {
	return fmt.Sprintf(`{"date":"%s","hour":"10:00","user_id":"%s","service_id":"%s"}`,
		time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"), uuid.New(), uuid.New())
}

func TestCreateAppointmentRoute_CompanyScope(t *testing.T) {
	env := newRouterEnv(t)
	companyA := uuid.New()
	companyB := uuid.New()

	// Token scoped to company A cannot book in company B.
	for _, role := range []entity.RoleName{entity.RoleAdmin, entity.RoleClient} {
		token := env.token(t, role, &companyA)
		rec := env.do(http.MethodPost, "/company/"+companyB.String()+"/appointment/create", token, createBody())
		assert.Equal(t, http.StatusForbidden, rec.Code, "role %s", role)
	}
	assert.Equal(t, 0, env.appointment.createCalls)

	// Matching company scope reaches the usecase.
	adminToken := env.token(t, entity.RoleAdmin, &companyB)
	rec := env.do(http.MethodPost, "/company/"+companyB.String()+"/appointment/create", adminToken, createBody())
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, env.appointment.createCalls)

	// Root carries no company and may book anywhere.
	rootToken := env.token(t, entity.RoleRoot, nil)
	rec = env.do(http.MethodPost, "/company/"+companyA.String()+"/appointment/create", rootToken, createBody())
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, env.appointment.createCalls)
}

func TestListCompanyAppointmentsRoute_Access(t *testing.T) {
	env := newRouterEnv(t)
	companyA := uuid.New()
	companyB := uuid.New()

	// Root bypasses the company match and may list any company.
	rootToken := env.token(t, entity.RoleRoot, nil)
	rec := env.do(http.MethodGet, "/company/"+companyA.String()+"/appointments", rootToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.appointment.listCalls)

	// Admins only within their own company.
	adminToken := env.token(t, entity.RoleAdmin, &companyA)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/company/"+companyA.String()+"/appointments", adminToken, "").Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/company/"+companyB.String()+"/appointments", adminToken, "").Code)

	// Clients are rejected by the role gate.
	clientToken := env.token(t, entity.RoleClient, &companyA)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/company/"+companyA.String()+"/appointments", clientToken, "").Code)
	assert.Equal(t, 2, env.appointment.listCalls)
}
