package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agenda-backend/config"
	"agenda-backend/internal/delivery/http/middleware"
	"agenda-backend/internal/domain/entity"
	pkgjwt "agenda-backend/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	jwtService *pkgjwt.JWTService
	redis      *redis.Client
	mr         *miniredis.Miniredis
	auth       *middleware.AuthMiddleware
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	jwtService := pkgjwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		PendingExpiry: 5 * time.Minute,
	})

	return &testEnv{
		jwtService: jwtService,
		redis:      client,
		mr:         mr,
		auth:       middleware.NewAuthMiddleware(jwtService, client),
	}
}

// issueToken creates a signed access token and allowlists it in redis.
func (e *testEnv) issueToken(t *testing.T, role entity.RoleName, companyID *uuid.UUID) string {
	t.Helper()
	userID := uuid.New()
	token, tokenID, err := e.jwtService.GenerateAccessToken(userID, "user@example.com", role, companyID)
	require.NoError(t, err)
	key := fmt.Sprintf("access_token:%s:%s", userID, tokenID)
	require.NoError(t, e.redis.Set(context.Background(), key, "valid", time.Minute).Err())
	return token
}

func protectedRoute(e *testEnv, roleGate func(http.Handler) http.Handler) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := middleware.GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"role":%q}`, role)
	})
	return e.auth.Authenticate(roleGate(final))
}

func doRequest(handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	env := newTestEnv(t)
	handler := protectedRoute(env, middleware.RequireAdmin)

	assert.Equal(t, http.StatusUnauthorized, doRequest(handler, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(handler, "Bearer").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(handler, "Basic abc123").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(handler, "Bearer not-a-jwt").Code)
}

func TestAuthenticate_RejectsRevokedToken(t *testing.T) {
	env := newTestEnv(t)
	handler := protectedRoute(env, middleware.RequireAdmin)

	companyID := uuid.New()
	token := env.issueToken(t, entity.RoleAdmin, &companyID)
	env.mr.FlushAll() // simulate revocation

	assert.Equal(t, http.StatusUnauthorized, doRequest(handler, "Bearer "+token).Code)
}

func TestAuthenticate_RejectsPendingToken(t *testing.T) {
	env := newTestEnv(t)
	handler := protectedRoute(env, middleware.RequireAdmin)

	pending, _, err := env.jwtService.GeneratePendingToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doRequest(handler, "Bearer "+pending).Code)
}

func TestRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	handler := protectedRoute(env, middleware.RequireAdmin)
	companyID := uuid.New()

	adminToken := env.issueToken(t, entity.RoleAdmin, &companyID)
	rec := doRequest(handler, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"admin"`)

	clientToken := env.issueToken(t, entity.RoleClient, &companyID)
	assert.Equal(t, http.StatusForbidden, doRequest(handler, "Bearer "+clientToken).Code)

	rootToken := env.issueToken(t, entity.RoleRoot, nil)
	assert.Equal(t, http.StatusForbidden, doRequest(handler, "Bearer "+rootToken).Code)
}

func TestRequireRoot(t *testing.T) {
	env := newTestEnv(t)
	handler := protectedRoute(env, middleware.RequireRoot)
	companyID := uuid.New()

	rootToken := env.issueToken(t, entity.RoleRoot, nil)
	assert.Equal(t, http.StatusOK, doRequest(handler, "Bearer "+rootToken).Code)

	adminToken := env.issueToken(t, entity.RoleAdmin, &companyID)
	assert.Equal(t, http.StatusForbidden, doRequest(handler, "Bearer "+adminToken).Code)
}

func TestRequireAdminOrClient(t *testing.T) {
	env := newTestEnv(t)
	handler := protectedRoute(env, middleware.RequireAdminOrClient)
	companyID := uuid.New()

	for _, role := range []entity.RoleName{entity.RoleAdmin, entity.RoleClient} {
		token := env.issueToken(t, role, &companyID)
		assert.Equal(t, http.StatusOK, doRequest(handler, "Bearer "+token).Code, "role %s", role)
	}

	rootToken := env.issueToken(t, entity.RoleRoot, nil)
	assert.Equal(t, http.StatusForbidden, doRequest(handler, "Bearer "+rootToken).Code)
}
