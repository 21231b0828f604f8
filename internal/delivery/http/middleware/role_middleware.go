package middleware

import (
	"net/http"

	"agenda-backend/internal/domain/entity"
	"agenda-backend/pkg/response"
)

// RequireRole creates a middleware that checks if the caller holds any of
// the allowed roles. The role is read from context (set by AuthMiddleware
// from JWT claims) and fails closed when absent.
func RequireRole(allowedRoles ...entity.RoleName) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if role == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoot is a convenience middleware for super-admin-only endpoints
func RequireRoot(next http.Handler) http.Handler {
	return RequireRole(entity.RoleRoot)(next)
}

// RequireAdmin is a convenience middleware for company-admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireAdminOrClient allows any company-scoped caller
func RequireAdminOrClient(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleClient)(next)
}
