package http

import (
	"net/http"

	"agenda-backend/internal/delivery/http/handler"
	"agenda-backend/internal/delivery/http/middleware"
	"agenda-backend/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	companyHandler     *handler.CompanyHandler
	serviceHandler     *handler.ServiceHandler
	appointmentHandler *handler.AppointmentHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	companyHandler *handler.CompanyHandler,
	serviceHandler *handler.ServiceHandler,
	appointmentHandler *handler.AppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		userHandler:        userHandler,
		companyHandler:     companyHandler,
		serviceHandler:     serviceHandler,
		appointmentHandler: appointmentHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

// Setup registers all routes. Paths mirror the public API exactly, so there
// is no version prefix.
func (r *Router) Setup() *mux.Router {
	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	r.router.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	r.router.HandleFunc("/login/select-company", r.authHandler.SelectCompany).Methods(http.MethodPost)
	r.router.Handle("/logout", r.authMiddleware.Authenticate(http.HandlerFunc(r.authHandler.Logout))).Methods(http.MethodPost)

	// User routes
	r.router.Handle("/users", r.protect(r.userHandler.CreateUser, middleware.RequireRoot)).Methods(http.MethodPost)
	r.router.HandleFunc("/users", r.userHandler.ListUsers).Methods(http.MethodGet)
	r.router.HandleFunc("/users/{nit}", r.userHandler.GetUserByNIT).Methods(http.MethodGet)

	// Company routes
	r.router.Handle("/companies", r.protect(r.companyHandler.CreateCompany, middleware.RequireRoot)).Methods(http.MethodPost)
	r.router.HandleFunc("/companies", r.companyHandler.ListCompanies).Methods(http.MethodGet)
	r.router.Handle("/companies/clients/create", r.protect(r.companyHandler.CreateClient, middleware.RequireAdmin)).Methods(http.MethodPost)
	r.router.HandleFunc("/companies/{id}", r.companyHandler.GetCompany).Methods(http.MethodGet)

	// Service routes
	r.router.Handle("/company/services/create", r.protect(r.serviceHandler.CreateService, middleware.RequireAdmin)).Methods(http.MethodPost)
	r.router.HandleFunc("/service/{companyId}/services", r.serviceHandler.ListCompanyServices).Methods(http.MethodGet)

	// Appointment routes
	r.router.Handle("/company/{companyId}/appointment/create", r.protect(r.appointmentHandler.CreateAppointment, middleware.RequireRole(entity.RoleRoot, entity.RoleAdmin, entity.RoleClient))).Methods(http.MethodPost)
	r.router.Handle("/company/{companyId}/appointments", r.protect(r.appointmentHandler.ListCompanyAppointments, middleware.RequireRole(entity.RoleRoot, entity.RoleAdmin))).Methods(http.MethodGet)
	r.router.HandleFunc("/appointment/{id}/detail", r.appointmentHandler.GetAppointmentDetail).Methods(http.MethodGet)

	// Audit trail (root only)
	r.router.Handle("/audit-logs", r.protect(r.auditLogHandler.ListAuditLogs, middleware.RequireRoot)).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

// protect authenticates the request and then applies the role gate.
func (r *Router) protect(h http.HandlerFunc, roleGate func(http.Handler) http.Handler) http.Handler {
	return r.authMiddleware.Authenticate(roleGate(h))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
