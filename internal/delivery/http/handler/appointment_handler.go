package handler

import (
	"encoding/json"
	"net/http"

	"agenda-backend/internal/delivery/dto"
	"agenda-backend/internal/delivery/http/middleware"
	"agenda-backend/internal/domain/entity"
	"agenda-backend/internal/usecase"
	"agenda-backend/pkg/response"
	"agenda-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := uuid.Parse(vars["companyId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid company ID", nil)
		return
	}

	// Company-scoped tokens may only book within their own company.
	if !callerMayAccessCompany(r, companyID) {
		response.Forbidden(w, "Token is not scoped to this company")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), companyID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidTimeFormat, usecase.ErrPastDate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "Slot is already booked for this company")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointmentDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	detail, err := h.appointmentUsecase.GetAppointmentDetail(r.Context(), appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", detail)
}

func (h *AppointmentHandler) ListCompanyAppointments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := uuid.Parse(vars["companyId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid company ID", nil)
		return
	}

	if !callerMayAccessCompany(r, companyID) {
		response.Forbidden(w, "Token is not scoped to this company")
		return
	}

	appointments, err := h.appointmentUsecase.ListCompanyAppointments(r.Context(), companyID)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// callerMayAccessCompany reports whether the request token is scoped to
// companyID. Root tokens carry no company and may access any.
func callerMayAccessCompany(r *http.Request, companyID uuid.UUID) bool {
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		return false
	}
	if role == entity.RoleRoot {
		return true
	}
	claimCompany, ok := middleware.GetCompanyIDFromContext(r.Context())
	return ok && claimCompany == companyID
}
