package handler

import (
	"encoding/json"
	"net/http"

	"agenda-backend/internal/delivery/dto"
	"agenda-backend/internal/usecase"
	"agenda-backend/pkg/response"
	"agenda-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ServiceHandler struct {
	serviceUsecase usecase.ServiceUsecase
	validator      *validator.CustomValidator
}

func NewServiceHandler(serviceUsecase usecase.ServiceUsecase, validator *validator.CustomValidator) *ServiceHandler {
	return &ServiceHandler{
		serviceUsecase: serviceUsecase,
		validator:      validator,
	}
}

func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	service, err := h.serviceUsecase.CreateService(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCompanyNotFound:
			response.NotFound(w, "Company not found")
		default:
			response.InternalServerError(w, "Failed to create service")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Service created successfully", service)
}

func (h *ServiceHandler) ListCompanyServices(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := uuid.Parse(vars["companyId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid company ID", nil)
		return
	}

	services, err := h.serviceUsecase.ListCompanyServices(r.Context(), companyID)
	if err != nil {
		response.InternalServerError(w, "Failed to list services")
		return
	}

	response.Success(w, http.StatusOK, "Services retrieved successfully", services)
}
