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

type CompanyHandler struct {
	companyUsecase usecase.CompanyUsecase
	validator      *validator.CustomValidator
}

func NewCompanyHandler(companyUsecase usecase.CompanyUsecase, validator *validator.CustomValidator) *CompanyHandler {
	return &CompanyHandler{
		companyUsecase: companyUsecase,
		validator:      validator,
	}
}

func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	company, err := h.companyUsecase.CreateCompanyWithAdmin(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "Admin user not found")
		case usecase.ErrAlreadyMember:
			response.Conflict(w, "User already belongs to that company")
		default:
			response.InternalServerError(w, "Failed to create company")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Company created with admin user", company)
}

func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid company ID", nil)
		return
	}

	company, err := h.companyUsecase.GetCompany(r.Context(), companyID)
	if err != nil {
		switch err {
		case usecase.ErrCompanyNotFound:
			response.NotFound(w, "Company not found")
		default:
			response.InternalServerError(w, "Failed to get company")
		}
		return
	}

	response.Success(w, http.StatusOK, "Company retrieved successfully", company)
}

func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyUsecase.ListCompanies(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list companies")
		return
	}

	response.Success(w, http.StatusOK, "Companies retrieved successfully", companies)
}

func (h *CompanyHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	client, err := h.companyUsecase.CreateClient(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrAlreadyMember:
			response.Conflict(w, "Client already belongs to your company")
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		default:
			response.InternalServerError(w, "Failed to create client")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Client created and associated with company", client)
}
