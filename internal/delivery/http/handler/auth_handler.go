package handler

import (
	"encoding/json"
	"net/http"

	"agenda-backend/internal/delivery/dto"
	"agenda-backend/internal/delivery/http/middleware"
	"agenda-backend/internal/usecase"
	"agenda-backend/pkg/response"
	"agenda-backend/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// Login handles user login
// @Summary Login user
// @Description Login with email and password. Users belonging to several
// companies get a pending token and the candidate list instead of an
// access token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Error(w, http.StatusUnauthorized, "Invalid email or password", nil)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	message := "Login successful"
	if result.PendingToken != "" {
		message = "Select a company to finish login"
	}
	response.Success(w, http.StatusOK, message, result)
}

// SelectCompany finalizes a login that required company disambiguation
// @Summary Select company
// @Description Exchange a pending token for an access token scoped to one
// of the caller's companies
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SelectCompanyRequest true "Select Company Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /login/select-company [post]
func (h *AuthHandler) SelectCompany(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.authUsecase.SelectCompany(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidToken, usecase.ErrTokenRevoked:
			response.Error(w, http.StatusUnauthorized, err.Error(), nil)
		case usecase.ErrMembershipNotFound:
			response.Forbidden(w, "You don't belong to that company")
		default:
			response.InternalServerError(w, "Failed to select company")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", token)
}

// Logout handles user logout
// @Summary Logout user
// @Description Revoke the current access token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	email, _ := middleware.GetUserEmailFromContext(r.Context())

	if err := h.authUsecase.Logout(r.Context(), userID, tokenID, email); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}
