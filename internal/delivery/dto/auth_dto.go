package dto

import (
	"agenda-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SelectCompanyRequest struct {
	PendingToken string    `json:"pending_token" validate:"required"`
	CompanyID    uuid.UUID `json:"company_id" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int64           `json:"expires_in"`
	Role        entity.RoleName `json:"role"`
	CompanyID   *uuid.UUID      `json:"company_id,omitempty"`
}

// CompanyOption is one candidate membership a multi-company user can pick
// during login disambiguation.
type CompanyOption struct {
	CompanyID   uuid.UUID       `json:"company_id"`
	CompanyName string          `json:"company_name"`
	Role        entity.RoleName `json:"role"`
}

// LoginResponse carries either an issued token (single or zero membership)
// or a pending token plus the memberships to choose from.
type LoginResponse struct {
	Token        *TokenResponse  `json:"token,omitempty"`
	PendingToken string          `json:"pending_token,omitempty"`
	Companies    []CompanyOption `json:"companies,omitempty"`
}
