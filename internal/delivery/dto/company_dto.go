package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateCompanyRequest struct {
	Name    string    `json:"name" validate:"required,min=2,max=200"`
	AdminID uuid.UUID `json:"admin_id" validate:"required"`
}

type CreateClientRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=80"`
	LastName  string `json:"lastname" validate:"required,min=2,max=80"`
	NIT       string `json:"nit" validate:"required,max=30"`
	Cellphone string `json:"cellphone" validate:"omitempty,max=30"`
	Email     string `json:"email" validate:"required,email"`
}

// Response DTOs

type CompanyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
	Total     int               `json:"total"`
}

// ClientResponse reports the user a client membership was created for and
// whether an existing user row was reused (idempotent by nit).
type ClientResponse struct {
	User      UserResponse `json:"user"`
	CompanyID uuid.UUID    `json:"company_id"`
	Reused    bool         `json:"reused"`
}
