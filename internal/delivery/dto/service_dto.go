package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateServiceRequest struct {
	Title       string          `json:"title" validate:"required,min=2,max=50"`
	Description string          `json:"description" validate:"omitempty,max=255"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Duration    int             `json:"duration" validate:"required,min=1"`
}

// Response DTOs

type ServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Duration    int             `json:"duration"`
	CompanyID   uuid.UUID       `json:"company_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
