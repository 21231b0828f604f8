package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	Date      string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Hour      string    `json:"hour" validate:"required"` // Format: HH:MM
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	ServiceID uuid.UUID `json:"service_id" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Hour      string    `json:"hour"`
	UserID    uuid.UUID `json:"user_id"`
	CompanyID uuid.UUID `json:"company_id"`
	ServiceID uuid.UUID `json:"service_id"`
	CreatedAt time.Time `json:"created_at"`
}

type AppointmentDetailResponse struct {
	Identifier   uuid.UUID `json:"identifier"`
	ServiceTitle string    `json:"service_title"`
	Date         string    `json:"date"`
	Hour         string    `json:"hour"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
