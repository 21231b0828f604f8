package repository

import (
	"time"

	"agenda-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	// FindByID returns the appointment with Service preloaded.
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindForUpdate locks the company's appointments on the given date for
	// the duration of the surrounding transaction (conflict checking).
	FindForUpdate(db *gorm.DB, companyID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	FindByCompanyID(db *gorm.DB, companyID uuid.UUID) ([]entity.Appointment, error)
}
