package repository

import (
	"errors"
	"time"

	"agenda-backend/internal/domain/entity"
	domainRepo "agenda-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Service").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindForUpdate takes row locks on the company's appointments for the date,
// so two concurrent bookings for overlapping slots serialize on the same rows.
// Must run inside a transaction.
func (r *appointmentRepository) FindForUpdate(db *gorm.DB, companyID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND date = ?", companyID, date).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByCompanyID(db *gorm.DB, companyID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Service").
		Where("company_id = ?", companyID).
		Order("date ASC, hour ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
