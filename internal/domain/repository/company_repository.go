package repository

import (
	"agenda-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(db *gorm.DB, company *entity.Company) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Company, error)
	FindAll(db *gorm.DB) ([]entity.Company, error)
}
