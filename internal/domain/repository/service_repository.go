package repository

import (
	"agenda-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error)
	FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Service, error)
	FindByCompanyID(db *gorm.DB, companyID uuid.UUID) ([]entity.Service, error)
}
