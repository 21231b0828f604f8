package repository

import (
	"errors"

	"agenda-backend/internal/domain/entity"
	domainRepo "agenda-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type serviceRepository struct{}

func NewServiceRepository() domainRepo.ServiceRepository {
	return &serviceRepository{}
}

func (r *serviceRepository) Create(db *gorm.DB, service *entity.Service) error {
	return db.Create(service).Error
}

func (r *serviceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := db.Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Service, error) {
	var services []entity.Service
	if len(ids) == 0 {
		return services, nil
	}
	err := db.Where("id IN ?", ids).Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindByCompanyID(db *gorm.DB, companyID uuid.UUID) ([]entity.Service, error) {
	var services []entity.Service
	err := db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}
