package repository

import (
	"errors"

	"agenda-backend/internal/domain/entity"
	domainRepo "agenda-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type companyRepository struct{}

func NewCompanyRepository() domainRepo.CompanyRepository {
	return &companyRepository{}
}

func (r *companyRepository) Create(db *gorm.DB, company *entity.Company) error {
	return db.Create(company).Error
}

func (r *companyRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	err := db.Where("id = ?", id).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindAll(db *gorm.DB) ([]entity.Company, error) {
	var companies []entity.Company
	err := db.Order("created_at DESC").Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}
