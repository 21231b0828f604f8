package repository

import (
	"errors"

	"agenda-backend/internal/domain/entity"
	domainRepo "agenda-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type membershipRepository struct{}

func NewMembershipRepository() domainRepo.MembershipRepository {
	return &membershipRepository{}
}

func (r *membershipRepository) Create(db *gorm.DB, membership *entity.Membership) error {
	return db.Create(membership).Error
}

func (r *membershipRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Membership, error) {
	var memberships []entity.Membership
	err := db.Preload("Role").Preload("Company").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *membershipRepository) FindByUserAndCompany(db *gorm.DB, userID, companyID uuid.UUID) (*entity.Membership, error) {
	var membership entity.Membership
	err := db.Preload("Role").
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}
