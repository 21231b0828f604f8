package repository

import (
	"agenda-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository interface {
	Create(db *gorm.DB, membership *entity.Membership) error
	// FindByUserID returns memberships with Role and Company preloaded.
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Membership, error)
	FindByUserAndCompany(db *gorm.DB, userID, companyID uuid.UUID) (*entity.Membership, error)
}
