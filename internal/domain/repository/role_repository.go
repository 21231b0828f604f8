package repository

import (
	"agenda-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByName(db *gorm.DB, name entity.RoleName) (*entity.Role, error)
	Seed(db *gorm.DB) error
}
