package repository

import (
	"errors"

	"agenda-backend/internal/domain/entity"
	domainRepo "agenda-backend/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type roleRepository struct{}

func NewRoleRepository() domainRepo.RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) FindByName(db *gorm.DB, name entity.RoleName) (*entity.Role, error) {
	var role entity.Role
	err := db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// Seed inserts the fixed role set, skipping rows that already exist.
func (r *roleRepository) Seed(db *gorm.DB) error {
	for _, name := range entity.SeededRoles {
		role := entity.Role{Name: name}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&role).Error
		if err != nil {
			return err
		}
	}
	return nil
}
