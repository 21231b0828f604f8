package entity

import (
	"time"

	"github.com/google/uuid"
)

// Membership links a user to a company under a role.
// A user may hold at most one membership per company.
type Membership struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_user_company" json:"user_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_user_company" json:"company_id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Role    Role    `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (Membership) TableName() string {
	return "user_company"
}
