package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company is a tenant. It owns services and appointments.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Memberships  []Membership  `gorm:"foreignKey:CompanyID" json:"memberships,omitempty"`
	Services     []Service     `gorm:"foreignKey:CompanyID" json:"services,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:CompanyID" json:"appointments,omitempty"`
}

func (Company) TableName() string {
	return "companies"
}
