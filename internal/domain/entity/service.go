package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a bookable offering of a company. Duration is in minutes
// and defines the window an appointment occupies.
type Service struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string          `gorm:"type:varchar(50);not null" json:"title"`
	Description string          `gorm:"type:varchar(255)" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Duration    int             `gorm:"column:duration;not null" json:"duration"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Company      Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:ServiceID" json:"appointments,omitempty"`
}

func (Service) TableName() string {
	return "services"
}
