package entity

import (
	"time"

	"github.com/google/uuid"
)

// Appointment occupies a slot: a (company, date, hour) tuple.
// The slot uniqueness is also enforced by a database constraint so that
// concurrent bookings cannot both commit.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Date      time.Time `gorm:"type:date;not null;index;uniqueIndex:uq_company_slot" json:"date"`
	Hour      string    `gorm:"type:varchar(5);not null;uniqueIndex:uq_company_slot" json:"hour"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_company_slot" json:"company_id"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
