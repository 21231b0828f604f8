package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a person that can authenticate and book appointments.
// A user without any membership is treated as the unscoped super-admin.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(80);not null" json:"name"`
	LastName  string    `gorm:"column:lastname;type:varchar(80);not null" json:"lastname"`
	NIT       string    `gorm:"column:nit;type:varchar(30);uniqueIndex;not null" json:"nit"`
	Email     string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	Cellphone string    `gorm:"type:varchar(30)" json:"cellphone"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Memberships  []Membership  `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:UserID" json:"appointments,omitempty"`
}

func (User) TableName() string {
	return "users"
}
