package entity

// RoleName is the closed set of roles the system understands.
type RoleName string

const (
	RoleRoot   RoleName = "root"
	RoleAdmin  RoleName = "admin"
	RoleClient RoleName = "client"
)

// Valid reports whether the role is one of the known roles.
func (r RoleName) Valid() bool {
	switch r {
	case RoleRoot, RoleAdmin, RoleClient:
		return true
	}
	return false
}

// Role represents a seeded authorization role.
// Root is never stored as a row; it only exists in token claims for
// users that hold no company membership.
type Role struct {
	ID   int      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name RoleName `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`

	// Relationships
	Memberships []Membership `gorm:"foreignKey:RoleID" json:"memberships,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// SeededRoles are created once at boot, idempotently.
var SeededRoles = []RoleName{RoleAdmin, RoleClient}
