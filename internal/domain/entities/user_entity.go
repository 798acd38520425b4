package entities

import (
	"time"

	"imaging-report-service/internal/constants"
)

// User is an external identity referenced, not owned, by reports.
type User struct {
	ID        uint                     `json:"id" gorm:"primaryKey"`
	Email     string                   `json:"email" gorm:"uniqueIndex;not null"`
	FirstName string                   `json:"first_name"`
	LastName  string                   `json:"last_name"`
	Roles     constants.Role           `json:"roles" gorm:"not null"`
	Status    constants.ReporterStatus `json:"status" gorm:"not null"`
	CreatedAt time.Time                `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time                `json:"updated_at" gorm:"not null"`
}

// HasRole reports whether the user carries the given role bit.
func (u *User) HasRole(role constants.Role) bool {
	return u.Roles&role != 0
}
