package entities

import "time"

// Subject represents a scanned individual, uniquely keyed by the external
// MBI subject identifier. Subjects are created once and reused across
// sessions.
type Subject struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	MbiID     string       `json:"mbi_id" gorm:"uniqueIndex;not null"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	// DateOfBirth is the year-1 zero time when unknown.
	DateOfBirth time.Time    `json:"date_of_birth"`
	Sessions    []ImgSession `json:"-" gorm:"foreignKey:SubjectID"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null"`
}
