package entities

import "time"

// Project represents an MBI research project. Projects are created on first
// encounter during import and never deleted.
type Project struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	MbiID     string       `json:"mbi_id" gorm:"uniqueIndex;not null"`
	Sessions  []ImgSession `json:"-" gorm:"foreignKey:ProjectID"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}
