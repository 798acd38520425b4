package entities

import "time"

// ScanType is a shared reference table mapping a scan type name to its
// clinical-relevance classification. A type name maps to exactly one row,
// created on demand during import or repair when an unseen name appears.
// Clinical is undetermined until Confirmed is set by the confirmation
// workflow.
type ScanType struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Clinical  bool      `json:"clinical" gorm:"not null;default:false"`
	Confirmed bool      `json:"confirmed" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}
