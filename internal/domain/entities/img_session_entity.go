package entities

import (
	"time"

	"imaging-report-service/internal/constants"
)

// ImgSession represents an imaging session imported from the FileMaker
// export. The primary key is the external study identifier. Sessions are
// mutated by the repair workflow but never physically deleted.
type ImgSession struct {
	ID        string `json:"id" gorm:"primaryKey"`
	ProjectID uint   `json:"project_id" gorm:"index;not null"`
	Project   Project
	SubjectID uint `json:"subject_id" gorm:"index;not null"`
	Subject   Subject
	// XnatID is the canonical archive session label derived at import
	// (PROJECT_SUBJECT_VISIT) and corrected during repair.
	XnatID     string                    `json:"xnat_id" gorm:"index"`
	ScanDate   time.Time                 `json:"scan_date"`
	DataStatus constants.DataStatus      `json:"data_status" gorm:"index;not null"`
	Priority   constants.SessionPriority `json:"priority" gorm:"not null"`
	Scans      []Scan                    `json:"scans" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Reports    []Report                  `json:"reports" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time                 `json:"created_at" gorm:"not null"`
	UpdatedAt  time.Time                 `json:"updated_at" gorm:"not null"`
}
