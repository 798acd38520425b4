package entities

import (
	"time"

	"github.com/google/uuid"

	"imaging-report-service/internal/constants"
)

// Report represents a radiology report submitted against an imaging
// session. Reports are append-only: there is no edit or delete path. Dummy
// reports are legacy placeholders imported without real content.
type Report struct {
	ID         uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID  string               `json:"session_id" gorm:"index;not null"`
	ReporterID uint                 `json:"reporter_id" gorm:"index;not null"`
	Reporter   User                 `json:"-"`
	Findings   string               `json:"findings" gorm:"type:text"`
	Conclusion constants.Conclusion `json:"conclusion" gorm:"not null"`
	Modality   constants.Modality   `json:"modality" gorm:"not null"`
	// Date is the reporting date; for dummy reports it carries the scan
	// date of the legacy session.
	Date  time.Time `json:"date" gorm:"not null"`
	Dummy bool      `json:"dummy" gorm:"not null;default:false"`
	// UsedScans is a snapshot of the scans the reporter referenced.
	UsedScans []Scan    `json:"used_scans" gorm:"many2many:report_used_scans"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}
