package entities

import "fmt"

// Scan represents a single scan of an imaging session. The Exported flag is
// monotonic false to true; scan rows are deleted and recreated wholesale
// when a session's archive identifier is corrected.
type Scan struct {
	ID uint `json:"id" gorm:"primaryKey"`
	// XnatID is the scan's identifier within its archive experiment.
	XnatID    string `json:"xnat_id" gorm:"index;not null"`
	SessionID string `json:"session_id" gorm:"index;not null"`
	TypeID    uint   `json:"type_id" gorm:"index;not null"`
	Type      ScanType
	Exported  bool `json:"exported" gorm:"not null;default:false"`
}

// IsClinical reports whether the scan's type has been confirmed as
// clinically relevant, making the scan eligible for export.
func (s *Scan) IsClinical() bool {
	return s.Type.Confirmed && s.Type.Clinical
}

func (s *Scan) String() string {
	return fmt.Sprintf("%s (%s)", s.XnatID, s.Type.Name)
}

// ArchiveScan is a scan as listed by an archive experiment: the scan
// identifier plus its type label. It is the shape returned by archive
// lookups during import and repair.
type ArchiveScan struct {
	XnatID   string
	TypeName string
}
