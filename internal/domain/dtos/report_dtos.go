package dtos

// SubmitReportRequest carries a validated report submission from the
// presentation layer.
type SubmitReportRequest struct {
	SessionID  string `json:"session_id"`
	ReporterID uint   `json:"reporter_id"`
	Findings   string `json:"findings"`
	Conclusion int    `json:"conclusion"`
	ScanIDs    []uint `json:"scan_ids"`
}
