package dtos

// ImportRow is one row of the FileMaker export, keyed by its fixed column
// names. All values arrive as raw strings; classification and parsing
// happen in the import pipeline.
type ImportRow struct {
	ProjectID     string `json:"project_id"`
	SubjectID     string `json:"subject_id"`
	StudyID       string `json:"study_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DOB           string `json:"dob"`
	ScanDate      string `json:"scan_date"`
	DarisID       string `json:"daris_id"`
	XnatSubjectID string `json:"xnat_subject_id"`
	XnatVisitID   string `json:"xnat_visit_id"`
	MrReport      string `json:"mr_report"`
	PetReport     string `json:"pet_report"`
}

// ImportResult summarises an import run: study ids newly imported, study
// ids already present from an earlier run, and rows skipped because their
// project id is outside the allow-list.
type ImportResult struct {
	Imported []string    `json:"imported"`
	Previous []string    `json:"previous"`
	Skipped  []ImportRow `json:"skipped"`
}
