package services

import (
	"context"

	"imaging-report-service/internal/domain/dtos"
)

// ImportServiceContract runs the FileMaker-export import pipeline.
type ImportServiceContract interface {
	// ImportFile parses the CSV export at path and imports its rows.
	ImportFile(ctx context.Context, path string) (*dtos.ImportResult, error)
	// ImportRows imports the given rows. Malformed mandatory dates and
	// archive transport failures abort the whole run; every other failure
	// mode degrades to a per-row data-status classification.
	ImportRows(ctx context.Context, rows []dtos.ImportRow) (*dtos.ImportResult, error)
}
