package services

import (
	"context"

	"imaging-report-service/internal/domain/dtos"
	"imaging-report-service/internal/domain/entities"
)

// ScanTypeServiceContract serves the clinical-relevance confirmation
// workflow that gates export eligibility.
type ScanTypeServiceContract interface {
	// NextPage returns the next page of unconfirmed scan types together
	// with the total unconfirmed count. An empty page means the workflow
	// is complete.
	NextPage(ctx context.Context) ([]entities.ScanType, int64, error)
	// Confirm applies one confirmation batch atomically and returns the
	// recomputed unconfirmed count and next page.
	Confirm(ctx context.Context, request dtos.ConfirmScanTypesRequest) (*dtos.ConfirmScanTypesResult, error)
}
