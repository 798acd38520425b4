package services

import (
	"context"

	"imaging-report-service/internal/domain/dtos"
	"imaging-report-service/internal/domain/entities"
)

// ReportServiceContract serves the reporter workflow.
type ReportServiceContract interface {
	// SessionsToReport returns the sessions still requiring a report,
	// ordered by descending priority then ascending scan date.
	SessionsToReport(ctx context.Context) ([]entities.ImgSession, error)
	// SubmitReport validates and persists a report submission. Expected
	// validation failures come back as a non-empty FieldErrors map with
	// no state mutated; an unknown session id is a caller error.
	SubmitReport(ctx context.Context, request dtos.SubmitReportRequest) (dtos.FieldErrors, error)
}
