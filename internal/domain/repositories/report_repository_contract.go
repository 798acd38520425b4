package repositories

import (
	"context"

	"imaging-report-service/internal/domain/entities"
)

// ReportRepositoryContract persists reports. Reports are append-only; there
// is deliberately no update or delete operation.
type ReportRepositoryContract interface {
	Create(ctx context.Context, report *entities.Report) error
}
