package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"imaging-report-service/internal/domain/entities"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a gorm-backed ReportRepositoryContract.
func NewReportRepository(db *gorm.DB) ReportRepositoryContract {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *entities.Report) error {
	// UsedScans rows already exist; only the join rows are written.
	err := r.db.WithContext(ctx).
		Omit("UsedScans.*", "Reporter").
		Create(report).Error
	if err != nil {
		return fmt.Errorf("creating report for session %s: %w", report.SessionID, err)
	}
	return nil
}
