package repositories

import (
	"context"

	"imaging-report-service/internal/domain/entities"
)

// ScanTypeRepositoryContract exposes the confirmation surface over the
// shared scan-type reference table.
type ScanTypeRepositoryContract interface {
	UnconfirmedCount(ctx context.Context) (int64, error)
	// UnconfirmedPage returns the next page of unconfirmed types ordered
	// by name, bounded by limit.
	UnconfirmedPage(ctx context.Context, limit int) ([]entities.ScanType, error)
	// ConfirmBatch marks the clinical subset relevant, the remainder of
	// the shown set not relevant, and the whole shown set confirmed, as a
	// single atomic batch. Types outside the shown set are untouched.
	ConfirmBatch(ctx context.Context, shown, clinical []uint) error
}
