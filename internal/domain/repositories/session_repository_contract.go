package repositories

import (
	"context"

	"imaging-report-service/internal/domain/entities"
)

// SessionRepositoryContract exposes the named query operations of the
// review/repair workflow over imaging sessions.
type SessionRepositoryContract interface {
	// GetByID loads a session with its subject, scans (incl. types) and
	// reports. Returns ErrSessionNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*entities.ImgSession, error)
	Exists(ctx context.Context, id string) (bool, error)
	// CreateWithScans persists a freshly imported session together with
	// its discovered scans, resolving or creating each scan type by name,
	// in one transaction.
	CreateWithScans(ctx context.Context, session *entities.ImgSession, scans []entities.ArchiveScan) error
	// SessionsNeedingReport returns PRESENT sessions that still require a
	// report, have at least one exported scan and no scan whose type is
	// unconfirmed or confirmed-clinical-but-unexported, ordered by
	// descending priority then ascending scan date.
	SessionsNeedingReport(ctx context.Context) ([]entities.ImgSession, error)
	// SessionsNeedingRepair reclassifies PRESENT sessions whose scans are
	// all confirmed non-clinical to FOUND_NO_CLINICAL (committed), then
	// returns them followed by the sessions in the five repair statuses,
	// ordered by descending status then ascending scan date.
	SessionsNeedingRepair(ctx context.Context) ([]entities.ImgSession, error)
	// ReadyForExport returns PRESENT sessions with every scan type
	// confirmed and at least one clinical scan not yet exported.
	ReadyForExport(ctx context.Context) ([]entities.ImgSession, error)
	// ApplyRepair commits the session's status/identifier changes and,
	// when rewriteScans is set and the session is PRESENT, replaces its
	// scan rows from freshScans in the same transaction. It reports
	// whether the fresh scan list was missing clinical scans, in which
	// case the session has been downgraded to FOUND_NO_CLINICAL.
	ApplyRepair(ctx context.Context, session *entities.ImgSession, freshScans []entities.ArchiveScan, rewriteScans bool) (missingClinical bool, err error)
	// MarkScanExported flips a scan's exported flag and commits
	// immediately, so partial export progress survives a later failure.
	MarkScanExported(ctx context.Context, scanID uint) error
}
