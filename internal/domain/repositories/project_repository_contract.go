package repositories

import (
	"context"

	"imaging-report-service/internal/domain/entities"
)

// ProjectRepositoryContract exposes the idempotent lookup-or-create surface
// for projects. Projects are never deleted.
type ProjectRepositoryContract interface {
	GetOrCreateByMbiID(ctx context.Context, mbiID string) (*entities.Project, error)
}
