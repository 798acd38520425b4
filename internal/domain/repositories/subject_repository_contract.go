package repositories

import (
	"context"
	"time"

	"imaging-report-service/internal/domain/entities"
)

// SubjectRepositoryContract exposes the idempotent lookup-or-create surface
// for subjects. The name and date-of-birth fields are only written on first
// creation; an existing subject row wins over the row being imported.
type SubjectRepositoryContract interface {
	GetOrCreateByMbiID(ctx context.Context, mbiID, firstName, lastName string, dateOfBirth time.Time) (*entities.Subject, error)
}
