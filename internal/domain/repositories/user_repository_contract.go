package repositories

import (
	"context"

	"imaging-report-service/internal/constants"
	"imaging-report-service/internal/domain/entities"
)

// UserRepositoryContract exposes lookups over the externally-owned user
// identities referenced by reports.
type UserRepositoryContract interface {
	// FindByEmail returns ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	// GetOrCreateByEmail is used to seed the fixed legacy reporter
	// accounts that imported dummy reports are attributed to.
	GetOrCreateByEmail(ctx context.Context, email, firstName, lastName string, roles constants.Role) (*entities.User, error)
}
