package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"imaging-report-service/internal/constants"
	"imaging-report-service/internal/domain/entities"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a gorm-backed UserRepositoryContract.
func NewUserRepository(db *gorm.DB) UserRepositoryContract {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user %s: %w", email, err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %d: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) GetOrCreateByEmail(ctx context.Context, email, firstName, lastName string, roles constants.Role) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Where(entities.User{Email: email}).
		Attrs(entities.User{
			FirstName: firstName,
			LastName:  lastName,
			Roles:     roles,
			Status:    constants.Active,
		}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, fmt.Errorf("resolving user %s: %w", email, err)
	}
	return &user, nil
}
