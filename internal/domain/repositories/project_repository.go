package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"imaging-report-service/internal/domain/entities"
)

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a gorm-backed ProjectRepositoryContract.
func NewProjectRepository(db *gorm.DB) ProjectRepositoryContract {
	return &projectRepository{db: db}
}

func (r *projectRepository) GetOrCreateByMbiID(ctx context.Context, mbiID string) (*entities.Project, error) {
	var project entities.Project
	err := r.db.WithContext(ctx).
		Where(entities.Project{MbiID: mbiID}).
		FirstOrCreate(&project).Error
	if err != nil {
		return nil, fmt.Errorf("resolving project %q: %w", mbiID, err)
	}
	return &project, nil
}
