package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"imaging-report-service/internal/domain/entities"
)

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository creates a gorm-backed SubjectRepositoryContract.
func NewSubjectRepository(db *gorm.DB) SubjectRepositoryContract {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) GetOrCreateByMbiID(ctx context.Context, mbiID, firstName, lastName string, dateOfBirth time.Time) (*entities.Subject, error) {
	var subject entities.Subject
	err := r.db.WithContext(ctx).Where("mbi_id = ?", mbiID).First(&subject).Error
	if err == nil {
		return &subject, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up subject %q: %w", mbiID, err)
	}
	subject = entities.Subject{
		MbiID:       mbiID,
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: dateOfBirth,
	}
	if err := r.db.WithContext(ctx).Create(&subject).Error; err != nil {
		return nil, fmt.Errorf("creating subject %q: %w", mbiID, err)
	}
	return &subject, nil
}
