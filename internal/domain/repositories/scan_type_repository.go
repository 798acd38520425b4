package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"imaging-report-service/internal/domain/entities"
)

type scanTypeRepository struct {
	db *gorm.DB
}

// NewScanTypeRepository creates a gorm-backed ScanTypeRepositoryContract.
func NewScanTypeRepository(db *gorm.DB) ScanTypeRepositoryContract {
	return &scanTypeRepository{db: db}
}

// getOrCreateScanType resolves a scan type by name inside the caller's
// transaction, creating the row on first encounter. Shared by session
// creation and the repair scan rewrite.
func getOrCreateScanType(tx *gorm.DB, name string) (*entities.ScanType, error) {
	var scanType entities.ScanType
	err := tx.Where("name = ?", name).First(&scanType).Error
	if err == nil {
		return &scanType, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up scan type %q: %w", name, err)
	}
	scanType = entities.ScanType{Name: name}
	if err := tx.Create(&scanType).Error; err != nil {
		return nil, fmt.Errorf("creating scan type %q: %w", name, err)
	}
	return &scanType, nil
}

func (r *scanTypeRepository) UnconfirmedCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ScanType{}).
		Where("confirmed = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting unconfirmed scan types: %w", err)
	}
	return count, nil
}

func (r *scanTypeRepository) UnconfirmedPage(ctx context.Context, limit int) ([]entities.ScanType, error) {
	var types []entities.ScanType
	err := r.db.WithContext(ctx).
		Where("confirmed = ?", false).
		Order("name ASC").
		Limit(limit).
		Find(&types).Error
	if err != nil {
		return nil, fmt.Errorf("listing unconfirmed scan types: %w", err)
	}
	return types, nil
}

func (r *scanTypeRepository) ConfirmBatch(ctx context.Context, shown, clinical []uint) error {
	if len(shown) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(clinical) > 0 {
			err := tx.Model(&entities.ScanType{}).
				Where("id IN ?", clinical).
				Update("clinical", true).Error
			if err != nil {
				return fmt.Errorf("marking clinical scan types: %w", err)
			}
		}
		notClinical := tx.Model(&entities.ScanType{}).Where("id IN ?", shown)
		if len(clinical) > 0 {
			notClinical = notClinical.Where("id NOT IN ?", clinical)
		}
		if err := notClinical.Update("clinical", false).Error; err != nil {
			return fmt.Errorf("marking non-clinical scan types: %w", err)
		}
		err := tx.Model(&entities.ScanType{}).
			Where("id IN ?", shown).
			Update("confirmed", true).Error
		if err != nil {
			return fmt.Errorf("confirming scan types: %w", err)
		}
		return nil
	})
}
