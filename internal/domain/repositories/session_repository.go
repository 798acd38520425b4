package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"imaging-report-service/internal/constants"
	"imaging-report-service/internal/domain/entities"
)

// EXISTS fragments shared by the queue queries. They are the SQL renditions
// of the predicates in entities/session_predicates.go and are kept portable
// across the postgres production store and the sqlite test store.
const (
	exportedScanExists = "EXISTS (SELECT 1 FROM scans" +
		" WHERE scans.session_id = img_sessions.id AND scans.exported)"

	// A scan that keeps the session out of the reporting queue.
	blockingScanExists = "EXISTS (SELECT 1 FROM scans" +
		" JOIN scan_types ON scan_types.id = scans.type_id" +
		" WHERE scans.session_id = img_sessions.id" +
		" AND (NOT scan_types.confirmed OR (scan_types.clinical AND NOT scans.exported)))"

	// A scan whose type is unconfirmed or confirmed clinical; its absence
	// reclassifies a PRESENT session to FOUND_NO_CLINICAL.
	relevantScanExists = "EXISTS (SELECT 1 FROM scans" +
		" JOIN scan_types ON scan_types.id = scans.type_id" +
		" WHERE scans.session_id = img_sessions.id" +
		" AND (NOT scan_types.confirmed OR scan_types.clinical))"

	unconfirmedScanExists = "EXISTS (SELECT 1 FROM scans" +
		" JOIN scan_types ON scan_types.id = scans.type_id" +
		" WHERE scans.session_id = img_sessions.id AND NOT scan_types.confirmed)"

	clinicalUnexportedExists = "EXISTS (SELECT 1 FROM scans" +
		" JOIN scan_types ON scan_types.id = scans.type_id" +
		" WHERE scans.session_id = img_sessions.id" +
		" AND scan_types.clinical AND NOT scans.exported)"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a gorm-backed SessionRepositoryContract.
func NewSessionRepository(db *gorm.DB) SessionRepositoryContract {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*entities.ImgSession, error) {
	var session entities.ImgSession
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Scans.Type").
		Preload("Reports").
		First(&session, "img_sessions.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	return &session, nil
}

func (r *sessionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ImgSession{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking session %s: %w", id, err)
	}
	return count > 0, nil
}

func (r *sessionRepository) CreateWithScans(ctx context.Context, session *entities.ImgSession, scans []entities.ArchiveScan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(session).Error; err != nil {
			return fmt.Errorf("creating session %s: %w", session.ID, err)
		}
		for _, archiveScan := range scans {
			scanType, err := getOrCreateScanType(tx, archiveScan.TypeName)
			if err != nil {
				return err
			}
			scan := entities.Scan{
				XnatID:    archiveScan.XnatID,
				SessionID: session.ID,
				TypeID:    scanType.ID,
			}
			if err := tx.Omit(clause.Associations).Create(&scan).Error; err != nil {
				return fmt.Errorf("creating scan %s of session %s: %w",
					archiveScan.XnatID, session.ID, err)
			}
		}
		return nil
	})
}

func (r *sessionRepository) SessionsNeedingReport(ctx context.Context) ([]entities.ImgSession, error) {
	var sessions []entities.ImgSession
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Scans.Type").
		Preload("Reports").
		Where("data_status = ?", constants.Present).
		Where(exportedScanExists).
		Where("NOT " + blockingScanExists).
		Order("priority DESC, scan_date ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("querying sessions to report: %w", err)
	}
	return r.filterNeedsReport(ctx, sessions)
}

func (r *sessionRepository) SessionsNeedingRepair(ctx context.Context) ([]entities.ImgSession, error) {
	var newMissing []entities.ImgSession
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Scans.Type").
		Preload("Reports").
		Where("data_status = ?", constants.Present).
		Where("NOT " + relevantScanExists).
		Order("data_status DESC, scan_date ASC").
		Find(&newMissing).Error
	if err != nil {
		return nil, fmt.Errorf("querying newly scan-less sessions: %w", err)
	}
	newMissing, err = r.filterNeedsReport(ctx, newMissing)
	if err != nil {
		return nil, err
	}
	reclassified := make([]string, len(newMissing))
	for i := range newMissing {
		reclassified[i] = newMissing[i].ID
	}
	if len(reclassified) > 0 {
		err = r.db.WithContext(ctx).
			Model(&entities.ImgSession{}).
			Where("id IN ?", reclassified).
			Update("data_status", constants.FoundNoClinical).Error
		if err != nil {
			return nil, fmt.Errorf("reclassifying sessions without clinical scans: %w", err)
		}
		for i := range newMissing {
			newMissing[i].DataStatus = constants.FoundNoClinical
		}
	}

	// The reclassification is already committed, so those sessions must stay
	// out of the repair-statuses query or they would be returned twice.
	toFixQuery := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Scans.Type").
		Preload("Reports").
		Where("data_status IN ?", constants.RepairStatuses).
		Order("data_status DESC, scan_date ASC")
	if len(reclassified) > 0 {
		toFixQuery = toFixQuery.Where("id NOT IN ?", reclassified)
	}
	var toFix []entities.ImgSession
	err = toFixQuery.Find(&toFix).Error
	if err != nil {
		return nil, fmt.Errorf("querying sessions to repair: %w", err)
	}
	toFix, err = r.filterNeedsReport(ctx, toFix)
	if err != nil {
		return nil, err
	}
	return append(newMissing, toFix...), nil
}

func (r *sessionRepository) ReadyForExport(ctx context.Context) ([]entities.ImgSession, error) {
	var sessions []entities.ImgSession
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Scans.Type").
		Preload("Reports").
		Where("data_status = ?", constants.Present).
		Where("NOT " + unconfirmedScanExists).
		Where(clinicalUnexportedExists).
		Order("scan_date ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("querying sessions ready for export: %w", err)
	}
	return r.filterNeedsReport(ctx, sessions)
}

// filterNeedsReport applies the reporting-interval predicate, which the
// storage engines cannot express portably, over the candidate set.
func (r *sessionRepository) filterNeedsReport(ctx context.Context, sessions []entities.ImgSession) ([]entities.ImgSession, error) {
	if len(sessions) == 0 {
		return sessions, nil
	}
	subjectIDs := make([]uint, 0, len(sessions))
	seen := make(map[uint]bool, len(sessions))
	for i := range sessions {
		if !seen[sessions[i].SubjectID] {
			seen[sessions[i].SubjectID] = true
			subjectIDs = append(subjectIDs, sessions[i].SubjectID)
		}
	}

	type reportedRow struct {
		SubjectID uint
		ID        string
		ScanDate  time.Time
	}
	var rows []reportedRow
	err := r.db.WithContext(ctx).
		Model(&entities.ImgSession{}).
		Select("img_sessions.subject_id, img_sessions.id, img_sessions.scan_date").
		Where("img_sessions.subject_id IN ?", subjectIDs).
		Where("EXISTS (SELECT 1 FROM reports WHERE reports.session_id = img_sessions.id)").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("querying reported sessions: %w", err)
	}
	reported := make(map[uint][]entities.ReportedSession, len(rows))
	for _, row := range rows {
		reported[row.SubjectID] = append(reported[row.SubjectID], entities.ReportedSession{
			SessionID: row.ID,
			ScanDate:  row.ScanDate,
		})
	}

	filtered := make([]entities.ImgSession, 0, len(sessions))
	for i := range sessions {
		if entities.NeedsReport(&sessions[i], reported[sessions[i].SubjectID]) {
			filtered = append(filtered, sessions[i])
		}
	}
	return filtered, nil
}

func (r *sessionRepository) ApplyRepair(ctx context.Context, session *entities.ImgSession, freshScans []entities.ArchiveScan, rewriteScans bool) (bool, error) {
	missingClinical := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rewriteScans && session.DataStatus == constants.Present {
			err := tx.Where("session_id = ?", session.ID).
				Delete(&entities.Scan{}).Error
			if err != nil {
				return fmt.Errorf("deleting scans of session %s: %w", session.ID, err)
			}
			scans := make([]entities.Scan, 0, len(freshScans))
			for _, archiveScan := range freshScans {
				scanType, err := getOrCreateScanType(tx, archiveScan.TypeName)
				if err != nil {
					return err
				}
				scan := entities.Scan{
					XnatID:    archiveScan.XnatID,
					SessionID: session.ID,
					TypeID:    scanType.ID,
					Type:      *scanType,
				}
				if err := tx.Omit(clause.Associations).Create(&scan).Error; err != nil {
					return fmt.Errorf("recreating scan %s of session %s: %w",
						archiveScan.XnatID, session.ID, err)
				}
				scans = append(scans, scan)
			}
			if entities.ScanListMissingClinical(scans) {
				session.DataStatus = constants.FoundNoClinical
				missingClinical = true
			}
			session.Scans = scans
		}
		err := tx.Model(&entities.ImgSession{}).
			Where("id = ?", session.ID).
			Updates(map[string]interface{}{
				"data_status": session.DataStatus,
				"xnat_id":     session.XnatID,
			}).Error
		if err != nil {
			return fmt.Errorf("updating session %s: %w", session.ID, err)
		}
		return nil
	})
	return missingClinical, err
}

func (r *sessionRepository) MarkScanExported(ctx context.Context, scanID uint) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Scan{}).
		Where("id = ?", scanID).
		Update("exported", true)
	if result.Error != nil {
		return fmt.Errorf("marking scan %d exported: %w", scanID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrScanNotFound, scanID)
	}
	return nil
}
