package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"

	"imaging-report-service/internal/adapters"
	"imaging-report-service/internal/domain/entities"
	"imaging-report-service/internal/domain/repositories"
)

// ErrChecksumMismatch is the fatal export error raised when the
// destination's digest map diverges from the source's after upload.
var ErrChecksumMismatch = errors.New("checksums do not match")

// The resource folder scan files are uploaded into.
const dicomResource = "DICOM"

// ExportServiceImpl implements ExportServiceContract.
type ExportServiceImpl struct {
	sessions      repositories.SessionRepositoryContract
	source        adapters.ArchiveClientFactory
	target        adapters.ArchiveClientFactory
	targetProject string
	downloadDir   string
	logger        *slog.Logger
}

// NewExportService creates a new ExportServiceImpl. downloadDir is the
// scratch directory scan files pass through on their way to the
// destination archive.
func NewExportService(
	sessions repositories.SessionRepositoryContract,
	source adapters.ArchiveClientFactory,
	target adapters.ArchiveClientFactory,
	targetProject string,
	downloadDir string,
	logger *slog.Logger,
) ExportServiceContract {
	return &ExportServiceImpl{
		sessions:      sessions,
		source:        source,
		target:        target,
		targetProject: targetProject,
		downloadDir:   downloadDir,
		logger:        logger,
	}
}

func (s *ExportServiceImpl) ExportSessions(ctx context.Context) error {
	if err := os.MkdirAll(s.downloadDir, 0o755); err != nil {
		return fmt.Errorf("creating download dir %s: %w", s.downloadDir, err)
	}
	source, err := s.source(ctx)
	if err != nil {
		return err
	}
	defer source.Close()
	target, err := s.target(ctx)
	if err != nil {
		return err
	}
	defer target.Close()

	sessions, err := s.sessions.ReadyForExport(ctx)
	if err != nil {
		return err
	}
	for i := range sessions {
		if err := s.exportSession(ctx, source, target, &sessions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *ExportServiceImpl) exportSession(ctx context.Context, source, target adapters.ArchiveClient, session *entities.ImgSession) error {
	if err := target.EnsureSubject(ctx, s.targetProject, session.Subject.MbiID); err != nil {
		return err
	}
	if err := target.EnsureExperiment(ctx, s.targetProject, session.Subject.MbiID, session.ID); err != nil {
		return err
	}
	previous, err := target.ExperimentScanIDs(ctx, session.ID)
	if err != nil {
		return err
	}
	alreadyPresent := make(map[string]bool, len(previous))
	for _, id := range previous {
		alreadyPresent[id] = true
	}

	for i := range session.Scans {
		scan := &session.Scans[i]
		if !scan.IsClinical() || scan.Exported || alreadyPresent[scan.XnatID] {
			continue
		}
		if err := s.exportScan(ctx, source, target, session, scan); err != nil {
			return err
		}
	}

	// Have the destination pull session metadata out of the uploaded
	// DICOM headers.
	return target.ExtractHeaders(ctx, session.ID)
}

func (s *ExportServiceImpl) exportScan(ctx context.Context, source, target adapters.ArchiveClient, session *entities.ImgSession, scan *entities.Scan) error {
	scratchDir := filepath.Join(s.downloadDir, session.ID)
	filesDir, err := source.DownloadScan(ctx, session.XnatID, scan.XnatID, scratchDir)
	if err != nil {
		return err
	}
	if err := target.CreateScan(ctx, session.ID, scan.XnatID, scan.Type.Name); err != nil {
		return err
	}
	entries, err := os.ReadDir(filesDir)
	if err != nil {
		return fmt.Errorf("listing downloaded files of scan %s: %w", scan.XnatID, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		err := target.UploadFile(ctx, session.ID, scan.XnatID, dicomResource,
			filepath.Join(filesDir, entry.Name()), entry.Name())
		if err != nil {
			return err
		}
	}

	sourceDigests, err := source.ScanDigests(ctx, session.XnatID, scan.XnatID)
	if err != nil {
		return err
	}
	targetDigests, err := target.ScanDigests(ctx, session.ID, scan.XnatID)
	if err != nil {
		return err
	}
	if !maps.Equal(sourceDigests, targetDigests) {
		return fmt.Errorf("%w for uploaded scan %s from %s (to %s) XNAT session",
			ErrChecksumMismatch, scan.Type.Name, session.XnatID, session.ID)
	}

	// Commit the exported flag scan-by-scan so partial progress survives
	// a later failure in the same run.
	if err := s.sessions.MarkScanExported(ctx, scan.ID); err != nil {
		return err
	}
	scan.Exported = true
	if err := os.RemoveAll(scratchDir); err != nil {
		return fmt.Errorf("removing scratch dir %s: %w", scratchDir, err)
	}
	s.logger.Info("exported scan",
		"session_id", session.ID,
		"scan", scan.XnatID,
		"type", scan.Type.Name,
		"files", len(entries))
	return nil
}
