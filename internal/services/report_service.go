package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"imaging-report-service/internal/constants"
	"imaging-report-service/internal/domain/dtos"
	"imaging-report-service/internal/domain/entities"
	"imaging-report-service/internal/domain/repositories"
)

// ReportServiceImpl implements ReportServiceContract.
type ReportServiceImpl struct {
	sessions repositories.SessionRepositoryContract
	reports  repositories.ReportRepositoryContract
	logger   *slog.Logger
}

// NewReportService creates a new ReportServiceImpl.
func NewReportService(
	sessions repositories.SessionRepositoryContract,
	reports repositories.ReportRepositoryContract,
	logger *slog.Logger,
) ReportServiceContract {
	return &ReportServiceImpl{sessions: sessions, reports: reports, logger: logger}
}

func (s *ReportServiceImpl) SessionsToReport(ctx context.Context) ([]entities.ImgSession, error) {
	return s.sessions.SessionsNeedingReport(ctx)
}

func (s *ReportServiceImpl) SubmitReport(ctx context.Context, request dtos.SubmitReportRequest) (dtos.FieldErrors, error) {
	session, err := s.sessions.GetByID(ctx, request.SessionID)
	if err != nil {
		return nil, err
	}

	exported := make(map[uint]entities.Scan, len(session.Scans))
	for _, scan := range session.Scans {
		if scan.Exported {
			exported[scan.ID] = scan
		}
	}

	fieldErrors := dtos.FieldErrors{}
	if len(request.ScanIDs) == 0 {
		fieldErrors.Add("scans", "At least one scan must be selected")
	}
	usedScans := make([]entities.Scan, 0, len(request.ScanIDs))
	for _, scanID := range request.ScanIDs {
		scan, ok := exported[scanID]
		if !ok {
			fieldErrors.Add("scans", "Selected scans must be exported scans of the session")
			continue
		}
		usedScans = append(usedScans, scan)
	}

	conclusion := constants.Conclusion(request.Conclusion)
	if !conclusion.Valid() {
		fieldErrors.Add("conclusion", "A conclusion must be selected")
	}
	if request.Findings == "" && conclusion.IsPathology() {
		fieldErrors.Add("findings", "Findings must be entered if a pathology is reported")
	}
	if fieldErrors.HasErrors() {
		return fieldErrors, nil
	}

	report := &entities.Report{
		ID:         uuid.New(),
		SessionID:  session.ID,
		ReporterID: request.ReporterID,
		Findings:   request.Findings,
		Conclusion: conclusion,
		Modality:   constants.MRI,
		Date:       time.Now(),
		UsedScans:  usedScans,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	s.logger.Info("report submitted",
		"session_id", session.ID,
		"reporter_id", request.ReporterID,
		"conclusion", conclusion.String())
	return nil, nil
}
