package services

import (
	"context"
	"log/slog"

	"imaging-report-service/internal/domain/dtos"
	"imaging-report-service/internal/domain/entities"
	"imaging-report-service/internal/domain/repositories"
)

// ScanTypeServiceImpl implements ScanTypeServiceContract.
type ScanTypeServiceImpl struct {
	scanTypes repositories.ScanTypeRepositoryContract
	pageSize  int
	logger    *slog.Logger
}

// NewScanTypeService creates a new ScanTypeServiceImpl with the given
// confirmation page size.
func NewScanTypeService(
	scanTypes repositories.ScanTypeRepositoryContract,
	pageSize int,
	logger *slog.Logger,
) ScanTypeServiceContract {
	return &ScanTypeServiceImpl{scanTypes: scanTypes, pageSize: pageSize, logger: logger}
}

func (s *ScanTypeServiceImpl) NextPage(ctx context.Context) ([]entities.ScanType, int64, error) {
	count, err := s.scanTypes.UnconfirmedCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	page, err := s.scanTypes.UnconfirmedPage(ctx, s.pageSize)
	if err != nil {
		return nil, 0, err
	}
	return page, count, nil
}

func (s *ScanTypeServiceImpl) Confirm(ctx context.Context, request dtos.ConfirmScanTypesRequest) (*dtos.ConfirmScanTypesResult, error) {
	if err := s.scanTypes.ConfirmBatch(ctx, request.Shown, request.Clinical); err != nil {
		return nil, err
	}
	s.logger.Info("confirmed clinical relevance of scan types",
		"shown", len(request.Shown), "clinical", len(request.Clinical))

	page, count, err := s.NextPage(ctx)
	if err != nil {
		return nil, err
	}
	return &dtos.ConfirmScanTypesResult{
		Confirmed:   len(request.Shown),
		Unconfirmed: count,
		NextPage:    page,
		Done:        len(page) == 0,
	}, nil
}
