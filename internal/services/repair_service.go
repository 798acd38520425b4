package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"imaging-report-service/internal/adapters"
	"imaging-report-service/internal/constants"
	"imaging-report-service/internal/domain/dtos"
	"imaging-report-service/internal/domain/entities"
	"imaging-report-service/internal/domain/repositories"
)

// RepairServiceImpl implements RepairServiceContract.
type RepairServiceImpl struct {
	sessions repositories.SessionRepositoryContract
	archive  adapters.ArchiveClientFactory
	logger   *slog.Logger
}

// NewRepairService creates a new RepairServiceImpl.
func NewRepairService(
	sessions repositories.SessionRepositoryContract,
	archive adapters.ArchiveClientFactory,
	logger *slog.Logger,
) RepairServiceContract {
	return &RepairServiceImpl{sessions: sessions, archive: archive, logger: logger}
}

func (s *RepairServiceImpl) SessionsToRepair(ctx context.Context) ([]entities.ImgSession, error) {
	return s.sessions.SessionsNeedingRepair(ctx)
}

func (s *RepairServiceImpl) Repair(ctx context.Context, request dtos.RepairRequest) (*dtos.RepairOutcome, dtos.FieldErrors, error) {
	session, err := s.sessions.GetByID(ctx, request.SessionID)
	if err != nil {
		return nil, nil, err
	}
	oldStatus := session.DataStatus
	oldXnatID := session.XnatID
	newStatus := constants.DataStatus(request.Status)

	fieldErrors := dtos.FieldErrors{}
	if !newStatus.IsFixOption() {
		fieldErrors.Add("status", "A valid status must be selected")
		return nil, fieldErrors, nil
	}

	// A transition to PRESENT must be backed by a fresh scan list from the
	// archive under the corrected identifier.
	var freshScans []entities.ArchiveScan
	rewriteScans := false
	if newStatus == constants.Present {
		client, err := s.archive(ctx)
		if err != nil {
			return nil, nil, err
		}
		defer client.Close()
		freshScans, err = client.ExperimentScans(ctx, request.XnatID)
		if errors.Is(err, adapters.ErrExperimentNotFound) {
			fieldErrors.Add("xnat_id", fmt.Sprintf(
				"Did not find '%s' XNAT session, please correct or select a "+
					"different status (i.e. other than '%s')",
				request.XnatID, constants.Present))
			return nil, fieldErrors, nil
		}
		if err != nil {
			return nil, nil, err
		}
		rewriteScans = true
	}

	session.DataStatus = newStatus
	if newStatus == constants.Present || newStatus == constants.FixXNAT {
		session.XnatID = request.XnatID
	}

	missingClinical, err := s.sessions.ApplyRepair(ctx, session, freshScans, rewriteScans)
	if err != nil {
		return nil, nil, err
	}

	var outcome dtos.RepairOutcome
	switch {
	case newStatus == constants.Present && missingClinical:
		outcome = dtos.RepairOutcome{
			Kind: dtos.RepairWarning,
			Message: fmt.Sprintf(
				"%s does not contain any clinically relevant scans. Status "+
					"set to '%s', change to '%s' if this is expected.",
				session.XnatID, constants.FoundNoClinical, constants.NotRequired),
		}
	case newStatus == constants.Present:
		outcome = dtos.RepairOutcome{
			Kind:    dtos.RepairSuccess,
			Message: fmt.Sprintf("Repaired %s", session.ID),
		}
	case newStatus != oldStatus:
		outcome = dtos.RepairOutcome{
			Kind:    dtos.RepairInfo,
			Message: fmt.Sprintf("Marked %s as %q", session.ID, newStatus),
		}
	case session.XnatID != oldXnatID:
		outcome = dtos.RepairOutcome{
			Kind: dtos.RepairWarning,
			Message: fmt.Sprintf(
				"Updated XNAT ID of %s but didn't update status from %q",
				session.ID, newStatus),
		}
	default:
		outcome = dtos.RepairOutcome{
			Kind:    dtos.RepairInfo,
			Message: fmt.Sprintf("No changes made to %s", session.ID),
		}
	}
	s.logger.Info("session repaired",
		"session_id", session.ID,
		"old_status", oldStatus.String(),
		"new_status", session.DataStatus.String())
	return &outcome, nil, nil
}
