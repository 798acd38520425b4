package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imaging-report-service/internal/adapters"
	"imaging-report-service/internal/constants"
	"imaging-report-service/internal/domain/dtos"
	"imaging-report-service/internal/domain/entities"
)

func repairableSession(status constants.DataStatus) *entities.ImgSession {
	return &entities.ImgSession{
		ID:         "S001",
		XnatID:     "MRH100_123_MR01",
		DataStatus: status,
	}
}

func newRepairFixture(session *entities.ImgSession, archive *MockArchiveClient) (RepairServiceContract, *MockSessionRepository) {
	sessions := &MockSessionRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*entities.ImgSession, error) {
			return session, nil
		},
	}
	return NewRepairService(sessions, archiveFactory(archive), testLogger()), sessions
}

func TestRepair_RejectsNonFixStatus(t *testing.T) {
	svc, sessions := newRepairFixture(repairableSession(constants.NotFound), &MockArchiveClient{})

	outcome, fieldErrors, err := svc.Repair(context.Background(), dtos.RepairRequest{
		SessionID: "S001",
		Status:    int(constants.NotChecked),
	})
	require.NoError(t, err)
	assert.Nil(t, outcome)
	assert.Contains(t, fieldErrors, "status")
	assert.Equal(t, int32(0), sessions.ApplyRepairFuncCallCount)
}

func TestRepair_PresentRequiresArchiveSession(t *testing.T) {
	archive := &MockArchiveClient{
		ExperimentScansFunc: func(ctx context.Context, label string) ([]entities.ArchiveScan, error) {
			return nil, adapters.ErrExperimentNotFound
		},
	}
	svc, sessions := newRepairFixture(repairableSession(constants.NotFound), archive)

	outcome, fieldErrors, err := svc.Repair(context.Background(), dtos.RepairRequest{
		SessionID: "S001",
		Status:    int(constants.Present),
		XnatID:    "MRH100_999_MR01",
	})
	require.NoError(t, err)
	assert.Nil(t, outcome)
	assert.Contains(t, fieldErrors, "xnat_id")
	assert.Contains(t, fieldErrors["xnat_id"], "MRH100_999_MR01")
	assert.Equal(t, int32(0), sessions.ApplyRepairFuncCallCount)
}

func TestRepair_PresentRewritesScans(t *testing.T) {
	fresh := []entities.ArchiveScan{{XnatID: "1", TypeName: "t1_mprage"}}
	archive := &MockArchiveClient{
		ExperimentScansFunc: func(ctx context.Context, label string) ([]entities.ArchiveScan, error) {
			assert.Equal(t, "MRH100_124_MR01", label)
			return fresh, nil
		},
	}
	session := repairableSession(constants.NotFound)
	svc, sessions := newRepairFixture(session, archive)

	var gotScans []entities.ArchiveScan
	var gotRewrite bool
	sessions.ApplyRepairFunc = func(ctx context.Context, s *entities.ImgSession, freshScans []entities.ArchiveScan, rewriteScans bool) (bool, error) {
		gotScans = freshScans
		gotRewrite = rewriteScans
		return false, nil
	}

	outcome, fieldErrors, err := svc.Repair(context.Background(), dtos.RepairRequest{
		SessionID: "S001",
		Status:    int(constants.Present),
		XnatID:    "MRH100_124_MR01",
	})
	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
	assert.True(t, gotRewrite)
	assert.Equal(t, fresh, gotScans)
	assert.Equal(t, "MRH100_124_MR01", session.XnatID)
	require.NotNil(t, outcome)
	assert.Equal(t, dtos.RepairSuccess, outcome.Kind)
	assert.Contains(t, outcome.Message, "Repaired S001")
}

func TestRepair_PresentWithoutClinicalScansWarns(t *testing.T) {
	archive := &MockArchiveClient{
		ExperimentScansFunc: func(ctx context.Context, label string) ([]entities.ArchiveScan, error) {
			return []entities.ArchiveScan{{XnatID: "1", TypeName: "localizer"}}, nil
		},
	}
	svc, sessions := newRepairFixture(repairableSession(constants.NotFound), archive)
	sessions.ApplyRepairFunc = func(ctx context.Context, s *entities.ImgSession, freshScans []entities.ArchiveScan, rewriteScans bool) (bool, error) {
		s.DataStatus = constants.FoundNoClinical
		return true, nil
	}

	outcome, fieldErrors, err := svc.Repair(context.Background(), dtos.RepairRequest{
		SessionID: "S001",
		Status:    int(constants.Present),
		XnatID:    "MRH100_124_MR01",
	})
	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
	require.NotNil(t, outcome)
	assert.Equal(t, dtos.RepairWarning, outcome.Kind)
	assert.Contains(t, outcome.Message, "clinically relevant scans")
}

func TestRepair_StatusChangeWithoutArchiveLookup(t *testing.T) {
	archive := &MockArchiveClient{}
	svc, sessions := newRepairFixture(repairableSession(constants.NotFound), archive)

	outcome, fieldErrors, err := svc.Repair(context.Background(), dtos.RepairRequest{
		SessionID: "S001",
		Status:    int(constants.NotRequired),
	})
	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
	require.NotNil(t, outcome)
	assert.Equal(t, dtos.RepairInfo, outcome.Kind)
	assert.Contains(t, outcome.Message, "Marked S001")
	assert.Equal(t, int32(0), archive.ExperimentScansFuncCallCount)
	assert.Equal(t, int32(1), sessions.ApplyRepairFuncCallCount)
}

func TestRepair_XnatIDChangeWithoutStatusChangeWarns(t *testing.T) {
	session := repairableSession(constants.FixXNAT)
	svc, _ := newRepairFixture(session, &MockArchiveClient{})

	outcome, fieldErrors, err := svc.Repair(context.Background(), dtos.RepairRequest{
		SessionID: "S001",
		Status:    int(constants.FixXNAT),
		XnatID:    "MRH100_124_MR01",
	})
	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
	require.NotNil(t, outcome)
	assert.Equal(t, dtos.RepairWarning, outcome.Kind)
	assert.Contains(t, outcome.Message, "didn't update status")
	assert.Equal(t, "MRH100_124_MR01", session.XnatID)
}

func TestRepair_NoChanges(t *testing.T) {
	session := repairableSession(constants.FixXNAT)
	svc, _ := newRepairFixture(session, &MockArchiveClient{})

	outcome, _, err := svc.Repair(context.Background(), dtos.RepairRequest{
		SessionID: "S001",
		Status:    int(constants.FixXNAT),
		XnatID:    session.XnatID,
	})
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, dtos.RepairInfo, outcome.Kind)
	assert.Contains(t, outcome.Message, "No changes")
}
