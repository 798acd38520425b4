package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"imaging-report-service/internal/adapters"
	"imaging-report-service/internal/constants"
	"imaging-report-service/internal/domain/entities"
	"imaging-report-service/internal/domain/repositories"
)

// --- MockProjectRepository ---
// Compile-time check to ensure MockProjectRepository implements ProjectRepositoryContract
var _ repositories.ProjectRepositoryContract = (*MockProjectRepository)(nil)

// MockProjectRepository is a mock implementation of ProjectRepositoryContract.
type MockProjectRepository struct {
	GetOrCreateByMbiIDFunc func(ctx context.Context, mbiID string) (*entities.Project, error)

	GetOrCreateByMbiIDFuncCallCount int32
}

func (m *MockProjectRepository) GetOrCreateByMbiID(ctx context.Context, mbiID string) (*entities.Project, error) {
	atomic.AddInt32(&m.GetOrCreateByMbiIDFuncCallCount, 1)
	if m.GetOrCreateByMbiIDFunc != nil {
		return m.GetOrCreateByMbiIDFunc(ctx, mbiID)
	}
	return &entities.Project{ID: 1, MbiID: mbiID}, nil
}

// --- MockSubjectRepository ---
// Compile-time check to ensure MockSubjectRepository implements SubjectRepositoryContract
var _ repositories.SubjectRepositoryContract = (*MockSubjectRepository)(nil)

// MockSubjectRepository is a mock implementation of SubjectRepositoryContract.
type MockSubjectRepository struct {
	GetOrCreateByMbiIDFunc func(ctx context.Context, mbiID, firstName, lastName string, dateOfBirth time.Time) (*entities.Subject, error)
}

func (m *MockSubjectRepository) GetOrCreateByMbiID(ctx context.Context, mbiID, firstName, lastName string, dateOfBirth time.Time) (*entities.Subject, error) {
	if m.GetOrCreateByMbiIDFunc != nil {
		return m.GetOrCreateByMbiIDFunc(ctx, mbiID, firstName, lastName, dateOfBirth)
	}
	return &entities.Subject{ID: 1, MbiID: mbiID}, nil
}

// --- MockSessionRepository ---
// Compile-time check to ensure MockSessionRepository implements SessionRepositoryContract
var _ repositories.SessionRepositoryContract = (*MockSessionRepository)(nil)

// MockSessionRepository is a mock implementation of SessionRepositoryContract.
type MockSessionRepository struct {
	GetByIDFunc               func(ctx context.Context, id string) (*entities.ImgSession, error)
	ExistsFunc                func(ctx context.Context, id string) (bool, error)
	CreateWithScansFunc       func(ctx context.Context, session *entities.ImgSession, scans []entities.ArchiveScan) error
	SessionsNeedingReportFunc func(ctx context.Context) ([]entities.ImgSession, error)
	SessionsNeedingRepairFunc func(ctx context.Context) ([]entities.ImgSession, error)
	ReadyForExportFunc        func(ctx context.Context) ([]entities.ImgSession, error)
	ApplyRepairFunc           func(ctx context.Context, session *entities.ImgSession, freshScans []entities.ArchiveScan, rewriteScans bool) (bool, error)
	MarkScanExportedFunc      func(ctx context.Context, scanID uint) error

	CreateWithScansFuncCallCount int32
	ApplyRepairFuncCallCount     int32
	MarkedExported               []uint
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*entities.ImgSession, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockSessionRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockSessionRepository) CreateWithScans(ctx context.Context, session *entities.ImgSession, scans []entities.ArchiveScan) error {
	atomic.AddInt32(&m.CreateWithScansFuncCallCount, 1)
	if m.CreateWithScansFunc != nil {
		return m.CreateWithScansFunc(ctx, session, scans)
	}
	return nil
}

func (m *MockSessionRepository) SessionsNeedingReport(ctx context.Context) ([]entities.ImgSession, error) {
	if m.SessionsNeedingReportFunc != nil {
		return m.SessionsNeedingReportFunc(ctx)
	}
	return nil, nil
}

func (m *MockSessionRepository) SessionsNeedingRepair(ctx context.Context) ([]entities.ImgSession, error) {
	if m.SessionsNeedingRepairFunc != nil {
		return m.SessionsNeedingRepairFunc(ctx)
	}
	return nil, nil
}

func (m *MockSessionRepository) ReadyForExport(ctx context.Context) ([]entities.ImgSession, error) {
	if m.ReadyForExportFunc != nil {
		return m.ReadyForExportFunc(ctx)
	}
	return nil, nil
}

func (m *MockSessionRepository) ApplyRepair(ctx context.Context, session *entities.ImgSession, freshScans []entities.ArchiveScan, rewriteScans bool) (bool, error) {
	atomic.AddInt32(&m.ApplyRepairFuncCallCount, 1)
	if m.ApplyRepairFunc != nil {
		return m.ApplyRepairFunc(ctx, session, freshScans, rewriteScans)
	}
	return false, nil
}

func (m *MockSessionRepository) MarkScanExported(ctx context.Context, scanID uint) error {
	m.MarkedExported = append(m.MarkedExported, scanID)
	if m.MarkScanExportedFunc != nil {
		return m.MarkScanExportedFunc(ctx, scanID)
	}
	return nil
}

// --- MockScanTypeRepository ---
// Compile-time check to ensure MockScanTypeRepository implements ScanTypeRepositoryContract
var _ repositories.ScanTypeRepositoryContract = (*MockScanTypeRepository)(nil)

// MockScanTypeRepository is a mock implementation of ScanTypeRepositoryContract.
type MockScanTypeRepository struct {
	UnconfirmedCountFunc func(ctx context.Context) (int64, error)
	UnconfirmedPageFunc  func(ctx context.Context, limit int) ([]entities.ScanType, error)
	ConfirmBatchFunc     func(ctx context.Context, shown, clinical []uint) error
}

func (m *MockScanTypeRepository) UnconfirmedCount(ctx context.Context) (int64, error) {
	if m.UnconfirmedCountFunc != nil {
		return m.UnconfirmedCountFunc(ctx)
	}
	return 0, nil
}

func (m *MockScanTypeRepository) UnconfirmedPage(ctx context.Context, limit int) ([]entities.ScanType, error) {
	if m.UnconfirmedPageFunc != nil {
		return m.UnconfirmedPageFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockScanTypeRepository) ConfirmBatch(ctx context.Context, shown, clinical []uint) error {
	if m.ConfirmBatchFunc != nil {
		return m.ConfirmBatchFunc(ctx, shown, clinical)
	}
	return nil
}

// --- MockReportRepository ---
// Compile-time check to ensure MockReportRepository implements ReportRepositoryContract
var _ repositories.ReportRepositoryContract = (*MockReportRepository)(nil)

// MockReportRepository is a mock implementation of ReportRepositoryContract.
// Every created report is recorded in Created.
type MockReportRepository struct {
	CreateFunc func(ctx context.Context, report *entities.Report) error

	Created []*entities.Report
}

func (m *MockReportRepository) Create(ctx context.Context, report *entities.Report) error {
	m.Created = append(m.Created, report)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, report)
	}
	return nil
}

// --- MockUserRepository ---
// Compile-time check to ensure MockUserRepository implements UserRepositoryContract
var _ repositories.UserRepositoryContract = (*MockUserRepository)(nil)

// MockUserRepository is a mock implementation of UserRepositoryContract.
// FindByEmail resolves from UsersByEmail when no func override is set.
type MockUserRepository struct {
	UsersByEmail map[string]*entities.User

	FindByEmailFunc        func(ctx context.Context, email string) (*entities.User, error)
	GetByIDFunc            func(ctx context.Context, id uint) (*entities.User, error)
	GetOrCreateByEmailFunc func(ctx context.Context, email, firstName, lastName string, roles constants.Role) (*entities.User, error)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	if user, ok := m.UsersByEmail[email]; ok {
		return user, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented in mock")
}

func (m *MockUserRepository) GetOrCreateByEmail(ctx context.Context, email, firstName, lastName string, roles constants.Role) (*entities.User, error) {
	if m.GetOrCreateByEmailFunc != nil {
		return m.GetOrCreateByEmailFunc(ctx, email, firstName, lastName, roles)
	}
	return &entities.User{ID: 1, Email: email, Roles: roles}, nil
}

// --- MockArchiveClient ---
// Compile-time check to ensure MockArchiveClient implements adapters.ArchiveClient
var _ adapters.ArchiveClient = (*MockArchiveClient)(nil)

// MockArchiveClient is a mock implementation of adapters.ArchiveClient.
type MockArchiveClient struct {
	ExperimentScansFunc   func(ctx context.Context, label string) ([]entities.ArchiveScan, error)
	ExperimentScanIDsFunc func(ctx context.Context, label string) ([]string, error)
	DownloadScanFunc      func(ctx context.Context, experimentLabel, scanID, destDir string) (string, error)
	ScanDigestsFunc       func(ctx context.Context, experimentLabel, scanID string) (map[string]string, error)
	EnsureSubjectFunc     func(ctx context.Context, projectID, subjectLabel string) error
	EnsureExperimentFunc  func(ctx context.Context, projectID, subjectLabel, experimentLabel string) error
	CreateScanFunc        func(ctx context.Context, experimentLabel, scanID, scanType string) error
	UploadFileFunc        func(ctx context.Context, experimentLabel, scanID, resource, localPath, remoteName string) error
	ExtractHeadersFunc    func(ctx context.Context, experimentLabel string) error

	ExperimentScansFuncCallCount int32
	Uploaded                     []string
	HeaderExtractions            []string
}

func (m *MockArchiveClient) ExperimentScans(ctx context.Context, label string) ([]entities.ArchiveScan, error) {
	atomic.AddInt32(&m.ExperimentScansFuncCallCount, 1)
	if m.ExperimentScansFunc != nil {
		return m.ExperimentScansFunc(ctx, label)
	}
	return nil, nil
}

func (m *MockArchiveClient) ExperimentScanIDs(ctx context.Context, label string) ([]string, error) {
	if m.ExperimentScanIDsFunc != nil {
		return m.ExperimentScanIDsFunc(ctx, label)
	}
	return nil, nil
}

func (m *MockArchiveClient) DownloadScan(ctx context.Context, experimentLabel, scanID, destDir string) (string, error) {
	if m.DownloadScanFunc != nil {
		return m.DownloadScanFunc(ctx, experimentLabel, scanID, destDir)
	}
	return "", errors.New("DownloadScanFunc not implemented in mock")
}

func (m *MockArchiveClient) ScanDigests(ctx context.Context, experimentLabel, scanID string) (map[string]string, error) {
	if m.ScanDigestsFunc != nil {
		return m.ScanDigestsFunc(ctx, experimentLabel, scanID)
	}
	return nil, errors.New("ScanDigestsFunc not implemented in mock")
}

func (m *MockArchiveClient) EnsureSubject(ctx context.Context, projectID, subjectLabel string) error {
	if m.EnsureSubjectFunc != nil {
		return m.EnsureSubjectFunc(ctx, projectID, subjectLabel)
	}
	return nil
}

func (m *MockArchiveClient) EnsureExperiment(ctx context.Context, projectID, subjectLabel, experimentLabel string) error {
	if m.EnsureExperimentFunc != nil {
		return m.EnsureExperimentFunc(ctx, projectID, subjectLabel, experimentLabel)
	}
	return nil
}

func (m *MockArchiveClient) CreateScan(ctx context.Context, experimentLabel, scanID, scanType string) error {
	if m.CreateScanFunc != nil {
		return m.CreateScanFunc(ctx, experimentLabel, scanID, scanType)
	}
	return nil
}

func (m *MockArchiveClient) UploadFile(ctx context.Context, experimentLabel, scanID, resource, localPath, remoteName string) error {
	m.Uploaded = append(m.Uploaded, remoteName)
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, experimentLabel, scanID, resource, localPath, remoteName)
	}
	return nil
}

func (m *MockArchiveClient) ExtractHeaders(ctx context.Context, experimentLabel string) error {
	m.HeaderExtractions = append(m.HeaderExtractions, experimentLabel)
	if m.ExtractHeadersFunc != nil {
		return m.ExtractHeadersFunc(ctx, experimentLabel)
	}
	return nil
}

func (m *MockArchiveClient) Close() {}

// archiveFactory wraps a mock client in an ArchiveClientFactory.
func archiveFactory(client adapters.ArchiveClient) adapters.ArchiveClientFactory {
	return func(ctx context.Context) (adapters.ArchiveClient, error) {
		return client, nil
	}
}
