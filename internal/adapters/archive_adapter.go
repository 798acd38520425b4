package adapters

import (
	"context"
	"errors"

	"imaging-report-service/internal/domain/entities"
)

// ErrExperimentNotFound distinguishes "no such experiment" from transport
// failures: the former degrades to a data-status classification, the latter
// aborts the current batch run.
var ErrExperimentNotFound = errors.New("experiment not found in archive")

// ArchiveClient is the contract against a remote imaging archive. The
// source archive only ever sees the read side; the destination archive also
// receives the container-creation and upload calls.
type ArchiveClient interface {
	// ExperimentScans lists the scans (id + type label) of the experiment
	// with the given label. Returns ErrExperimentNotFound when the label
	// is unknown to the archive.
	ExperimentScans(ctx context.Context, label string) ([]entities.ArchiveScan, error)
	// ExperimentScanIDs lists only the scan identifiers of an experiment.
	ExperimentScanIDs(ctx context.Context, label string) ([]string, error)
	// DownloadScan fetches every file of a scan into destDir and returns
	// the directory holding the downloaded files.
	DownloadScan(ctx context.Context, experimentLabel, scanID, destDir string) (string, error)
	// ScanDigests returns the archive-computed {filename: digest} map for
	// the DICOM files of a scan.
	ScanDigests(ctx context.Context, experimentLabel, scanID string) (map[string]string, error)
	// EnsureSubject creates the subject container under a project if it
	// does not already exist.
	EnsureSubject(ctx context.Context, projectID, subjectLabel string) error
	// EnsureExperiment creates the session container under a subject if
	// it does not already exist.
	EnsureExperiment(ctx context.Context, projectID, subjectLabel, experimentLabel string) error
	// CreateScan creates a scan container on an experiment.
	CreateScan(ctx context.Context, experimentLabel, scanID, scanType string) error
	// UploadFile stores a local file into a scan resource folder.
	UploadFile(ctx context.Context, experimentLabel, scanID, resource, localPath, remoteName string) error
	// ExtractHeaders triggers the archive's metadata extraction for an
	// experiment after its scans have been uploaded.
	ExtractHeaders(ctx context.Context, experimentLabel string) error
	Close()
}

// ArchiveClientFactory opens a fresh archive connection for a batch run, so
// workflow operations receive their collaborators explicitly instead of
// through ambient globals.
type ArchiveClientFactory func(ctx context.Context) (ArchiveClient, error)
