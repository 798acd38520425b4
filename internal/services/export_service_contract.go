package services

import "context"

// ExportServiceContract runs the source-to-destination export pipeline.
type ExportServiceContract interface {
	// ExportSessions transfers the clinically relevant, not-yet-exported
	// scans of every ready-for-export session to the destination archive,
	// verifying per-file digests before marking each scan exported. A
	// checksum mismatch or transport failure aborts the run; progress
	// committed for earlier scans is preserved.
	ExportSessions(ctx context.Context) error
}
