package entities

import (
	"time"

	"imaging-report-service/internal/constants"
)

// The queue predicates below mirror the production SQL filters so the
// selection rules can be exercised over in-memory snapshots. Repositories
// apply the same conditions as real queries where the storage engine can
// express them portably.

// ReportedSession is a subject-level snapshot of another session that has
// at least one report (dummy or real) recorded against it.
type ReportedSession struct {
	SessionID string
	ScanDate  time.Time
}

// NeedsReport reports whether the session still requires a report: it has
// no non-dummy report of its own, and no other session of the same subject
// was reported within the reporting interval before its scan date.
func NeedsReport(s *ImgSession, subjectReported []ReportedSession) bool {
	for i := range s.Reports {
		if !s.Reports[i].Dummy {
			return false
		}
	}
	for _, prior := range subjectReported {
		if prior.SessionID == s.ID {
			continue
		}
		gap := s.ScanDate.Sub(prior.ScanDate)
		if gap >= 0 && gap <= constants.ReportInterval {
			return false
		}
	}
	return true
}

// HasExportedScan reports whether at least one scan of the session has been
// exported to the destination archive.
func HasExportedScan(scans []Scan) bool {
	for i := range scans {
		if scans[i].Exported {
			return true
		}
	}
	return false
}

// BlocksReportQueue reports whether any scan keeps the session out of the
// reporting queue: its type is unconfirmed, or confirmed clinical but the
// scan has not been exported yet.
func BlocksReportQueue(scans []Scan) bool {
	for i := range scans {
		t := scans[i].Type
		if !t.Confirmed || (t.Clinical && !scans[i].Exported) {
			return true
		}
	}
	return false
}

// AllConfirmedNonClinical reports whether every scan's type has been
// confirmed as not clinically relevant. PRESENT sessions satisfying it are
// reclassified to FOUND_NO_CLINICAL by the repair queue. A session without
// scans satisfies it vacuously.
func AllConfirmedNonClinical(scans []Scan) bool {
	for i := range scans {
		t := scans[i].Type
		if !t.Confirmed || t.Clinical {
			return false
		}
	}
	return true
}

// ScanListMissingClinical is the post-rewrite check applied after a repair
// replaces a session's scans. Note the inverted polarity relative to
// AllConfirmedNonClinical: it flags the session when any scan is clinical
// or unconfirmed, exactly as the production repair path always has.
func ScanListMissingClinical(scans []Scan) bool {
	for i := range scans {
		t := scans[i].Type
		if t.Clinical || !t.Confirmed {
			return true
		}
	}
	return false
}
