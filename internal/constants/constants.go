// Package constants holds the enumerated classification registries shared by
// every workflow component. The sets are closed: an unrecognized code is a
// programming error, not a runtime condition to recover from.
package constants

import (
	"fmt"
	"time"
)

// ReporterStatus tracks the activity state of a reporting account.
type ReporterStatus int

const (
	Inactive ReporterStatus = iota
	New
	Active
)

var ReporterStatusLabels = map[ReporterStatus]string{
	Inactive: "inactive",
	New:      "new",
	Active:   "active",
}

// Conclusion is the pathology severity recorded against a report.
type Conclusion int

const (
	// NotRecorded marks legacy placeholder reports imported without content.
	NotRecorded Conclusion = -1

	NoPathology Conclusion = 0
	NonUrgent   Conclusion = 1
	Critical    Conclusion = 2
)

// ConclusionInfo pairs the short label with the long-form description shown
// to reporters.
type ConclusionInfo struct {
	Label       string
	Description string
}

var Conclusions = map[Conclusion]ConclusionInfo{
	NoPathology: {
		Label: "No pathology",
		Description: "No gross pathology that would require clinical " +
			"follow up has been identified",
	},
	NonUrgent: {
		Label: "Non-urgent pathology",
		Description: "Pathology that requires non-urgent clinical follow " +
			"up has been identified",
	},
	Critical: {
		Label: "Critical pathology",
		Description: "Pathology that requires urgent clinical follow up " +
			"has been identified. The individual should be referred for " +
			"follow up immediately.",
	},
}

// Pathologies are the conclusions that mandate written findings.
var Pathologies = []Conclusion{NonUrgent, Critical}

// IsPathology reports whether the conclusion requires clinical follow up.
func (c Conclusion) IsPathology() bool {
	return c == NonUrgent || c == Critical
}

// Valid reports whether the conclusion can be entered on a new report.
// NotRecorded is reserved for legacy placeholder reports.
func (c Conclusion) Valid() bool {
	_, ok := Conclusions[c]
	return ok
}

func (c Conclusion) String() string {
	if info, ok := Conclusions[c]; ok {
		return info.Label
	}
	if c == NotRecorded {
		return "Not recorded"
	}
	return fmt.Sprintf("unknown(%d)", int(c))
}

// SessionPriority orders the reporting queue.
type SessionPriority int

const (
	Ignore SessionPriority = iota
	Low
	Medium
	High
)

var PriorityLabels = map[SessionPriority]string{
	Ignore: "Ignored",
	Low:    "Low",
	Medium: "High",
	High:   "Urgent",
}

func (p SessionPriority) String() string {
	if label, ok := PriorityLabels[p]; ok {
		return label
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// DataStatus classifies the identifier/record health of an imaging session
// in the repair workflow. The declaration order is the queue sort order.
type DataStatus int

const (
	InvalidLabel DataStatus = iota
	NotFound
	NotChecked
	UnimelbDaris
	FixXNAT
	FoundNoClinical
	Present
	NotRequired
)

// DataStatusInfo pairs the queue label with the long-form description shown
// to administrators.
type DataStatusInfo struct {
	Label       string
	Description string
}

var DataStatuses = map[DataStatus]DataStatusInfo{
	InvalidLabel: {
		Label: "Invalid label",
		Description: "The subject/visit identifiers in the export could " +
			"not be parsed into an XNAT session label",
	},
	NotFound: {
		Label: "Not found",
		Description: "No XNAT session matching the derived label was " +
			"found in the source archive",
	},
	NotChecked: {
		Label: "Not checked",
		Description: "Reports had already been submitted for every " +
			"required modality, so the archive was not queried",
	},
	UnimelbDaris: {
		Label: "UniMelb DaRIS",
		Description: "The session is stored in the University of " +
			"Melbourne DaRIS repository and is not accessible from the " +
			"source archive",
	},
	FixXNAT: {
		Label: "Fix XNAT",
		Description: "The XNAT session exists but requires relabelling " +
			"before its scans can be matched",
	},
	FoundNoClinical: {
		Label: "Found, no clinical scans",
		Description: "The XNAT session was found but does not contain " +
			"any confirmed clinically relevant scans",
	},
	Present: {
		Label: "Present",
		Description: "The XNAT session and its scans were found in the " +
			"source archive",
	},
	NotRequired: {
		Label: "Not required",
		Description: "No report is required for this session",
	},
}

// FixOptions are the statuses an administrator may assign during repair.
var FixOptions = []DataStatus{
	Present, FixXNAT, UnimelbDaris, NotFound, InvalidLabel, NotRequired,
}

// RepairStatuses are the non-PRESENT statuses that place a session in the
// repair queue.
var RepairStatuses = []DataStatus{
	InvalidLabel, NotFound, UnimelbDaris, FixXNAT, FoundNoClinical,
}

// IsFixOption reports whether the status may be assigned during repair.
func (s DataStatus) IsFixOption() bool {
	for _, o := range FixOptions {
		if s == o {
			return true
		}
	}
	return false
}

func (s DataStatus) String() string {
	if info, ok := DataStatuses[s]; ok {
		return info.Label
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Modality identifies the imaging modality a report covers.
type Modality int

const (
	MRI Modality = iota
	PET
)

var ModalityLabels = map[Modality]string{
	MRI: "MRI",
	PET: "PET",
}

func (m Modality) String() string {
	if label, ok := ModalityLabels[m]; ok {
		return label
	}
	return fmt.Sprintf("unknown(%d)", int(m))
}

// ReportInterval is the period between sessions of the same subject before
// a new report is required.
const ReportInterval = 365 * 24 * time.Hour

// AlfredStartDate is the date the destination archive went live.
var AlfredStartDate = time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)

// Role is a user capability bit.
type Role int

const (
	ReporterRole Role = 1 << iota
	AdminRole
)
