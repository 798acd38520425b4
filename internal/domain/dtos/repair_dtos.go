package dtos

// RepairRequest carries an administrator correction for a session: the new
// data status and, when the status adopts an archive identifier, the
// corrected XNAT session label.
type RepairRequest struct {
	SessionID string `json:"session_id"`
	Status    int    `json:"status"`
	XnatID    string `json:"xnat_id"`
}

// RepairOutcomeKind classifies how a repair concluded for presentation.
type RepairOutcomeKind int

const (
	RepairSuccess RepairOutcomeKind = iota
	// RepairInfo: the status changed to a non-PRESENT classification.
	RepairInfo
	// RepairWarning: the session was downgraded to FOUND_NO_CLINICAL, or
	// the identifier changed without a status change.
	RepairWarning
)

// RepairOutcome is the committed result of a repair operation.
type RepairOutcome struct {
	Kind    RepairOutcomeKind `json:"kind"`
	Message string            `json:"message"`
}
