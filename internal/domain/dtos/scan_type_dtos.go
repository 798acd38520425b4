package dtos

import "imaging-report-service/internal/domain/entities"

// ConfirmScanTypesRequest marks which of the previously-shown scan types
// are clinically relevant. Shown is the full set presented to the
// administrator; Clinical is the marked subset.
type ConfirmScanTypesRequest struct {
	Shown    []uint `json:"shown"`
	Clinical []uint `json:"clinical"`
}

// ConfirmScanTypesResult reports the batch outcome together with the next
// page of unconfirmed types. An empty next page signals completion of the
// confirmation workflow.
type ConfirmScanTypesResult struct {
	Confirmed   int                 `json:"confirmed"`
	Unconfirmed int64               `json:"unconfirmed"`
	NextPage    []entities.ScanType `json:"next_page"`
	Done        bool                `json:"done"`
}
