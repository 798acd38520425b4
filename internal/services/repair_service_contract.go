package services

import (
	"context"

	"imaging-report-service/internal/domain/dtos"
	"imaging-report-service/internal/domain/entities"
)

// RepairServiceContract serves the administrator repair workflow.
type RepairServiceContract interface {
	// SessionsToRepair returns the repair queue: freshly reclassified
	// "found, no clinical scans" sessions followed by the five repair
	// statuses, ordered by descending status then ascending scan date.
	SessionsToRepair(ctx context.Context) ([]entities.ImgSession, error)
	// Repair applies an administrator correction. Validation failures
	// come back as a non-empty FieldErrors map with no state mutated;
	// otherwise the committed outcome describes how the repair concluded.
	Repair(ctx context.Context, request dtos.RepairRequest) (*dtos.RepairOutcome, dtos.FieldErrors, error)
}
