package ports

import (
	"context"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/qa"
)

// InspectionRepository defines the persistence contract for QA inspections
// and their defects.
type InspectionRepository interface {
	Add(ctx context.Context, inspection *qa.Inspection) error
	Update(ctx context.Context, inspection *qa.Inspection) error
	Get(ctx context.Context, id kernel.UUID) (*qa.Inspection, error)

	// HasPendingForItem reports whether the item already has an inspection
	// waiting for approval.
	HasPendingForItem(ctx context.Context, itemID kernel.UUID) (bool, error)
}
