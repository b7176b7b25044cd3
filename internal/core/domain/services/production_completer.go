package services

import (
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/core/domain/model/production"
	"manufacturing/internal/core/domain/model/qa"
	"manufacturing/internal/pkg/errs"
)

// CompleteProductionParams carry everything needed to close a session.
// Order is the aggregate owning the session's item and may be nil when the
// session is not tied to an item.
type CompleteProductionParams struct {
	Session              *production.Session
	Order                *order.Order
	FinalQuantity        *int
	Force                bool
	Actor                kernel.Actor
	HasPendingInspection bool
	InspectionID         kernel.UUID
	Now                  time.Time
}

// CompletionResult reports what completing a session did.
type CompletionResult struct {
	// QuantityDelta is the session's final output, credited to its item.
	QuantityDelta int
	TargetMet     bool
	// Inspection is the pending QA inspection opened by the completion, or nil.
	Inspection *qa.Inspection
}

// ProductionCompleter applies the production-completion rule: the session's
// final output is added to its item, and when the item's target is met (or an
// authorised role forces completion) a pending final inspection is opened.
// The item status is never changed here; approval of that inspection is the
// gate to F.
//
// No inspection is opened when the item is already finished or dispatched,
// when one is already pending for the item, or when the item is not in
// production (P), since only a P item can be released by approval. Forcing
// completion on an item below P is rejected before anything changes.
type ProductionCompleter struct{}

func NewProductionCompleter() ProductionCompleter {
	return ProductionCompleter{}
}

func (ProductionCompleter) Complete(p CompleteProductionParams) (CompletionResult, error) {
	if err := p.Session.Validate(); err != nil {
		return CompletionResult{}, err
	}
	if p.Force {
		if err := p.Actor.Require(p.Actor.CanForceComplete(), "force-complete production"); err != nil {
			return CompletionResult{}, err
		}
	}

	itemID := p.Session.OrderItemID()
	var item *order.Item
	if itemID != nil {
		if err := p.Order.Validate(); err != nil {
			return CompletionResult{}, errs.NewValueIsRequiredErrorWithCause("order", err)
		}
		var err error
		if item, err = p.Order.Item(*itemID); err != nil {
			return CompletionResult{}, err
		}
		if p.Force && !item.Status().IsDone() && item.Status() != order.ItemInProduction {
			return CompletionResult{}, errs.NewTransitionIsForbiddenError("order item", item.Status().String(),
				order.ItemFinished.String(), "force-complete needs the item in production (P)")
		}
	}

	if _, err := p.Session.Complete(p.FinalQuantity, p.Now); err != nil {
		return CompletionResult{}, err
	}
	result := CompletionResult{QuantityDelta: p.Session.ProducedQuantity()}

	if item == nil || item.Status().IsDone() {
		return result, nil
	}

	if err := p.Order.RecordItemProduction(*itemID, result.QuantityDelta); err != nil {
		return CompletionResult{}, err
	}
	result.TargetMet = item.TargetMet()
	if (!result.TargetMet && !p.Force) || p.HasPendingInspection || item.Status() != order.ItemInProduction {
		return result, nil
	}

	note := "Auto-created: production target met"
	if !result.TargetMet {
		note = fmt.Sprintf("Force-completed at %d/%d units", item.ProducedQuantity(), item.Quantity())
	}
	sessionID := p.Session.ID()
	var err error
	result.Inspection, err = qa.NewPendingInspection(p.InspectionID, *itemID, &sessionID, item.ProducedQuantity(), note, p.Now)
	if err != nil {
		return CompletionResult{}, err
	}
	return result, nil
}
