package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrSplitOrderItemCommandIsNotConstructed = errors.New(
	"SplitOrderItemCommand must be created via NewSplitOrderItemCommand constructor",
)

// SplitOrderItemCommand carves newQuantity units off an item into a new line.
// The upper bound depends on the item and is checked by the order.
type SplitOrderItemCommand struct { //nolint:recvcheck //using for validation
	itemID      kernel.UUID
	newItemID   kernel.UUID
	newQuantity int

	guard guard.ConstructorGuard
}

func NewSplitOrderItemCommand(itemID, newItemID kernel.UUID, newQuantity int) (SplitOrderItemCommand, error) {
	var errList []error
	errList = append(errList, itemID.Validate(), newItemID.Validate())
	if newQuantity <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("new quantity", newQuantity, 1, "item quantity - 1"))
	}
	if err := errors.Join(errList...); err != nil {
		return SplitOrderItemCommand{}, err
	}

	return SplitOrderItemCommand{
		itemID:      itemID,
		newItemID:   newItemID,
		newQuantity: newQuantity,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SplitOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrSplitOrderItemCommandIsNotConstructed)
}

func (c SplitOrderItemCommand) ItemID() kernel.UUID { return c.itemID }
func (c SplitOrderItemCommand) NewItemID() kernel.UUID { return c.newItemID }
func (c SplitOrderItemCommand) NewQuantity() int { return c.newQuantity }
