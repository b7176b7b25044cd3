package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// AddOrderItemCommand appends a tendered line to an existing order.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	spec    order.ItemSpec

	guard guard.ConstructorGuard
}

func NewAddOrderItemCommand(orderID, itemID kernel.UUID, spec order.ItemSpec) (AddOrderItemCommand, error) {
	cmd := AddOrderItemCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		orderID.Validate(),
		itemID.Validate(),
		cmd.setSpec(spec),
	); err != nil {
		return AddOrderItemCommand{}, err
	}
	cmd.orderID = orderID
	cmd.itemID = itemID

	return cmd, nil
}

func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

func (c AddOrderItemCommand) OrderID() kernel.UUID { return c.orderID }
func (c AddOrderItemCommand) ItemID() kernel.UUID { return c.itemID }
func (c AddOrderItemCommand) Spec() order.ItemSpec { return c.spec }

func (c *AddOrderItemCommand) setSpec(spec order.ItemSpec) error {
	if spec.Quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	c.spec = spec
	return nil
}
