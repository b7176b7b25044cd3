package commands

import (
	"errors"
	"strings"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a client order or a stock run, optionally with
// its first lines.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    OrderID:      kernel.NewUUID(),
//	    Number:       "ORD-1042",
//	    ClientID:     &clientID,
//	    DeliveryType: "collection",
//	    Items:        []order.ItemSpec{{SKU: "BR-120", ProductName: "Bearer 120", Quantity: 40}},
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	params CreateOrderParams

	guard guard.ConstructorGuard
}

type CreateOrderParams struct {
	OrderID      kernel.UUID
	Number       string
	ClientID     *kernel.UUID
	ContactEmail string
	DeliveryType string
	ETADate      *kernel.Date
	IsStockRun   bool
	Items        []order.ItemSpec
}

func NewCreateOrderCommand(p CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(p.OrderID),
		cmd.setNumber(p.Number),
		cmd.setClient(p.ClientID, p.IsStockRun),
		cmd.setDeliveryType(p.DeliveryType),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.params.ContactEmail = strings.TrimSpace(p.ContactEmail)
	cmd.params.ETADate = p.ETADate
	cmd.params.Items = append([]order.ItemSpec(nil), p.Items...)

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.params.OrderID }
func (c CreateOrderCommand) Number() string { return c.params.Number }
func (c CreateOrderCommand) ClientID() *kernel.UUID { return c.params.ClientID }
func (c CreateOrderCommand) ContactEmail() string { return c.params.ContactEmail }
func (c CreateOrderCommand) DeliveryType() order.DeliveryType {
	return order.DeliveryType(c.params.DeliveryType)
}
func (c CreateOrderCommand) ETADate() *kernel.Date { return c.params.ETADate }
func (c CreateOrderCommand) IsStockRun() bool { return c.params.IsStockRun }
func (c CreateOrderCommand) Items() []order.ItemSpec {
	return append([]order.ItemSpec(nil), c.params.Items...)
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.params.OrderID = id
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	c.params.Number = number
	return nil
}

func (c *CreateOrderCommand) setClient(clientID *kernel.UUID, isStockRun bool) error {
	if clientID == nil {
		if !isStockRun {
			return errs.NewValueIsRequiredError("client")
		}
		c.params.IsStockRun = true
		return nil
	}
	if err := clientID.Validate(); err != nil {
		return err
	}
	c.params.ClientID = clientID
	c.params.IsStockRun = isStockRun
	return nil
}

func (c *CreateOrderCommand) setDeliveryType(deliveryType string) error {
	dt, err := order.ParseDeliveryType(deliveryType)
	if err != nil {
		return err
	}
	c.params.DeliveryType = string(dt)
	return nil
}
