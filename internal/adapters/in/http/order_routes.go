package http

import (
	"net/http"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return fromAPIUUID(id)
}

func itemSpec(item NewOrderItem) order.ItemSpec {
	return order.ItemSpec{
		SKU:                 item.SKU,
		ProductName:         item.ProductName,
		Quantity:            item.Quantity,
		UnitPriceCents:      item.UnitPriceCents,
		DrawingNumber:       item.DrawingNumber,
		SpecialInstructions: item.SpecialInstructions,
		ETA:                 fromOptionalAPIDate(item.ETA),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	clientID, err := fromOptionalAPIUUID(body.ClientID)
	if err != nil {
		return s.fail(ctx, err)
	}

	specs := make([]order.ItemSpec, 0, len(body.Items))
	for _, item := range body.Items {
		specs = append(specs, itemSpec(item))
	}
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		OrderID:      orderID,
		Number:       body.Number,
		ClientID:     clientID,
		ContactEmail: body.ContactEmail,
		DeliveryType: body.DeliveryType,
		ETADate:      fromOptionalAPIDate(body.ETADate),
		IsStockRun:   body.IsStockRun,
		Items:        specs,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: toAPIUUID(orderID)})
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	o, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItem{
			ID:               toAPIUUID(item.ID),
			SKU:              item.SKU,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			ProducedQuantity: item.ProducedQuantity,
			UnitPriceCents:   item.UnitPriceCents,
			LineTotalCents:   item.LineTotalCents,
			Zone:             item.Zone,
			Station:          item.Station,
			ScheduledDate:    toOptionalAPIDate(item.ScheduledDate),
			SplitFromItemID:  toOptionalAPIUUID(item.SplitFromItemID),
			Status:           item.Status,
		}
	}
	return ctx.JSON(http.StatusOK, Order{
		ID:              toAPIUUID(o.ID),
		Number:          o.Number,
		ClientID:        toOptionalAPIUUID(o.ClientID),
		ContactEmail:    o.ContactEmail,
		DeliveryType:    o.DeliveryType,
		ETADate:         toOptionalAPIDate(o.ETADate),
		IsStockRun:      o.IsStockRun,
		Status:          o.Status,
		Progress:        o.Progress,
		TotalCents:      o.TotalCents,
		IsVerified:      o.IsVerified,
		DispatchedAt:    o.DispatchedAt,
		DeliveredAt:     o.DeliveredAt,
		CreatedAt:       o.CreatedAt,
		Items:           items,
		StatusBreakdown: o.StatusBreakdown,
	})
}

// AddOrderItem handles POST /api/v1/orders/:orderId/items.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var body NewOrderItem
	if err = bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	itemID := kernel.NewUUID()
	cmd, err := commands.NewAddOrderItemCommand(orderID, itemID, itemSpec(body))
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.AddOrderItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: toAPIUUID(itemID)})
}

// VerifyOrder handles POST /api/v1/orders/:orderId/verify.
func (s *Server) VerifyOrder(ctx echo.Context) error {
	orderID, actor, err := idAndActor(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewVerifyOrderCommand(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.VerifyOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrderDocking handles POST /api/v1/orders/:orderId/docking.
func (s *Server) CompleteOrderDocking(ctx echo.Context) error {
	orderID, actor, err := idAndActor(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCompleteOrderDockingCommand(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	released, err := s.handlers.CompleteOrderDocking.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, DockingResult{Released: released})
}

// SetOrderStatus handles PUT /api/v1/orders/:orderId/status.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	orderID, actor, err := idAndActor(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var body StatusChange
	if err = bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSetOrderStatusCommand(orderID, body.Status, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.SetOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SyncOrderStatus handles POST /api/v1/orders/:orderId/sync.
func (s *Server) SyncOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSyncOrderStatusCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	changed, err := s.handlers.SyncOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, SyncResult{Changed: changed})
}

// DispatchOrder handles POST /api/v1/orders/:orderId/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.DispatchOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RecordDelivery handles POST /api/v1/orders/:orderId/delivery.
func (s *Server) RecordDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewRecordDeliveryCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.RecordDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteStockRun handles POST /api/v1/orders/:orderId/stock-run/complete.
func (s *Server) CompleteStockRun(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCompleteStockRunCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	receipts, err := s.handlers.CompleteStockRun.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	response := make([]StockReceipt, len(receipts))
	for i, r := range receipts {
		response[i] = StockReceipt{SKU: r.SKU, Quantity: r.Quantity}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CompleteItemDocking handles POST /api/v1/items/:itemId/docking.
func (s *Server) CompleteItemDocking(ctx echo.Context) error {
	itemID, actor, err := idAndActor(ctx, "itemId")
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCompleteItemDockingCommand(itemID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.CompleteItemDocking.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SplitOrderItem handles POST /api/v1/items/:itemId/split.
func (s *Server) SplitOrderItem(ctx echo.Context) error {
	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var body SplitItem
	if err = bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	newItemID := kernel.NewUUID()
	cmd, err := commands.NewSplitOrderItemCommand(itemID, newItemID, body.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.SplitOrderItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: toAPIUUID(newItemID)})
}

// SetItemStatus handles PUT /api/v1/items/:itemId/status.
func (s *Server) SetItemStatus(ctx echo.Context) error {
	itemID, actor, err := idAndActor(ctx, "itemId")
	if err != nil {
		return s.fail(ctx, err)
	}
	var body StatusChange
	if err = bindBody(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSetItemStatusCommand(itemID, body.Status, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.SetItemStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func idAndActor(ctx echo.Context, param string) (kernel.UUID, kernel.Actor, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.Actor{}, err
	}
	id, err := pathUUID(ctx, param)
	if err != nil {
		return kernel.UUID{}, kernel.Actor{}, err
	}
	return id, actor, nil
}
