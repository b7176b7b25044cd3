package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/notification"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/core/domain/model/schedule"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestCreateScheduleEntryCommandHandler_Handle_QueuesTenderedItem(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemTendered, order.ItemTendered)
	itemID := o.Items()[0].ID()
	date := kernel.NewDate(testNow.AddDate(0, 0, 2))
	cmd, err := commands.NewCreateScheduleEntryCommand(commands.CreateScheduleEntryParams{
		EntryID: kernel.NewUUID(), OrderItemID: itemID, Zone: " VIKING ", Station: "VIK-2",
		ScheduledDate: date, Actor: actorWith(t, kernel.RolePlanner),
	})
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	entries := new(MockScheduleRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	uow.On("ScheduleRepository").Return(entries)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orders.On("GetByItemID", ctx, itemID).Return(o, nil).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		entries.On("Add", ctx, mock.MatchedBy(func(e *schedule.Entry) bool {
			return e.PlannedQuantity() == 100 && e.Zone() == "VIKING" && e.OrderID().IsEqual(o.ID()) &&
				e.Status() == schedule.StatusPlanned
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateScheduleEntryCommandHandler(scheduleUoWFactory{uowFactory{uow}})
	require.NoError(t, h.Handle(ctx, cmd))

	item := o.Items()[0]
	assert.Equal(t, order.ItemCutList, item.Status())
	assert.Equal(t, "VIK-2", item.Station())
	require.NotNil(t, item.ScheduledDate())
	assert.True(t, date.IsEqual(*item.ScheduledDate()))
	assert.Equal(t, order.OrderCutList, o.Status())
	entries.AssertExpectations(t)
}

func TestCreateScheduleEntryCommandHandler_Handle_LaterStatusOnlyAddsEntry(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemInProduction)
	itemID := o.Items()[0].ID()
	cmd, err := commands.NewCreateScheduleEntryCommand(commands.CreateScheduleEntryParams{
		EntryID: kernel.NewUUID(), OrderItemID: itemID, Zone: "TABLES", Station: "T-1",
		ScheduledDate: kernel.NewDate(testNow), PlannedQuantity: 40, Actor: actorWith(t, kernel.RolePlanner),
	})
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	entries := new(MockScheduleRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	uow.On("ScheduleRepository").Return(entries)
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("GetByItemID", ctx, itemID).Return(o, nil).Once()
	entries.On("Add", ctx, mock.MatchedBy(func(e *schedule.Entry) bool {
		return e.PlannedQuantity() == 40
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateScheduleEntryCommandHandler(scheduleUoWFactory{uowFactory{uow}})
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.ItemInProduction, o.Items()[0].Status())
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewCreateScheduleEntryCommand_Invalid(t *testing.T) {
	_, err := commands.NewCreateScheduleEntryCommand(commands.CreateScheduleEntryParams{
		EntryID: kernel.NewUUID(), OrderItemID: kernel.NewUUID(), Zone: "  ",
		ScheduledDate: kernel.NewDate(testNow), PlannedQuantity: -1, Actor: actorWith(t, kernel.RolePlanner),
	})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCancelScheduleEntryCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	entry, err := schedule.NewEntry(schedule.NewEntryParams{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), OrderItemID: kernel.NewUUID(),
		Zone: "VIKING", Station: "VIK-1", ScheduledDate: kernel.NewDate(testNow), PlannedQuantity: 10,
		CreatedBy: kernel.NewUUID(), CreatedAt: testNow,
	})
	require.NoError(t, err)
	cmd, err := commands.NewCancelScheduleEntryCommand(entry.ID())
	require.NoError(t, err)

	entries := new(MockScheduleRepository)
	uow := new(MockUoW)
	uow.On("ScheduleRepository").Return(entries)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		entries.On("Get", ctx, entry.ID()).Return(entry, nil).Once(),
		entries.On("Update", ctx, entry).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCancelScheduleEntryCommandHandler(scheduleUoWFactory{uowFactory{uow}})
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, schedule.StatusCancelled, entry.Status())
}

func TestSetStationCapacityCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name          string
		invalidateErr error
	}{
		{name: "invalidates cached limit"},
		{name: "cache failure does not fail the command", invalidateErr: errors.New("redis: connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := commands.NewSetStationCapacityCommand(" VIK-1 ", 250)
			require.NoError(t, err)

			capacities := new(MockCapacityRepository)
			cache := new(MockCapacityCache)
			uow := new(MockUoW)
			uow.On("CapacityRepository").Return(capacities)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				capacities.On("Upsert", ctx, mock.MatchedBy(func(c schedule.StationCapacity) bool {
					return c.Station() == "VIK-1" && c.MaxUnitsPerDay() == 250
				})).Return(nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				cache.On("Invalidate", ctx, "VIK-1").Return(tt.invalidateErr).Once(),
			)
			uow.On("Rollback", ctx).Return(nil).Once()

			h := commands.NewSetStationCapacityCommandHandler(scheduleUoWFactory{uowFactory{uow}}, cache, discardLogger)
			require.NoError(t, h.Handle(ctx, cmd))
			cache.AssertExpectations(t)
		})
	}
}

func TestSetStationCapacityCommandHandler_Handle_CommitFailureKeepsCache(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSetStationCapacityCommand("VIK-1", 250)
	require.NoError(t, err)

	capacities := new(MockCapacityRepository)
	cache := new(MockCapacityCache)
	uow := new(MockUoW)
	uow.On("CapacityRepository").Return(capacities)
	uow.On("Begin", ctx).Return(nil).Once()
	capacities.On("Upsert", ctx, mock.Anything).Return(nil).Once()
	uow.On("Commit", ctx).Return(errors.New("serialization failure")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewSetStationCapacityCommandHandler(scheduleUoWFactory{uowFactory{uow}}, cache, discardLogger)
	require.Error(t, h.Handle(ctx, cmd))
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestSetStationCapacityCommandHandler_Handle_WithoutCache(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSetStationCapacityCommand("VIK-1", 250)
	require.NoError(t, err)

	capacities := new(MockCapacityRepository)
	uow := new(MockUoW)
	uow.On("CapacityRepository").Return(capacities)
	uow.On("Begin", ctx).Return(nil).Once()
	capacities.On("Upsert", ctx, mock.Anything).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewSetStationCapacityCommandHandler(scheduleUoWFactory{uowFactory{uow}}, nil, discardLogger)
	require.NoError(t, h.Handle(ctx, cmd))
	capacities.AssertExpectations(t)
}

func TestNewSetStationCapacityCommand_RejectsNonPositiveLimit(t *testing.T) {
	_, err := commands.NewSetStationCapacityCommand("VIK-1", 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCompleteStockRunCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, "", order.DeliveryTypeCollection, true,
		itemFixture{status: order.ItemInProduction, sku: "PAL-1200", produced: 80},
		itemFixture{status: order.ItemReady, sku: "PAL-800"},
		itemFixture{status: order.ItemReady},
	)
	cmd, err := commands.NewCompleteStockRunCommand(o.ID())
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	inventory := new(MockInventoryRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	uow.On("InventoryRepository").Return(inventory)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		inventory.On("AddUnits", ctx, "PAL-1200", 80).Return(nil).Once(),
		inventory.On("AddUnits", ctx, "PAL-800", 100).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCompleteStockRunCommandHandler(stockUoWFactory{uowFactory{uow}})
	receipts, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, []order.StockReceipt{{SKU: "PAL-1200", Quantity: 80}, {SKU: "PAL-800", Quantity: 100}}, receipts)
	assert.Equal(t, order.OrderFinished, o.Status())
	inventory.AssertExpectations(t)
}

func TestCompleteStockRunCommandHandler_Handle_ClientOrderRejected(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemReady)
	cmd, err := commands.NewCompleteStockRunCommand(o.ID())
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	inventory := new(MockInventoryRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	uow.On("InventoryRepository").Return(inventory)
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCompleteStockRunCommandHandler(stockUoWFactory{uowFactory{uow}})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	inventory.AssertNotCalled(t, "AddUnits", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func queuedMessage(t *testing.T, recipient string) *notification.Message {
	t.Helper()
	m, err := notification.NewMessage(kernel.NewUUID(), kernel.NewUUID(), notification.KindDispatch,
		recipient, "Your order has been dispatched", "On its way.", testNow)
	require.NoError(t, err)
	return m
}

func TestDispatchNotificationsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	ok := queuedMessage(t, "buyer@example.com")
	bounced := queuedMessage(t, "nobody@example.invalid")
	cmd, err := commands.NewDispatchNotificationsCommand(10)
	require.NoError(t, err)

	outbox := new(MockNotificationRepository)
	mailer := new(MockMailer)
	recorder := new(MockNotificationRecorder)
	uow := new(MockUoW)
	uow.On("NotificationRepository").Return(outbox)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		outbox.On("ListQueued", ctx, 10).Return([]*notification.Message{ok, bounced}, nil).Once(),
		mailer.On("Send", ctx, "buyer@example.com", ok.Subject(), ok.Body()).Return(nil).Once(),
		outbox.On("Update", ctx, ok).Return(nil).Once(),
		mailer.On("Send", ctx, "nobody@example.invalid", bounced.Subject(), bounced.Body()).
			Return(errors.New("550 mailbox unavailable")).Once(),
		outbox.On("Update", ctx, bounced).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		recorder.On("RecordNotification", "sent").Once(),
		recorder.On("RecordNotification", "failed").Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewDispatchNotificationsCommandHandler(notificationUoWFactory{uowFactory{uow}}, mailer, recorder)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.DispatchNotificationsResult{Sent: 1, Failed: 1}, result)
	assert.Equal(t, notification.StatusSent, ok.Status())
	assert.NotNil(t, ok.SentAt())
	assert.Equal(t, notification.StatusFailed, bounced.Status())
	assert.Contains(t, bounced.LastError(), "550")
	recorder.AssertExpectations(t)
}

func TestDispatchNotificationsCommandHandler_Handle_UpdateErrorSkipsMetrics(t *testing.T) {
	ctx := t.Context()
	msg := queuedMessage(t, "buyer@example.com")
	cmd, err := commands.NewDispatchNotificationsCommand(5)
	require.NoError(t, err)

	outbox := new(MockNotificationRepository)
	mailer := new(MockMailer)
	recorder := new(MockNotificationRecorder)
	uow := new(MockUoW)
	uow.On("NotificationRepository").Return(outbox)
	uow.On("Begin", ctx).Return(nil).Once()
	outbox.On("ListQueued", ctx, 5).Return([]*notification.Message{msg}, nil).Once()
	mailer.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	outbox.On("Update", ctx, msg).Return(errors.New("connection reset")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewDispatchNotificationsCommandHandler(notificationUoWFactory{uowFactory{uow}}, mailer, recorder)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	recorder.AssertNotCalled(t, "RecordNotification", mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewDispatchNotificationsCommand_RejectsEmptyBatch(t *testing.T) {
	_, err := commands.NewDispatchNotificationsCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
