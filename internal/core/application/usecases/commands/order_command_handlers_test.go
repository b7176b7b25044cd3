package commands_test

import (
	"errors"
	"testing"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/notification"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderFactory(uow *MockUoW) orderUoWFactory {
	return orderUoWFactory{uowFactory{uow: uow}}
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		OrderID:      kernel.NewUUID(),
		Number:       "ORD-1042",
		ClientID:     &clientID,
		DeliveryType: "collection",
		Items:        []order.ItemSpec{{SKU: "BR-120", ProductName: "Bearer", Quantity: 40, UnitPriceCents: 250}},
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.OrderTendered && len(o.Items()) == 1 &&
				o.TotalCents() == 10000 && o.DeliveryType() == order.DeliveryTypeCollection
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(newOrderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_DuplicateNumber(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		OrderID: kernel.NewUUID(), Number: "ORD-1", IsStockRun: true,
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.Anything).Return(errs.NewConflictError("order number", "ORD-1")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(newOrderFactory(uow))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(newOrderFactory(new(MockUoW)))
	err := h.Handle(t.Context(), commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestAddOrderItemCommandHandler_Handle_ReaggregatesOrder(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemCutList)
	cmd, err := commands.NewAddOrderItemCommand(o.ID(), kernel.NewUUID(),
		order.ItemSpec{ProductName: "Skid", Quantity: 5, UnitPriceCents: 100})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewAddOrderItemCommandHandler(newOrderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Len(t, o.Items(), 2)
	assert.Equal(t, order.OrderCutList, o.Status())
	assert.Equal(t, "0/2 items complete", o.Progress())
	uow.AssertExpectations(t)
}

func TestVerifyOrderCommandHandler_Handle_EnqueuesAcknowledgement(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, "buyer@example.com", order.DeliveryTypeDelivery, false,
		itemFixture{status: order.ItemTendered}, itemFixture{status: order.ItemTendered})
	cmd, err := commands.NewVerifyOrderCommand(o.ID(), actorWith(t, kernel.RoleOffice))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	outbox := new(MockNotificationRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("NotificationRepository").Return(outbox).Once(),
		outbox.On("Enqueue", ctx, mock.MatchedBy(func(m *notification.Message) bool {
			return m.Kind() == notification.KindOrderAcknowledgement && m.Recipient() == "buyer@example.com"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewVerifyOrderCommandHandler(newOrderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.True(t, o.IsVerified())
	assert.Equal(t, order.OrderCutList, o.Status())
	assert.Equal(t, []order.ItemStatus{order.ItemCutList, order.ItemCutList}, o.ItemStatuses())
	uow.AssertExpectations(t)
	outbox.AssertExpectations(t)
}

func TestVerifyOrderCommandHandler_Handle_NoContactNoNotification(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemTendered)
	cmd, err := commands.NewVerifyOrderCommand(o.ID(), actorWith(t, kernel.RoleOffice))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewVerifyOrderCommandHandler(newOrderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "NotificationRepository")
	uow.AssertExpectations(t)
}

func TestVerifyOrderCommandHandler_Handle_PastDockingIsRejected(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemReady)
	cmd, err := commands.NewVerifyOrderCommand(o.ID(), actorWith(t, kernel.RoleOffice))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewVerifyOrderCommandHandler(newOrderFactory(uow))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrTransitionIsForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestVerifyOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewVerifyOrderCommand(id, actorWith(t, kernel.RoleOffice))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewVerifyOrderCommandHandler(newOrderFactory(uow))
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestCompleteOrderDockingCommandHandler_Handle_ReleasesCutListItems(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemCutList, order.ItemCutList, order.ItemTendered)
	cmd, err := commands.NewCompleteOrderDockingCommand(o.ID(), actorWith(t, kernel.RoleFloorWorker))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCompleteOrderDockingCommandHandler(newOrderFactory(uow))
	released, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, released)
	assert.Equal(t, order.OrderReady, o.Status())
	assert.NotNil(t, o.DockingCompletedAt())
	uow.AssertExpectations(t)
}

func TestCompleteOrderDockingCommandHandler_Handle_RoleDenied(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemCutList)
	cmd, err := commands.NewCompleteOrderDockingCommand(o.ID(), actorWith(t, kernel.RoleDriver))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCompleteOrderDockingCommandHandler(newOrderFactory(uow))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Equal(t, order.ItemCutList, o.Items()[0].Status())
	uow.AssertExpectations(t)
}

func TestCompleteItemDockingCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemCutList, order.ItemCutList)
	itemID := o.Items()[1].ID()
	cmd, err := commands.NewCompleteItemDockingCommand(itemID, actorWith(t, kernel.RolePlanner))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByItemID", ctx, itemID).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCompleteItemDockingCommandHandler(newOrderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, []order.ItemStatus{order.ItemCutList, order.ItemReady}, o.ItemStatuses())
	assert.Equal(t, order.OrderReady, o.Status())
	uow.AssertExpectations(t)
}

func TestSetItemStatusCommandHandler_Handle_DirectDockingIsForbidden(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemCutList)
	itemID := o.Items()[0].ID()
	cmd, err := commands.NewSetItemStatusCommand(itemID, "R", actorWith(t, kernel.RoleAdmin))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByItemID", ctx, itemID).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewSetItemStatusCommandHandler(newOrderFactory(uow))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrTransitionIsForbidden)
	assert.Contains(t, err.Error(), "docking")
	assert.Equal(t, order.ItemCutList, o.Items()[0].Status())
	uow.AssertExpectations(t)
}

func TestSetItemStatusCommandHandler_Handle_ForceFinish(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemInProduction)
	itemID := o.Items()[0].ID()
	cmd, err := commands.NewSetItemStatusCommand(itemID, "F", actorWith(t, kernel.RoleProductionManager))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByItemID", ctx, itemID).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewSetItemStatusCommandHandler(newOrderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.OrderFinished, o.Status())
	uow.AssertExpectations(t)
}

func TestNewSetItemStatusCommand_RejectsDeliveryOutcome(t *testing.T) {
	_, err := commands.NewSetItemStatusCommand(kernel.NewUUID(), "delivered", actorWith(t, kernel.RoleAdmin))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSetOrderStatusCommandHandler_Handle_DispatchEnqueuesNotice(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, "yard@example.com", order.DeliveryTypeCollection, false,
		itemFixture{status: order.ItemFinished}, itemFixture{status: order.ItemFinished})
	cmd, err := commands.NewSetOrderStatusCommand(o.ID(), "dispatched", actorWith(t, kernel.RoleDispatch))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	outbox := new(MockNotificationRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("NotificationRepository").Return(outbox).Once(),
		outbox.On("Enqueue", ctx, mock.MatchedBy(func(m *notification.Message) bool {
			return m.Kind() == notification.KindCollectionReady
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewSetOrderStatusCommandHandler(newOrderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.OrderDispatched, o.Status())
	assert.Equal(t, "2/2 items complete", o.Progress())
	uow.AssertExpectations(t)
	outbox.AssertExpectations(t)
}

func TestSetOrderStatusCommandHandler_Handle_ReadyIsDockingOnly(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemCutList)
	cmd, err := commands.NewSetOrderStatusCommand(o.ID(), "R", actorWith(t, kernel.RoleAdmin))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewSetOrderStatusCommandHandler(newOrderFactory(uow))
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrTransitionIsForbidden)
	uow.AssertExpectations(t)
}

func TestSplitOrderItemCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemReady)
	original := o.Items()[0]
	newItemID := kernel.NewUUID()

	tests := []struct {
		name    string
		qty     int
		wantErr error
	}{
		{name: "valid split", qty: 40},
		{name: "whole quantity", qty: 60, wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewSplitOrderItemCommand(original.ID(), newItemID, tt.qty)
			require.NoError(t, err)

			repo := new(MockOrderRepository)
			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			repo.On("GetByItemID", ctx, original.ID()).Return(o, nil).Once()
			if tt.wantErr == nil {
				repo.On("Update", ctx, o).Return(nil).Once()
				uow.On("Commit", ctx).Return(nil).Once()
			}
			uow.On("Rollback", ctx).Return(nil).Once()

			h := commands.NewSplitOrderItemCommandHandler(newOrderFactory(uow))
			err = h.Handle(ctx, cmd)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			uow.AssertExpectations(t)
		})
	}

	// The first case split 40 off 100; the second asked for all 60 remaining.
	require.Len(t, o.Items(), 2)
	assert.Equal(t, 60, original.Quantity())
	split := o.Items()[1]
	assert.Equal(t, 40, split.Quantity())
	assert.Equal(t, order.ItemTendered, split.Status())
	require.NotNil(t, split.SplitFromItemID())
	assert.True(t, split.SplitFromItemID().IsEqual(original.ID()))
}

func TestNewSplitOrderItemCommand_NonPositive(t *testing.T) {
	_, err := commands.NewSplitOrderItemCommand(kernel.NewUUID(), kernel.NewUUID(), 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestDispatchOrderCommandHandler_Handle_UnfinishedItemBlocks(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemFinished, order.ItemInProduction)
	cmd, err := commands.NewDispatchOrderCommand(o.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewDispatchOrderCommandHandler(newOrderFactory(uow))
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrTransitionIsForbidden)
	uow.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_DeliveryNotice(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, "buyer@example.com", order.DeliveryTypeDelivery, false, itemFixture{status: order.ItemFinished})
	cmd, err := commands.NewDispatchOrderCommand(o.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	outbox := new(MockNotificationRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("NotificationRepository").Return(outbox).Once(),
		outbox.On("Enqueue", ctx, mock.MatchedBy(func(m *notification.Message) bool {
			return m.Kind() == notification.KindDispatch
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewDispatchOrderCommandHandler(newOrderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.NotNil(t, o.DispatchedAt())
	uow.AssertExpectations(t)
}

func TestRecordDeliveryCommandHandler_Handle_CollectionOutcome(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, "", order.DeliveryTypeCollection, false, itemFixture{status: order.ItemDispatched})
	cmd, err := commands.NewRecordDeliveryCommand(o.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewRecordDeliveryCommandHandler(newOrderFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.OrderCollected, o.Status())
	assert.Equal(t, order.ItemDispatched, o.Items()[0].Status())
	uow.AssertExpectations(t)
}

func TestSyncOrderStatusCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("stale status is repaired", func(t *testing.T) {
		orderID := kernel.NewUUID()
		item, err := order.RestoreItem(order.ItemRecord{
			ID: kernel.NewUUID(), OrderID: orderID, ProductName: "Pallet", Quantity: 10, Status: order.ItemInProduction,
		})
		require.NoError(t, err)
		o, err := order.RestoreOrder(order.OrderRecord{
			ID: orderID, Number: "ORD-5", IsStockRun: true, DeliveryType: order.DeliveryTypeDelivery,
			Status: order.OrderCutList, Progress: "0/1 items complete",
		}, []*order.Item{item})
		require.NoError(t, err)
		cmd, err := commands.NewSyncOrderStatusCommand(orderID)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, orderID).Return(o, nil).Once(),
			repo.On("Update", ctx, o).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewSyncOrderStatusCommandHandler(newOrderFactory(uow))
		changed, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.OrderInProduction, o.Status())
		uow.AssertExpectations(t)
	})

	t.Run("consistent order is left alone", func(t *testing.T) {
		o := orderWith(t, order.ItemReady)
		cmd, err := commands.NewSyncOrderStatusCommand(o.ID())
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewSyncOrderStatusCommandHandler(newOrderFactory(uow))
		changed, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.False(t, changed)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestOrderCommandHandlers_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDispatchOrderCommand(kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(errors.New("connection refused")).Once()

	h := commands.NewDispatchOrderCommandHandler(newOrderFactory(uow))
	require.EqualError(t, h.Handle(ctx, cmd), "connection refused")
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}
