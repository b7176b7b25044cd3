package commands_test

import (
	"testing"
	"time"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/core/domain/model/production"
	"manufacturing/internal/core/domain/model/qa"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductionFactory(uow *MockUoW) productionUoWFactory {
	return productionUoWFactory{uowFactory{uow: uow}}
}

func restoreSession(t *testing.T, itemID *kernel.UUID, status production.Status, produced int) *production.Session {
	t.Helper()
	s, err := production.RestoreSession(production.SessionRecord{
		ID: kernel.NewUUID(), OrderItemID: itemID, Zone: "VIKING", Station: "VIK-2",
		TargetQuantity: 100, ProducedQuantity: produced, Status: status, StartedAt: testNow.Add(-6 * time.Hour),
	}, []production.Worker{{ID: kernel.NewUUID(), UserID: kernel.NewUUID(), ScanOnAt: testNow.Add(-6 * time.Hour)}}, nil)
	require.NoError(t, err)
	return s
}

func TestOpenProductionSessionCommandHandler_Handle_StartsReadyItem(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemReady)
	itemID := o.Items()[0].ID()
	actor := actorWith(t, kernel.RoleFloorWorker)
	cmd, err := commands.NewOpenProductionSessionCommand(commands.OpenProductionSessionParams{
		SessionID: kernel.NewUUID(), OrderItemID: &itemID, Zone: "VIKING", Station: "VIK-2", Actor: actor,
	})
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	sessions := new(MockSessionRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetByItemID", ctx, itemID).Return(o, nil).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessions).Once(),
		sessions.On("Add", ctx, mock.MatchedBy(func(s *production.Session) bool {
			return s.TargetQuantity() == 100 && s.Status() == production.StatusActive &&
				len(s.Workers()) == 1 && s.Workers()[0].UserID.IsEqual(actor.ID())
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewOpenProductionSessionCommandHandler(newProductionFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.ItemInProduction, o.Items()[0].Status())
	assert.Equal(t, order.OrderInProduction, o.Status())
	uow.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestOpenProductionSessionCommandHandler_Handle_ItemNotReadyStillOpens(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemCutList)
	itemID := o.Items()[0].ID()
	cmd, err := commands.NewOpenProductionSessionCommand(commands.OpenProductionSessionParams{
		SessionID: kernel.NewUUID(), OrderItemID: &itemID, Zone: "VIKING", Station: "VIK-2",
		TargetQuantity: 30, Actor: actorWith(t, kernel.RoleFloorWorker),
	})
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	sessions := new(MockSessionRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetByItemID", ctx, itemID).Return(o, nil).Once(),
		uow.On("SessionRepository").Return(sessions).Once(),
		sessions.On("Add", ctx, mock.MatchedBy(func(s *production.Session) bool {
			return s.TargetQuantity() == 30
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewOpenProductionSessionCommandHandler(newProductionFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Equal(t, order.ItemCutList, o.Items()[0].Status())
	uow.AssertExpectations(t)
}

func TestNewOpenProductionSessionCommand_Validation(t *testing.T) {
	_, err := commands.NewOpenProductionSessionCommand(commands.OpenProductionSessionParams{
		SessionID: kernel.NewUUID(), Zone: " ", Actor: actorWith(t, kernel.RoleFloorWorker), TargetQuantity: -1,
	})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestLogProductionQuantityCommandHandler_Handle_ClampsRunningTotal(t *testing.T) {
	ctx := t.Context()
	s := restoreSession(t, nil, production.StatusActive, 10)
	userID := kernel.NewUUID()

	sessions := new(MockSessionRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("SessionRepository").Return(sessions)
	sessions.On("Get", ctx, s.ID()).Return(s, nil)
	sessions.On("Update", ctx, s).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	h := commands.NewLogProductionQuantityCommandHandler(newProductionFactory(uow))
	var totals []int
	for _, delta := range []int{-5, 20, -40} {
		cmd, err := commands.NewLogProductionQuantityCommand(s.ID(), delta, userID)
		require.NoError(t, err)
		entry, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, delta, entry.QuantityChange)
		totals = append(totals, entry.RunningTotal)
	}

	assert.Equal(t, []int{5, 25, 0}, totals)
	assert.Equal(t, 0, s.ProducedQuantity())
	uow.AssertNumberOfCalls(t, "Commit", 3)
}

func TestLogProductionQuantityCommandHandler_Handle_PausedSessionRejects(t *testing.T) {
	ctx := t.Context()
	s := restoreSession(t, nil, production.StatusPaused, 10)
	cmd, err := commands.NewLogProductionQuantityCommand(s.ID(), 5, kernel.NewUUID())
	require.NoError(t, err)

	sessions := new(MockSessionRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessions).Once(),
		sessions.On("Get", ctx, s.ID()).Return(s, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewLogProductionQuantityCommandHandler(newProductionFactory(uow))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrTransitionIsForbidden)
	sessions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestPauseResumeProductionSession(t *testing.T) {
	ctx := t.Context()
	s := restoreSession(t, nil, production.StatusActive, 0)

	sessions := new(MockSessionRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("SessionRepository").Return(sessions)
	sessions.On("Get", ctx, s.ID()).Return(s, nil)
	sessions.On("Update", ctx, s).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	factory := newProductionFactory(uow)

	pause, err := commands.NewPauseProductionSessionCommand(s.ID(), "breakdown", "hydraulics")
	require.NoError(t, err)
	pauseHandler := commands.NewPauseProductionSessionCommandHandler(factory)
	require.NoError(t, pauseHandler.Handle(ctx, pause))
	assert.Equal(t, production.StatusPaused, s.Status())

	require.ErrorIs(t, pauseHandler.Handle(ctx, pause), errs.ErrTransitionIsForbidden)

	resume, err := commands.NewResumeProductionSessionCommand(s.ID())
	require.NoError(t, err)
	resumeHandler := commands.NewResumeProductionSessionCommandHandler(factory)
	require.NoError(t, resumeHandler.Handle(ctx, resume))
	assert.Equal(t, production.StatusActive, s.Status())
	require.Len(t, s.Pauses(), 1)
	assert.NotNil(t, s.Pauses()[0].ResumedAt)
	assert.NotNil(t, s.Pauses()[0].DurationMinutes)
}

func TestNewPauseProductionSessionCommand_UnknownReason(t *testing.T) {
	_, err := commands.NewPauseProductionSessionCommand(kernel.NewUUID(), "lunch", "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAddSessionWorkerCommandHandler_Handle_DuplicateIsConflict(t *testing.T) {
	ctx := t.Context()
	s := restoreSession(t, nil, production.StatusActive, 0)
	existing := s.Workers()[0].UserID

	sessions := new(MockSessionRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("SessionRepository").Return(sessions)
	sessions.On("Get", ctx, s.ID()).Return(s, nil)
	sessions.On("Update", ctx, s).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	h := commands.NewAddSessionWorkerCommandHandler(newProductionFactory(uow))

	newcomer, err := commands.NewAddSessionWorkerCommand(s.ID(), kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, newcomer))

	again, err := commands.NewAddSessionWorkerCommand(s.ID(), existing)
	require.NoError(t, err)
	require.ErrorIs(t, h.Handle(ctx, again), errs.ErrConflict)
	assert.Len(t, s.Workers(), 2)
}

func TestCompleteProductionSessionCommandHandler_Handle_TargetMetOpensInspection(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemInProduction)
	itemID := o.Items()[0].ID()
	s := restoreSession(t, &itemID, production.StatusActive, 100)
	cmd, err := commands.NewCompleteProductionSessionCommand(s.ID(), nil, false, actorWith(t, kernel.RoleFloorWorker))
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	sessions := new(MockSessionRepository)
	inspections := new(MockInspectionRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	uow.On("SessionRepository").Return(sessions)
	uow.On("InspectionRepository").Return(inspections)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		sessions.On("Get", ctx, s.ID()).Return(s, nil).Once(),
		orders.On("GetByItemID", ctx, itemID).Return(o, nil).Once(),
		inspections.On("HasPendingForItem", ctx, itemID).Return(false, nil).Once(),
		sessions.On("Update", ctx, s).Return(nil).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		inspections.On("Add", ctx, mock.MatchedBy(func(i *qa.Inspection) bool {
			return i.IsPending() && i.Type() == qa.TypeFinal && i.BatchSize() == 100
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCompleteProductionSessionCommandHandler(newProductionFactory(uow))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.TargetMet)
	require.NotNil(t, result.Inspection)
	assert.Equal(t, production.StatusCompleted, s.Status())
	assert.Equal(t, 100, o.Items()[0].ProducedQuantity())
	assert.Equal(t, order.ItemInProduction, o.Items()[0].Status(), "completion never finishes the item")
	orders.AssertExpectations(t)
	inspections.AssertExpectations(t)
}

func TestCompleteProductionSessionCommandHandler_Handle_ShortWithoutForce(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemInProduction)
	itemID := o.Items()[0].ID()
	s := restoreSession(t, &itemID, production.StatusActive, 35)
	cmd, err := commands.NewCompleteProductionSessionCommand(s.ID(), nil, false, actorWith(t, kernel.RoleFloorWorker))
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	sessions := new(MockSessionRepository)
	inspections := new(MockInspectionRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	uow.On("SessionRepository").Return(sessions)
	uow.On("InspectionRepository").Return(inspections)
	uow.On("Begin", ctx).Return(nil).Once()
	sessions.On("Get", ctx, s.ID()).Return(s, nil).Once()
	orders.On("GetByItemID", ctx, itemID).Return(o, nil).Once()
	inspections.On("HasPendingForItem", ctx, itemID).Return(false, nil).Once()
	sessions.On("Update", ctx, s).Return(nil).Once()
	orders.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCompleteProductionSessionCommandHandler(newProductionFactory(uow))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, result.TargetMet)
	assert.Nil(t, result.Inspection)
	assert.Equal(t, 35, o.Items()[0].ProducedQuantity())
	inspections.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCompleteProductionSessionCommandHandler_Handle_ForceNeedsRole(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemInProduction)
	itemID := o.Items()[0].ID()
	s := restoreSession(t, &itemID, production.StatusActive, 35)
	cmd, err := commands.NewCompleteProductionSessionCommand(s.ID(), nil, true, actorWith(t, kernel.RoleFloorWorker))
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	sessions := new(MockSessionRepository)
	inspections := new(MockInspectionRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	uow.On("SessionRepository").Return(sessions)
	uow.On("InspectionRepository").Return(inspections)
	uow.On("Begin", ctx).Return(nil).Once()
	sessions.On("Get", ctx, s.ID()).Return(s, nil).Once()
	orders.On("GetByItemID", ctx, itemID).Return(o, nil).Once()
	inspections.On("HasPendingForItem", ctx, itemID).Return(false, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCompleteProductionSessionCommandHandler(newProductionFactory(uow))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Equal(t, production.StatusActive, s.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestApproveQAInspectionCommandHandler_Handle_FinishesItem(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemInProduction, order.ItemFinished)
	itemID := o.Items()[0].ID()
	inspection, err := qa.NewPendingInspection(kernel.NewUUID(), itemID, nil, 100, "Auto-created: production target met", testNow)
	require.NoError(t, err)
	cmd, err := commands.NewApproveQAInspectionCommand(inspection.ID(), actorWith(t, kernel.RoleQALead))
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	inspections := new(MockInspectionRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	uow.On("InspectionRepository").Return(inspections)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		inspections.On("Get", ctx, inspection.ID()).Return(inspection, nil).Once(),
		orders.On("GetByItemID", ctx, itemID).Return(o, nil).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		inspections.On("Update", ctx, inspection).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewApproveQAInspectionCommandHandler(newProductionFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, qa.ResultPassed, inspection.Result())
	assert.Equal(t, order.OrderFinished, o.Status())
	assert.Equal(t, "2/2 items complete", o.Progress())
	orders.AssertExpectations(t)
	inspections.AssertExpectations(t)
}

func TestApproveQAInspectionCommandHandler_Handle_FloorWorkerDenied(t *testing.T) {
	ctx := t.Context()
	inspection, err := qa.NewPendingInspection(kernel.NewUUID(), kernel.NewUUID(), nil, 10, "", testNow)
	require.NoError(t, err)
	cmd, err := commands.NewApproveQAInspectionCommand(inspection.ID(), actorWith(t, kernel.RoleFloorWorker))
	require.NoError(t, err)

	inspections := new(MockInspectionRepository)
	uow := new(MockUoW)
	uow.On("InspectionRepository").Return(inspections)
	uow.On("Begin", ctx).Return(nil).Once()
	inspections.On("Get", ctx, inspection.ID()).Return(inspection, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewApproveQAInspectionCommandHandler(newProductionFactory(uow))
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrPermissionDenied)
	assert.True(t, inspection.IsPending())
	uow.AssertNotCalled(t, "OrderRepository")
}

func TestRecordQAInspectionCommandHandler_Handle_WithDefects(t *testing.T) {
	ctx := t.Context()
	o := orderWith(t, order.ItemInProduction)
	itemID := o.Items()[0].ID()
	cmd, err := commands.NewRecordQAInspectionCommand(commands.RecordQAInspectionParams{
		InspectionID: kernel.NewUUID(),
		OrderItemID:  &itemID,
		Type:         "setup",
		BatchSize:    20,
		Passed:       false,
		Defects:      []commands.DefectInput{{Type: "rework", Quantity: 3, Description: "nail heads proud"}},
		Actor:        actorWith(t, kernel.RoleQALead),
	})
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	inspections := new(MockInspectionRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	uow.On("InspectionRepository").Return(inspections)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orders.On("GetByItemID", ctx, itemID).Return(o, nil).Once(),
		inspections.On("Add", ctx, mock.MatchedBy(func(i *qa.Inspection) bool {
			return i.Result() == qa.ResultFailed && i.Type() == qa.TypeSetup &&
				len(i.Defects()) == 1 && i.Defects()[0].Quantity == 3
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewRecordQAInspectionCommandHandler(newProductionFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.ItemInProduction, o.Items()[0].Status())
	inspections.AssertExpectations(t)
}

func TestNewRecordQAInspectionCommand_InvalidDefect(t *testing.T) {
	_, err := commands.NewRecordQAInspectionCommand(commands.RecordQAInspectionParams{
		InspectionID: kernel.NewUUID(),
		Defects:      []commands.DefectInput{{Type: "scrap", Quantity: 0}},
		Actor:        actorWith(t, kernel.RoleQALead),
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
