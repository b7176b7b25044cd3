package commands_test

import (
	"context"
	"testing"
	"time"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/notification"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/core/domain/model/production"
	"manufacturing/internal/core/domain/model/qa"
	"manufacturing/internal/core/domain/model/schedule"
	"manufacturing/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByItemID(ctx context.Context, itemID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, itemID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *production.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *production.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id kernel.UUID) (*production.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*production.Session)
	return s, args.Error(1)
}

type MockInspectionRepository struct{ mock.Mock }

func (m *MockInspectionRepository) Add(ctx context.Context, i *qa.Inspection) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockInspectionRepository) Update(ctx context.Context, i *qa.Inspection) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockInspectionRepository) Get(ctx context.Context, id kernel.UUID) (*qa.Inspection, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(*qa.Inspection)
	return i, args.Error(1)
}

func (m *MockInspectionRepository) HasPendingForItem(ctx context.Context, itemID kernel.UUID) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

type MockScheduleRepository struct{ mock.Mock }

func (m *MockScheduleRepository) Add(ctx context.Context, e *schedule.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockScheduleRepository) Update(ctx context.Context, e *schedule.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockScheduleRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.Entry, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*schedule.Entry)
	return e, args.Error(1)
}

type MockCapacityRepository struct{ mock.Mock }

func (m *MockCapacityRepository) Upsert(ctx context.Context, c schedule.StationCapacity) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCapacityRepository) Get(ctx context.Context, station string) (schedule.StationCapacity, bool, error) {
	args := m.Called(ctx, station)
	return args.Get(0).(schedule.StationCapacity), args.Bool(1), args.Error(2)
}

type MockCapacityCache struct{ mock.Mock }

func (m *MockCapacityCache) Get(ctx context.Context, station string) (int, bool, error) {
	args := m.Called(ctx, station)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockCapacityCache) Set(ctx context.Context, station string, maxUnitsPerDay int) error {
	return m.Called(ctx, station, maxUnitsPerDay).Error(0)
}

func (m *MockCapacityCache) Invalidate(ctx context.Context, station string) error {
	return m.Called(ctx, station).Error(0)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) AddUnits(ctx context.Context, sku string, quantity int) error {
	return m.Called(ctx, sku, quantity).Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Enqueue(ctx context.Context, msg *notification.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, msg *notification.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockNotificationRepository) ListQueued(ctx context.Context, limit int) ([]*notification.Message, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]*notification.Message)
	return msgs, args.Error(1)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, recipient, subject, body string) error {
	return m.Called(ctx, recipient, subject, body).Error(0)
}

type MockNotificationRecorder struct{ mock.Mock }

func (m *MockNotificationRecorder) RecordNotification(status string) {
	m.Called(status)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) SessionRepository() ports.SessionRepository {
	return m.Called().Get(0).(ports.SessionRepository)
}

func (m *MockUoW) InspectionRepository() ports.InspectionRepository {
	return m.Called().Get(0).(ports.InspectionRepository)
}

func (m *MockUoW) ScheduleRepository() ports.ScheduleRepository {
	return m.Called().Get(0).(ports.ScheduleRepository)
}

func (m *MockUoW) CapacityRepository() ports.CapacityRepository {
	return m.Called().Get(0).(ports.CapacityRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	return m.Called().Get(0).(ports.InventoryRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	return m.Called().Get(0).(ports.NotificationRepository)
}

// uowFactory hands out the same MockUoW for every unit of work type.
type uowFactory struct{ uow *MockUoW }

type (
	orderUoWFactory        struct{ uowFactory }
	productionUoWFactory   struct{ uowFactory }
	scheduleUoWFactory     struct{ uowFactory }
	stockUoWFactory        struct{ uowFactory }
	notificationUoWFactory struct{ uowFactory }
)

func (f orderUoWFactory) Create() commands.OrderUoW               { return f.uow }
func (f productionUoWFactory) Create() commands.ProductionUoW     { return f.uow }
func (f scheduleUoWFactory) Create() commands.ScheduleUoW         { return f.uow }
func (f stockUoWFactory) Create() commands.StockUoW               { return f.uow }
func (f notificationUoWFactory) Create() commands.NotificationUoW { return f.uow }

var testNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func actorWith(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

type itemFixture struct {
	status   order.ItemStatus
	sku      string
	produced int
}

// restoreOrder builds a stored order with one 100-unit item per fixture.
func restoreOrder(t *testing.T, email string, deliveryType order.DeliveryType, stockRun bool, items ...itemFixture) *order.Order {
	t.Helper()
	orderID := kernel.NewUUID()
	restored := make([]*order.Item, 0, len(items))
	statuses := make([]order.ItemStatus, 0, len(items))
	for _, f := range items {
		it, err := order.RestoreItem(order.ItemRecord{
			ID: kernel.NewUUID(), OrderID: orderID, SKU: f.sku, ProductName: "Pallet", Quantity: 100,
			ProducedQuantity: f.produced, UnitPriceCents: 1500, Status: f.status,
		})
		require.NoError(t, err)
		restored = append(restored, it)
		statuses = append(statuses, f.status)
	}

	var clientID *kernel.UUID
	if !stockRun {
		id := kernel.NewUUID()
		clientID = &id
	}
	o, err := order.RestoreOrder(order.OrderRecord{
		ID: orderID, Number: "ORD-77", ClientID: clientID, ContactEmail: email,
		DeliveryType: deliveryType, IsStockRun: stockRun,
		Status:    order.AggregateStatus(order.OrderTendered, statuses),
		CreatedAt: testNow.Add(-48 * time.Hour),
	}, restored)
	require.NoError(t, err)
	return o
}

func orderWith(t *testing.T, statuses ...order.ItemStatus) *order.Order {
	t.Helper()
	items := make([]itemFixture, 0, len(statuses))
	for _, s := range statuses {
		items = append(items, itemFixture{status: s})
	}
	return restoreOrder(t, "", order.DeliveryTypeDelivery, false, items...)
}
