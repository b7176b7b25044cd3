package cmd

import (
	"context"
	"log/slog"
	"time"

	httpin "manufacturing/internal/adapters/in/http"
	"manufacturing/internal/adapters/out/identity"
	"manufacturing/internal/adapters/out/mail"
	"manufacturing/internal/adapters/out/postgres"
	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/jobs"
	"manufacturing/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const notificationRunTimeout = 30 * time.Second

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Metrics
	cache      ports.CapacityCache
	tokens     *identity.JWTManager
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. cache may be nil, in which case
// station limits are always read from the database.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, cache ports.CapacityCache, logger *slog.Logger) CompositionRoot {
	m := metrics.New()
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, m),
		metrics:    m,
		cache:      cache,
		tokens:     identity.NewJWTManager(configs.JWTSecret, configs.JWTIssuer, configs.JWTTokenTTL),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) productionUoWFactory() commands.ProductionUoWFactory {
	return FuncProductionUoWFactory(func() commands.ProductionUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) scheduleUoWFactory() commands.ScheduleUoWFactory {
	return FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateVerifyOrderCommandHandler() commands.VerifyOrderCommandHandler {
	return commands.NewVerifyOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCompleteOrderDockingCommandHandler() commands.CompleteOrderDockingCommandHandler {
	return commands.NewCompleteOrderDockingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCompleteItemDockingCommandHandler() commands.CompleteItemDockingCommandHandler {
	return commands.NewCompleteItemDockingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSplitOrderItemCommandHandler() commands.SplitOrderItemCommandHandler {
	return commands.NewSplitOrderItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetItemStatusCommandHandler() commands.SetItemStatusCommandHandler {
	return commands.NewSetItemStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordDeliveryCommandHandler() commands.RecordDeliveryCommandHandler {
	return commands.NewRecordDeliveryCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSyncOrderStatusCommandHandler() commands.SyncOrderStatusCommandHandler {
	return commands.NewSyncOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCompleteStockRunCommandHandler() commands.CompleteStockRunCommandHandler {
	var f commands.StockUoWFactory = FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewCompleteStockRunCommandHandler(f)
}

func (c *CompositionRoot) CreateOpenProductionSessionCommandHandler() commands.OpenProductionSessionCommandHandler {
	return commands.NewOpenProductionSessionCommandHandler(c.productionUoWFactory())
}

func (c *CompositionRoot) CreateLogProductionQuantityCommandHandler() commands.LogProductionQuantityCommandHandler {
	return commands.NewLogProductionQuantityCommandHandler(c.productionUoWFactory())
}

func (c *CompositionRoot) CreatePauseProductionSessionCommandHandler() commands.PauseProductionSessionCommandHandler {
	return commands.NewPauseProductionSessionCommandHandler(c.productionUoWFactory())
}

func (c *CompositionRoot) CreateResumeProductionSessionCommandHandler() commands.ResumeProductionSessionCommandHandler {
	return commands.NewResumeProductionSessionCommandHandler(c.productionUoWFactory())
}

func (c *CompositionRoot) CreateAddSessionWorkerCommandHandler() commands.AddSessionWorkerCommandHandler {
	return commands.NewAddSessionWorkerCommandHandler(c.productionUoWFactory())
}

func (c *CompositionRoot) CreateCompleteProductionSessionCommandHandler() commands.CompleteProductionSessionCommandHandler {
	return commands.NewCompleteProductionSessionCommandHandler(c.productionUoWFactory())
}

func (c *CompositionRoot) CreateRecordQAInspectionCommandHandler() commands.RecordQAInspectionCommandHandler {
	return commands.NewRecordQAInspectionCommandHandler(c.productionUoWFactory())
}

func (c *CompositionRoot) CreateApproveQAInspectionCommandHandler() commands.ApproveQAInspectionCommandHandler {
	return commands.NewApproveQAInspectionCommandHandler(c.productionUoWFactory())
}

func (c *CompositionRoot) CreateCreateScheduleEntryCommandHandler() commands.CreateScheduleEntryCommandHandler {
	return commands.NewCreateScheduleEntryCommandHandler(c.scheduleUoWFactory())
}

func (c *CompositionRoot) CreateCancelScheduleEntryCommandHandler() commands.CancelScheduleEntryCommandHandler {
	return commands.NewCancelScheduleEntryCommandHandler(c.scheduleUoWFactory())
}

func (c *CompositionRoot) CreateSetStationCapacityCommandHandler() commands.SetStationCapacityCommandHandler {
	return commands.NewSetStationCapacityCommandHandler(c.scheduleUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewDispatchNotificationsCommandHandler(f, mail.NewLogMailer(c.logger), c.metrics)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingInspectionsQueryHandler() queries.GetPendingInspectionsQueryHandler {
	return queries.NewGetPendingInspectionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListScheduleQueryHandler() queries.ListScheduleQueryHandler {
	return queries.NewListScheduleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCheckStationCapacityQueryHandler() queries.CheckStationCapacityQueryHandler {
	return queries.NewCheckStationCapacityQueryHandler(c.gormDB, c.cache, c.configs.DefaultStationCapacity, c.logger)
}

// HTTPHandlers collects every use case the API exposes.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:          ptr(c.CreateCreateOrderCommandHandler()),
		AddOrderItem:         ptr(c.CreateAddOrderItemCommandHandler()),
		VerifyOrder:          ptr(c.CreateVerifyOrderCommandHandler()),
		CompleteOrderDocking: ptr(c.CreateCompleteOrderDockingCommandHandler()),
		CompleteItemDocking:  ptr(c.CreateCompleteItemDockingCommandHandler()),
		SplitOrderItem:       ptr(c.CreateSplitOrderItemCommandHandler()),
		SetItemStatus:        ptr(c.CreateSetItemStatusCommandHandler()),
		SetOrderStatus:       ptr(c.CreateSetOrderStatusCommandHandler()),
		DispatchOrder:        ptr(c.CreateDispatchOrderCommandHandler()),
		RecordDelivery:       ptr(c.CreateRecordDeliveryCommandHandler()),
		SyncOrderStatus:      ptr(c.CreateSyncOrderStatusCommandHandler()),
		CompleteStockRun:     ptr(c.CreateCompleteStockRunCommandHandler()),

		OpenProductionSession:     ptr(c.CreateOpenProductionSessionCommandHandler()),
		LogProductionQuantity:     ptr(c.CreateLogProductionQuantityCommandHandler()),
		PauseProductionSession:    ptr(c.CreatePauseProductionSessionCommandHandler()),
		ResumeProductionSession:   ptr(c.CreateResumeProductionSessionCommandHandler()),
		AddSessionWorker:          ptr(c.CreateAddSessionWorkerCommandHandler()),
		CompleteProductionSession: ptr(c.CreateCompleteProductionSessionCommandHandler()),

		RecordQAInspection:  ptr(c.CreateRecordQAInspectionCommandHandler()),
		ApproveQAInspection: ptr(c.CreateApproveQAInspectionCommandHandler()),

		CreateScheduleEntry: ptr(c.CreateCreateScheduleEntryCommandHandler()),
		CancelScheduleEntry: ptr(c.CreateCancelScheduleEntryCommandHandler()),
		SetStationCapacity:  ptr(c.CreateSetStationCapacityCommandHandler()),

		GetOrder:              c.CreateGetOrderQueryHandler(),
		GetPendingInspections: c.CreateGetPendingInspectionsQueryHandler(),
		ListSchedule:          c.CreateListScheduleQueryHandler(),
		CheckStationCapacity:  c.CreateCheckStationCapacityQueryHandler(),
	}
}

// NewRouter builds the HTTP entry point with auth, metrics and request logging.
func (c *CompositionRoot) NewRouter(ctx context.Context) (*echo.Echo, error) {
	return httpin.NewRouter(ctx, httpin.NewServer(c.HTTPHandlers(), c.logger), httpin.RouterOptions{
		Verifier:       c.tokens,
		Observer:       c.metrics,
		MetricsHandler: c.metrics.Handler(),
		Logger:         c.logger,
	})
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	dispatcher := c.CreateDispatchNotificationsCommandHandler()
	return jobs.NewJobManager(
		jobs.NewNotificationDispatchJob(
			&dispatcher,
			c.configs.NotificationCron,
			c.configs.NotificationBatchSize,
			notificationRunTimeout,
			c.logger,
		),
	)
}

func ptr[T any](v T) *T {
	return &v
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncProductionUoWFactory func() commands.ProductionUoW

func (f FuncProductionUoWFactory) Create() commands.ProductionUoW {
	return f()
}

type FuncScheduleUoWFactory func() commands.ScheduleUoW

func (f FuncScheduleUoWFactory) Create() commands.ScheduleUoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
