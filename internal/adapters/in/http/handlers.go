package http

import (
	"context"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/core/domain/model/production"
	"manufacturing/internal/core/domain/services"
)

// CommandHandler is a use case that only reports success or failure.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler is a use case or query that returns a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers lists every use case the API exposes. The composition root fills
// it with the application handlers.
type Handlers struct {
	CreateOrder          CommandHandler[commands.CreateOrderCommand]
	AddOrderItem         CommandHandler[commands.AddOrderItemCommand]
	VerifyOrder          CommandHandler[commands.VerifyOrderCommand]
	CompleteOrderDocking ResultHandler[commands.CompleteOrderDockingCommand, int]
	CompleteItemDocking  CommandHandler[commands.CompleteItemDockingCommand]
	SplitOrderItem       CommandHandler[commands.SplitOrderItemCommand]
	SetItemStatus        CommandHandler[commands.SetItemStatusCommand]
	SetOrderStatus       CommandHandler[commands.SetOrderStatusCommand]
	DispatchOrder        CommandHandler[commands.DispatchOrderCommand]
	RecordDelivery       CommandHandler[commands.RecordDeliveryCommand]
	SyncOrderStatus      ResultHandler[commands.SyncOrderStatusCommand, bool]
	CompleteStockRun     ResultHandler[commands.CompleteStockRunCommand, []order.StockReceipt]

	OpenProductionSession     CommandHandler[commands.OpenProductionSessionCommand]
	LogProductionQuantity     ResultHandler[commands.LogProductionQuantityCommand, production.Log]
	PauseProductionSession    CommandHandler[commands.PauseProductionSessionCommand]
	ResumeProductionSession   CommandHandler[commands.ResumeProductionSessionCommand]
	AddSessionWorker          CommandHandler[commands.AddSessionWorkerCommand]
	CompleteProductionSession ResultHandler[commands.CompleteProductionSessionCommand, services.CompletionResult]

	RecordQAInspection  CommandHandler[commands.RecordQAInspectionCommand]
	ApproveQAInspection CommandHandler[commands.ApproveQAInspectionCommand]

	CreateScheduleEntry CommandHandler[commands.CreateScheduleEntryCommand]
	CancelScheduleEntry CommandHandler[commands.CancelScheduleEntryCommand]
	SetStationCapacity  CommandHandler[commands.SetStationCapacityCommand]

	GetOrder              ResultHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	GetPendingInspections ResultHandler[queries.GetPendingInspectionsQuery, []queries.PendingInspectionResponse]
	ListSchedule          ResultHandler[queries.ListScheduleQuery, []queries.ScheduleEntryResponse]
	CheckStationCapacity  ResultHandler[queries.CheckStationCapacityQuery, services.CapacityReport]
}
