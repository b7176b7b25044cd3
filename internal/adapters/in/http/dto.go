package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewOrderItem struct {
	SKU                 string              `json:"sku"`
	ProductName         string              `json:"productName" validate:"required"`
	Quantity            int                 `json:"quantity" validate:"gt=0"`
	UnitPriceCents      int64               `json:"unitPriceCents" validate:"gte=0"`
	DrawingNumber       string              `json:"drawingNumber"`
	SpecialInstructions string              `json:"specialInstructions"`
	ETA                 *openapi_types.Date `json:"eta,omitempty"`
}

type NewOrder struct {
	Number       string              `json:"number" validate:"required"`
	ClientID     *openapi_types.UUID `json:"clientId,omitempty"`
	ContactEmail string              `json:"contactEmail" validate:"omitempty,email"`
	DeliveryType string              `json:"deliveryType" validate:"required,oneof=delivery collection"`
	ETADate      *openapi_types.Date `json:"etaDate,omitempty"`
	IsStockRun   bool                `json:"isStockRun"`
	Items        []NewOrderItem      `json:"items" validate:"dive"`
}

type StatusChange struct {
	Status string `json:"status" validate:"required"`
}

type SplitItem struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

type NewSession struct {
	OrderItemID    *openapi_types.UUID `json:"orderItemId,omitempty"`
	Zone           string              `json:"zone" validate:"required"`
	Station        string              `json:"station" validate:"required"`
	TargetQuantity int                 `json:"targetQuantity" validate:"gte=0"`
	IsSubAssembly  bool                `json:"isSubAssembly"`
	Notes          string              `json:"notes"`
}

type QuantityLog struct {
	Delta int `json:"delta"`
}

type PauseRequest struct {
	Reason string `json:"reason" validate:"required"`
	Notes  string `json:"notes"`
}

type SessionWorker struct {
	UserID openapi_types.UUID `json:"userId" validate:"required"`
}

type SessionCompletion struct {
	FinalQuantity *int `json:"finalQuantity,omitempty" validate:"omitempty,gte=0"`
	Force         bool `json:"force"`
}

type NewDefect struct {
	Type        string `json:"type" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
	Description string `json:"description"`
}

type NewInspection struct {
	OrderItemID *openapi_types.UUID `json:"orderItemId,omitempty"`
	SessionID   *openapi_types.UUID `json:"sessionId,omitempty"`
	Type        string              `json:"type"`
	BatchSize   int                 `json:"batchSize" validate:"gte=0"`
	Passed      bool                `json:"passed"`
	Notes       string              `json:"notes"`
	Defects     []NewDefect         `json:"defects" validate:"dive"`
}

type NewScheduleEntry struct {
	OrderItemID     openapi_types.UUID `json:"orderItemId" validate:"required"`
	Zone            string             `json:"zone" validate:"required"`
	Station         string             `json:"station"`
	ScheduledDate   openapi_types.Date `json:"scheduledDate"`
	PlannedQuantity int                `json:"plannedQuantity" validate:"gte=0"`
	Priority        int                `json:"priority"`
	RunOrder        int                `json:"runOrder"`
	Notes           string             `json:"notes"`
}

type CapacityLimit struct {
	MaxUnitsPerDay int `json:"maxUnitsPerDay" validate:"gt=0"`
}

type Created struct {
	ID openapi_types.UUID `json:"id"`
}

type DockingResult struct {
	Released int `json:"released"`
}

type SyncResult struct {
	Changed bool `json:"changed"`
}

type StockReceipt struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type ProductionLog struct {
	ID             openapi_types.UUID `json:"id"`
	QuantityChange int                `json:"quantityChange"`
	RunningTotal   int                `json:"runningTotal"`
	LoggedAt       time.Time          `json:"loggedAt"`
}

type CompletionResult struct {
	QuantityCredited int                 `json:"quantityCredited"`
	TargetMet        bool                `json:"targetMet"`
	InspectionID     *openapi_types.UUID `json:"inspectionId,omitempty"`
}

type OrderItem struct {
	ID               openapi_types.UUID  `json:"id"`
	SKU              string              `json:"sku"`
	ProductName      string              `json:"productName"`
	Quantity         int                 `json:"quantity"`
	ProducedQuantity int                 `json:"producedQuantity"`
	UnitPriceCents   int64               `json:"unitPriceCents"`
	LineTotalCents   int64               `json:"lineTotalCents"`
	Zone             string              `json:"zone,omitempty"`
	Station          string              `json:"station,omitempty"`
	ScheduledDate    *openapi_types.Date `json:"scheduledDate,omitempty"`
	SplitFromItemID  *openapi_types.UUID `json:"splitFromItemId,omitempty"`
	Status           string              `json:"status"`
}

type Order struct {
	ID              openapi_types.UUID  `json:"id"`
	Number          string              `json:"number"`
	ClientID        *openapi_types.UUID `json:"clientId,omitempty"`
	ContactEmail    string              `json:"contactEmail,omitempty"`
	DeliveryType    string              `json:"deliveryType"`
	ETADate         *openapi_types.Date `json:"etaDate,omitempty"`
	IsStockRun      bool                `json:"isStockRun"`
	Status          string              `json:"status"`
	Progress        string              `json:"progress"`
	TotalCents      int64               `json:"totalCents"`
	IsVerified      bool                `json:"isVerified"`
	DispatchedAt    *time.Time          `json:"dispatchedAt,omitempty"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	Items           []OrderItem         `json:"items"`
	StatusBreakdown map[string]int      `json:"statusBreakdown"`
}

type PendingInspection struct {
	ID           openapi_types.UUID  `json:"id"`
	OrderItemID  *openapi_types.UUID `json:"orderItemId,omitempty"`
	SessionID    *openapi_types.UUID `json:"sessionId,omitempty"`
	Type         string              `json:"type"`
	BatchSize    int                 `json:"batchSize"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	OrderID      *openapi_types.UUID `json:"orderId,omitempty"`
	OrderNumber  string              `json:"orderNumber,omitempty"`
	ProductName  string              `json:"productName,omitempty"`
	ItemQuantity int                 `json:"itemQuantity"`
	ItemProduced int                 `json:"itemProduced"`
	ItemStatus   string              `json:"itemStatus,omitempty"`
}

type ScheduleEntry struct {
	ID              openapi_types.UUID `json:"id"`
	OrderID         openapi_types.UUID `json:"orderId"`
	OrderItemID     openapi_types.UUID `json:"orderItemId"`
	OrderNumber     string             `json:"orderNumber"`
	ProductName     string             `json:"productName"`
	Zone            string             `json:"zone"`
	Station         string             `json:"station"`
	ScheduledDate   openapi_types.Date `json:"scheduledDate"`
	PlannedQuantity int                `json:"plannedQuantity"`
	Priority        int                `json:"priority"`
	RunOrder        int                `json:"runOrder"`
	Status          string             `json:"status"`
	ItemStatus      string             `json:"itemStatus"`
}

type CapacityReport struct {
	Station            string             `json:"station"`
	Date               openapi_types.Date `json:"date"`
	MaxCapacity        int                `json:"maxCapacity"`
	CurrentTotal       int                `json:"currentTotal"`
	AdditionalQuantity int                `json:"additionalQuantity"`
	NewTotal           int                `json:"newTotal"`
	WouldExceed        bool               `json:"wouldExceed"`
	RemainingCapacity  int                `json:"remainingCapacity"`
}
