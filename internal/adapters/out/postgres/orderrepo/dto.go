// Package orderrepo persists the order aggregate: one orders row and one
// order_items row per item.
package orderrepo

import (
	"time"

	"manufacturing/internal/adapters/out/postgres/convert"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Status holds the wire code (T … collected).
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number             string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	ClientID           *uuid.UUID `gorm:"type:uuid;index"`
	ContactEmail       string     `gorm:"type:varchar(255)"`
	DeliveryType       string     `gorm:"type:varchar(16);not null"`
	ETADate            *time.Time `gorm:"type:date"`
	IsStockRun         bool       `gorm:"not null;default:false"`
	Status             string     `gorm:"type:varchar(16);not null;index"`
	Progress           string     `gorm:"type:varchar(64)"`
	TotalCents         int64      `gorm:"not null"`
	IsVerified         bool       `gorm:"not null;default:false"`
	VerifiedBy         *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt         *time.Time
	DockingCompletedAt *time.Time
	DispatchedAt       *time.Time
	DeliveredAt        *time.Time
	CreatedAt          time.Time
	Items              []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is the order_items row. Seq keeps the item order of the
// aggregate stable across loads.
type OrderItemDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Seq                 int        `gorm:"not null"`
	SKU                 string     `gorm:"column:sku;type:varchar(64);index"`
	ProductName         string     `gorm:"type:varchar(255);not null"`
	Quantity            int        `gorm:"not null"`
	ProducedQuantity    int        `gorm:"not null;default:0"`
	UnitPriceCents      int64      `gorm:"not null"`
	LineTotalCents      int64      `gorm:"not null"`
	Zone                string     `gorm:"type:varchar(64)"`
	Station             string     `gorm:"type:varchar(64)"`
	ScheduledDate       *time.Time `gorm:"type:date"`
	ETA                 *time.Time `gorm:"column:eta;type:date"`
	DrawingNumber       string     `gorm:"type:varchar(128)"`
	SpecialInstructions string     `gorm:"type:text"`
	SplitFromItemID     *uuid.UUID `gorm:"type:uuid"`
	Status              string     `gorm:"type:varchar(16);not null;index"`
	DockingCompletedAt  *time.Time
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, it := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:                  it.ID().Bytes(),
			OrderID:             orderID,
			Seq:                 i,
			SKU:                 it.SKU(),
			ProductName:         it.ProductName(),
			Quantity:            it.Quantity(),
			ProducedQuantity:    it.ProducedQuantity(),
			UnitPriceCents:      it.UnitPriceCents(),
			LineTotalCents:      it.LineTotalCents(),
			Zone:                it.Zone(),
			Station:             it.Station(),
			ScheduledDate:       convert.DatePtr(it.ScheduledDate()),
			ETA:                 convert.DatePtr(it.ETA()),
			DrawingNumber:       it.DrawingNumber(),
			SpecialInstructions: it.SpecialInstructions(),
			SplitFromItemID:     convert.UUIDPtr(it.SplitFromItemID()),
			Status:              it.Status().String(),
			DockingCompletedAt:  it.DockingCompletedAt(),
		})
	}

	return OrderDTO{
		ID:                 orderID,
		Number:             o.Number(),
		ClientID:           convert.UUIDPtr(o.ClientID()),
		ContactEmail:       o.ContactEmail(),
		DeliveryType:       string(o.DeliveryType()),
		ETADate:            convert.DatePtr(o.ETADate()),
		IsStockRun:         o.IsStockRun(),
		Status:             o.Status().String(),
		Progress:           o.Progress(),
		TotalCents:         o.TotalCents(),
		IsVerified:         o.IsVerified(),
		VerifiedBy:         convert.UUIDPtr(o.VerifiedBy()),
		VerifiedAt:         o.VerifiedAt(),
		DockingCompletedAt: o.DockingCompletedAt(),
		DispatchedAt:       o.DispatchedAt(),
		DeliveredAt:        o.DeliveredAt(),
		CreatedAt:          o.CreatedAt(),
		Items:              items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := convert.KernelUUIDPtr(dto.ClientID)
	if err != nil {
		return nil, err
	}
	verifiedBy, err := convert.KernelUUIDPtr(dto.VerifiedBy)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseOrderStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	deliveryType, err := order.ParseDeliveryType(dto.DeliveryType)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		it, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, it)
	}

	return order.RestoreOrder(order.OrderRecord{
		ID:                 id,
		Number:             dto.Number,
		ClientID:           clientID,
		ContactEmail:       dto.ContactEmail,
		DeliveryType:       deliveryType,
		ETADate:            kernel.DatePtr(dto.ETADate),
		IsStockRun:         dto.IsStockRun,
		Status:             status,
		Progress:           dto.Progress,
		IsVerified:         dto.IsVerified,
		VerifiedBy:         verifiedBy,
		VerifiedAt:         dto.VerifiedAt,
		DockingCompletedAt: dto.DockingCompletedAt,
		DispatchedAt:       dto.DispatchedAt,
		DeliveredAt:        dto.DeliveredAt,
		CreatedAt:          dto.CreatedAt,
	}, items)
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	splitFrom, err := convert.KernelUUIDPtr(dto.SplitFromItemID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseItemStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(order.ItemRecord{
		ID:                  id,
		OrderID:             orderID,
		SKU:                 dto.SKU,
		ProductName:         dto.ProductName,
		Quantity:            dto.Quantity,
		ProducedQuantity:    dto.ProducedQuantity,
		UnitPriceCents:      dto.UnitPriceCents,
		Zone:                dto.Zone,
		Station:             dto.Station,
		ScheduledDate:       kernel.DatePtr(dto.ScheduledDate),
		ETA:                 kernel.DatePtr(dto.ETA),
		DrawingNumber:       dto.DrawingNumber,
		SpecialInstructions: dto.SpecialInstructions,
		SplitFromItemID:     splitFrom,
		Status:              status,
		DockingCompletedAt:  dto.DockingCompletedAt,
	})
}
