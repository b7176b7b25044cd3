package queries

import (
	"context"
	"errors"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/qa"
	"manufacturing/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetPendingInspectionsQueryIsNotConstructed = errors.New(
	"GetPendingInspectionsQuery must be created via NewGetPendingInspectionsQuery constructor",
)

// GetPendingInspectionsQuery lists the QA queue: inspections waiting for a
// QA lead, oldest first.
type GetPendingInspectionsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingInspectionsQuery() GetPendingInspectionsQuery {
	return GetPendingInspectionsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPendingInspectionsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingInspectionsQueryIsNotConstructed)
}

// PendingInspectionResponse carries the inspection together with the order
// line it gates. Order fields are empty for inspections without an item.
type PendingInspectionResponse struct {
	ID           kernel.UUID
	OrderItemID  *kernel.UUID
	SessionID    *kernel.UUID
	Type         string
	BatchSize    int
	Notes        string
	CreatedAt    time.Time
	OrderID      *kernel.UUID
	OrderNumber  string
	ProductName  string
	ItemQuantity int
	ItemProduced int
	ItemStatus   string
}

type GetPendingInspectionsQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingInspectionsQueryHandler(db *gorm.DB) GetPendingInspectionsQueryHandler {
	return GetPendingInspectionsQueryHandler{db: db}
}

func (h GetPendingInspectionsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingInspectionsQuery,
) ([]PendingInspectionResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			qi.id,
			qi.order_item_id,
			qi.session_id,
			qi.inspection_type,
			qi.batch_size,
			COALESCE(qi.notes, ''),
			qi.created_at,
			oi.order_id,
			COALESCE(o.number, ''),
			COALESCE(oi.product_name, ''),
			COALESCE(oi.quantity, 0),
			COALESCE(oi.produced_quantity, 0),
			COALESCE(oi.status, '')
		FROM qa_inspections qi
		LEFT JOIN order_items oi ON oi.id = qi.order_item_id
		LEFT JOIN orders o ON o.id = oi.order_id
		WHERE qi.result = ?
		ORDER BY qi.created_at, qi.id
	`, string(qa.ResultPending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pending := make([]PendingInspectionResponse, 0)
	for rows.Next() {
		var (
			resp                       PendingInspectionResponse
			id                         uuid.UUID
			itemID, sessionID, orderID uuid.NullUUID
		)
		err = rows.Scan(
			&id,
			&itemID,
			&sessionID,
			&resp.Type,
			&resp.BatchSize,
			&resp.Notes,
			&resp.CreatedAt,
			&orderID,
			&resp.OrderNumber,
			&resp.ProductName,
			&resp.ItemQuantity,
			&resp.ItemProduced,
			&resp.ItemStatus,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderItemID, err = nullableUUID(itemID); err != nil {
			return nil, err
		}
		if resp.SessionID, err = nullableUUID(sessionID); err != nil {
			return nil, err
		}
		if resp.OrderID, err = nullableUUID(orderID); err != nil {
			return nil, err
		}
		pending = append(pending, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return pending, nil
}
