package queries

import (
	"context"
	"database/sql"
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
// Items are listed in their stored order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}
	db := h.db.WithContext(ctx)

	var (
		resp                    GetOrderQueryResponse
		id                      uuid.UUID
		clientID                uuid.NullUUID
		etaDate                 sql.NullTime
		dispatchedAt, delivered sql.NullTime
	)
	err := db.Raw(`
		SELECT
			id,
			number,
			client_id,
			COALESCE(contact_email, ''),
			delivery_type,
			eta_date,
			is_stock_run,
			status,
			COALESCE(progress, ''),
			total_cents,
			is_verified,
			dispatched_at,
			delivered_at,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(
		&id,
		&resp.Number,
		&clientID,
		&resp.ContactEmail,
		&resp.DeliveryType,
		&etaDate,
		&resp.IsStockRun,
		&resp.Status,
		&resp.Progress,
		&resp.TotalCents,
		&resp.IsVerified,
		&dispatchedAt,
		&delivered,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ClientID, err = nullableUUID(clientID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ETADate = nullableDate(etaDate)
	resp.DispatchedAt = nullableTime(dispatchedAt)
	resp.DeliveredAt = nullableTime(delivered)

	if resp.Items, err = h.items(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	statuses := make([]order.ItemStatus, 0, len(resp.Items))
	for _, it := range resp.Items {
		s, parseErr := order.ParseItemStatus(it.Status)
		if parseErr != nil {
			return GetOrderQueryResponse{}, parseErr
		}
		statuses = append(statuses, s)
	}
	resp.StatusBreakdown = make(map[string]int)
	for s, n := range order.Breakdown(statuses) {
		resp.StatusBreakdown[s.String()] = n
	}

	return resp, nil
}

func (h GetOrderQueryHandler) items(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			COALESCE(sku, ''),
			product_name,
			quantity,
			produced_quantity,
			unit_price_cents,
			line_total_cents,
			COALESCE(zone, ''),
			COALESCE(station, ''),
			scheduled_date,
			split_from_item_id,
			status
		FROM order_items
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			item          OrderItemResponse
			id            uuid.UUID
			scheduledDate sql.NullTime
			splitFrom     uuid.NullUUID
		)
		err = rows.Scan(
			&id,
			&item.SKU,
			&item.ProductName,
			&item.Quantity,
			&item.ProducedQuantity,
			&item.UnitPriceCents,
			&item.LineTotalCents,
			&item.Zone,
			&item.Station,
			&scheduledDate,
			&splitFrom,
			&item.Status,
		)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.SplitFromItemID, err = nullableUUID(splitFrom); err != nil {
			return nil, err
		}
		item.ScheduledDate = nullableDate(scheduledDate)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
