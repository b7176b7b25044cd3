package order

import (
	"fmt"

	"manufacturing/internal/pkg/errs"
)

// DeliveryType decides whether a dispatched order ends delivered or collected.
type DeliveryType string

const (
	DeliveryTypeDelivery   DeliveryType = "delivery"
	DeliveryTypeCollection DeliveryType = "collection"
)

func ParseDeliveryType(s string) (DeliveryType, error) {
	switch DeliveryType(s) {
	case DeliveryTypeDelivery, DeliveryTypeCollection:
		return DeliveryType(s), nil
	case "":
		return DeliveryTypeDelivery, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("delivery type", fmt.Errorf("%q is not delivery or collection", s))
	}
}

// Outcome is the terminal order status a completed hand-over produces.
func (d DeliveryType) Outcome() OrderStatus {
	if d == DeliveryTypeCollection {
		return OrderCollected
	}
	return OrderDelivered
}
