package model

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/dispatch/internal/pkg/enum"
)

// DeliveryStatus describes shipment progress.
type DeliveryStatus string

const (
	DeliveryStatusCalculated DeliveryStatus = "CALCULATED"
	DeliveryStatusInTransit  DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered  DeliveryStatus = "DELIVERED"
	DeliveryStatusCanceled   DeliveryStatus = "CANCELED"
)

var deliveryStatusAliases = map[string]DeliveryStatus{
	"calculado":  DeliveryStatusCalculated,
	"calculated": DeliveryStatusCalculated,
	"transito":   DeliveryStatusInTransit,
	"emtransito": DeliveryStatusInTransit,
	"in_transit": DeliveryStatusInTransit,
	"intransit":  DeliveryStatusInTransit,
	"entregue":   DeliveryStatusDelivered,
	"delivered":  DeliveryStatusDelivered,
	"cancelado":  DeliveryStatusCanceled,
	"canceled":   DeliveryStatusCanceled,
	"cancelled":  DeliveryStatusCanceled,
}

// ParseDeliveryStatus resolves client supplied status text.
func ParseDeliveryStatus(raw string) (DeliveryStatus, error) {
	return enum.Lookup("status", raw, deliveryStatusAliases)
}

// Breakdown is the monetary composition of a delivery.
type Breakdown struct {
	DistanceCost decimal.Decimal
	WeightCost   decimal.Decimal
	Surcharge    decimal.Decimal
	ExtraFee     decimal.Decimal
	Discount     decimal.Decimal
	TotalCost    decimal.Decimal
}

// BaseAmount is the cost before surcharge, fee and discount.
func (b Breakdown) BaseAmount() decimal.Decimal {
	return b.DistanceCost.Add(b.WeightCost)
}

// Delivery is the priced shipment tied 1:1 to an order.
type Delivery struct {
	ID      int64
	OrderID int64
	Breakdown
	Status DeliveryStatus
}
