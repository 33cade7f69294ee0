package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	CustomerID          NumberText `json:"customerId" binding:"required"`
	Urgency             string     `json:"urgency" binding:"required"`
	DistanceKm          NumberText `json:"distanceKm" binding:"required"`
	WeightKg            NumberText `json:"weightKg" binding:"required"`
	UnitPriceByWeight   NumberText `json:"unitPriceByWeight" binding:"required"`
	UnitPriceByDistance NumberText `json:"unitPriceByDistance" binding:"required"`
}

// UpdateOrderRequest is the body of PUT /api/orders/:id. Absent fields keep their value.
type UpdateOrderRequest struct {
	Urgency             *string     `json:"urgency"`
	DistanceKm          *NumberText `json:"distanceKm"`
	WeightKg            *NumberText `json:"weightKg"`
	UnitPriceByWeight   *NumberText `json:"unitPriceByWeight"`
	UnitPriceByDistance *NumberText `json:"unitPriceByDistance"`
}

type OrderResponse struct {
	ID                  int64           `json:"id"`
	CustomerID          int64           `json:"customerId"`
	Urgency             string          `json:"urgency"`
	DistanceKm          decimal.Decimal `json:"distanceKm"`
	WeightKg            decimal.Decimal `json:"weightKg"`
	UnitPriceByWeight   decimal.Decimal `json:"unitPriceByWeight"`
	UnitPriceByDistance decimal.Decimal `json:"unitPriceByDistance"`
	CreatedAt           time.Time       `json:"createdAt"`
}

type DeliveryResponse struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"orderId"`
	DistanceCost decimal.Decimal `json:"distanceCost"`
	WeightCost   decimal.Decimal `json:"weightCost"`
	Surcharge    decimal.Decimal `json:"surcharge"`
	ExtraFee     decimal.Decimal `json:"extraFee"`
	Discount     decimal.Decimal `json:"discount"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	Status       string          `json:"status"`
}

// OrderDetailsResponse pairs an order with its delivery.
type OrderDetailsResponse struct {
	Order    OrderResponse    `json:"order"`
	Delivery DeliveryResponse `json:"delivery"`
}

// DeliveryStatusRequest is the body of PUT /api/deliveries/:id/status.
type DeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
