package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/dispatch/internal/domain/model"
)

// SampleOrder returns a priced order and its delivery as created by the order flow.
func SampleOrder(id int64) (*model.Order, *model.Delivery) {
	order := &model.Order{
		ID:                  id,
		CustomerID:          1,
		Urgency:             model.UrgencyUrgent,
		DistanceKm:          decimal.NewFromInt(100),
		WeightKg:            decimal.NewFromInt(60),
		UnitPriceByWeight:   decimal.NewFromInt(5),
		UnitPriceByDistance: decimal.NewFromInt(3),
		CreatedAt:           time.Unix(0, 0).UTC(),
	}
	delivery := &model.Delivery{
		ID:      id,
		OrderID: id,
		Breakdown: model.Breakdown{
			DistanceCost: decimal.NewFromInt(300),
			WeightCost:   decimal.NewFromInt(300),
			Surcharge:    decimal.NewFromInt(120),
			ExtraFee:     decimal.NewFromInt(15),
			Discount:     decimal.NewFromInt(72),
			TotalCost:    decimal.NewFromInt(663),
		},
		Status: model.DeliveryStatusCalculated,
	}
	return order, delivery
}

// HealthCheckerStub answers health probes with Err.
type HealthCheckerStub struct {
	Err   error
	Calls int
}

func (s *HealthCheckerStub) HealthCheck(context.Context) error {
	s.Calls++
	return s.Err
}

// Health satisfies handler facades that probe directly.
func (s *HealthCheckerStub) Health(ctx context.Context) error {
	return s.HealthCheck(ctx)
}
