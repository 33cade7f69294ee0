package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
	"github.com/polkiloo/dispatch/internal/domain/model"
	"github.com/polkiloo/dispatch/internal/domain/pricing"
	"github.com/polkiloo/dispatch/internal/domain/repository"
)

// OrderInput carries raw order attributes as received from clients.
type OrderInput struct {
	CustomerID          string
	Urgency             string
	DistanceKm          string
	WeightKg            string
	UnitPriceByWeight   string
	UnitPriceByDistance string
}

// OrderPatch lists the order attributes a client wants to replace.
// Nil fields keep their stored value.
type OrderPatch struct {
	Urgency             *string
	DistanceKm          *string
	WeightKg            *string
	UnitPriceByWeight   *string
	UnitPriceByDistance *string
}

func (in OrderInput) order() (*model.Order, error) {
	customerID, err := ParseID("customer id", in.CustomerID)
	if err != nil {
		return nil, err
	}
	urgency, err := model.ParseUrgency(in.Urgency)
	if err != nil {
		return nil, err
	}
	distance, err := parsePositive("distance", in.DistanceKm)
	if err != nil {
		return nil, err
	}
	weight, err := parsePositive("weight", in.WeightKg)
	if err != nil {
		return nil, err
	}
	byWeight, err := parsePositive("unit price by weight", in.UnitPriceByWeight)
	if err != nil {
		return nil, err
	}
	byDistance, err := parsePositive("unit price by distance", in.UnitPriceByDistance)
	if err != nil {
		return nil, err
	}

	return &model.Order{
		CustomerID:          customerID,
		Urgency:             urgency,
		DistanceKm:          distance,
		WeightKg:            weight,
		UnitPriceByWeight:   byWeight,
		UnitPriceByDistance: byDistance,
	}, nil
}

func (p OrderPatch) apply(current *model.Order) (*model.Order, error) {
	merged, err := OrderInput{
		CustomerID:          formatID(current.CustomerID),
		Urgency:             pick(p.Urgency, string(current.Urgency)),
		DistanceKm:          pick(p.DistanceKm, current.DistanceKm.String()),
		WeightKg:            pick(p.WeightKg, current.WeightKg.String()),
		UnitPriceByWeight:   pick(p.UnitPriceByWeight, current.UnitPriceByWeight.String()),
		UnitPriceByDistance: pick(p.UnitPriceByDistance, current.UnitPriceByDistance.String()),
	}.order()
	if err != nil {
		return nil, err
	}
	merged.ID = current.ID
	merged.CreatedAt = current.CreatedAt
	return merged, nil
}

// OrderUseCase encapsulates order lifecycle logic. An order and its delivery
// are always written in the same transaction.
type OrderUseCase struct {
	repos repository.Factory
	tx    repository.Transactor
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(repos repository.Factory, tx repository.Transactor) *OrderUseCase {
	return &OrderUseCase{repos: repos, tx: tx}
}

// Create validates the input, stores the order and its priced delivery.
func (u *OrderUseCase) Create(ctx context.Context, in OrderInput) (*model.Order, *model.Delivery, error) {
	order, err := in.order()
	if err != nil {
		return nil, nil, err
	}
	breakdown, err := pricing.Compute(pricing.InputFromOrder(order))
	if err != nil {
		return nil, nil, err
	}

	var (
		created  *model.Order
		delivery *model.Delivery
	)
	err = u.tx.WithinTransaction(ctx, func(repos repository.Factory) error {
		if _, err := repos.Customers().GetByID(ctx, order.CustomerID); err != nil {
			return err
		}

		var err error
		created, err = repos.Orders().Create(ctx, order)
		if err != nil {
			return err
		}

		delivery, err = repos.Deliveries().Create(ctx, &model.Delivery{
			OrderID:   created.ID,
			Breakdown: breakdown,
			Status:    model.DeliveryStatusCalculated,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return created, delivery, nil
}

// Update merges the patch into the stored order and reprices its delivery.
// The delivery status is left untouched.
func (u *OrderUseCase) Update(ctx context.Context, id int64, patch OrderPatch) (*model.Order, *model.Delivery, error) {
	if err := RequirePositiveID("order id", id); err != nil {
		return nil, nil, err
	}

	var (
		updated  *model.Order
		delivery *model.Delivery
	)
	err := u.tx.WithinTransaction(ctx, func(repos repository.Factory) error {
		current, err := repos.Orders().LockByID(ctx, id)
		if err != nil {
			return err
		}

		merged, err := patch.apply(current)
		if err != nil {
			return err
		}
		breakdown, err := pricing.Compute(pricing.InputFromOrder(merged))
		if err != nil {
			return err
		}

		if err := repos.Orders().Update(ctx, merged); err != nil {
			return err
		}
		rows, err := repos.Deliveries().UpdateCosts(ctx, id, breakdown)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domainErrors.Conflictf("order %d has no delivery", id)
		}

		delivery, err = repos.Deliveries().GetByOrderID(ctx, id)
		if err != nil {
			return err
		}
		updated = merged
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return updated, delivery, nil
}

// Cancel removes the order together with its delivery.
func (u *OrderUseCase) Cancel(ctx context.Context, id int64) error {
	if err := RequirePositiveID("order id", id); err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(repos repository.Factory) error {
		if _, err := repos.Orders().LockByID(ctx, id); err != nil {
			return err
		}
		if _, err := repos.Deliveries().DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		rows, err := repos.Orders().Delete(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domainErrors.Conflictf("order %d was removed concurrently", id)
		}
		return nil
	})
}

// Get returns a single order.
func (u *OrderUseCase) Get(ctx context.Context, id int64) (*model.Order, error) {
	if err := RequirePositiveID("order id", id); err != nil {
		return nil, err
	}
	return u.repos.Orders().GetByID(ctx, id)
}

// List returns all orders ordered by id.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.repos.Orders().List(ctx)
}

// ListByCustomer returns orders placed by the customer.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	if err := RequirePositiveID("customer id", customerID); err != nil {
		return nil, err
	}
	return u.repos.Orders().ListByCustomer(ctx, customerID)
}
