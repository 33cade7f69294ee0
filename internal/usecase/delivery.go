package usecase

import (
	"context"

	"github.com/polkiloo/dispatch/internal/domain/model"
	"github.com/polkiloo/dispatch/internal/domain/repository"
)

// DeliveryUseCase tracks delivery progress. Costs are owned by OrderUseCase.
type DeliveryUseCase struct {
	repos repository.Factory
}

// NewDeliveryUseCase constructs DeliveryUseCase.
func NewDeliveryUseCase(repos repository.Factory) *DeliveryUseCase {
	return &DeliveryUseCase{repos: repos}
}

// AdvanceStatus sets the delivery status from client supplied text. Any known
// status can follow any other.
func (u *DeliveryUseCase) AdvanceStatus(ctx context.Context, id int64, rawStatus string) (*model.Delivery, error) {
	if err := RequirePositiveID("delivery id", id); err != nil {
		return nil, err
	}
	status, err := model.ParseDeliveryStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return u.repos.Deliveries().UpdateStatus(ctx, id, status)
}

// Cancel marks the delivery as canceled. The row itself is kept.
func (u *DeliveryUseCase) Cancel(ctx context.Context, id int64) (*model.Delivery, error) {
	return u.AdvanceStatus(ctx, id, string(model.DeliveryStatusCanceled))
}

// Get returns a single delivery.
func (u *DeliveryUseCase) Get(ctx context.Context, id int64) (*model.Delivery, error) {
	if err := RequirePositiveID("delivery id", id); err != nil {
		return nil, err
	}
	return u.repos.Deliveries().GetByID(ctx, id)
}

// GetByOrder returns the delivery of the order.
func (u *DeliveryUseCase) GetByOrder(ctx context.Context, orderID int64) (*model.Delivery, error) {
	if err := RequirePositiveID("order id", orderID); err != nil {
		return nil, err
	}
	return u.repos.Deliveries().GetByOrderID(ctx, orderID)
}

// List returns all deliveries.
func (u *DeliveryUseCase) List(ctx context.Context) ([]model.Delivery, error) {
	return u.repos.Deliveries().List(ctx)
}
