package handlers

import (
	"context"

	"github.com/polkiloo/dispatch/internal/domain/model"
	testhelpers "github.com/polkiloo/dispatch/internal/test"
	"github.com/polkiloo/dispatch/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn         func(context.Context, usecase.OrderInput) (*model.Order, *model.Delivery, error)
	UpdateFn         func(context.Context, int64, usecase.OrderPatch) (*model.Order, *model.Delivery, error)
	CancelFn         func(context.Context, int64) error
	OrderFn          func(context.Context, int64) (*model.Order, *model.Delivery, error)
	OrdersFn         func(context.Context) ([]model.Order, error)
	CustomerOrdersFn func(context.Context, int64) ([]model.Order, error)
}

// CreateOrder delegates to CreateFn or returns a sample order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, in usecase.OrderInput) (*model.Order, *model.Delivery, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	order, delivery := testhelpers.SampleOrder(1)
	return order, delivery, nil
}

func (s OrderFacadeStub) UpdateOrder(ctx context.Context, id int64, patch usecase.OrderPatch) (*model.Order, *model.Delivery, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	order, delivery := testhelpers.SampleOrder(id)
	return order, delivery, nil
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, id int64) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id)
	}
	return nil
}

func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, *model.Delivery, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	order, delivery := testhelpers.SampleOrder(id)
	return order, delivery, nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	order, _ := testhelpers.SampleOrder(1)
	return []model.Order{*order}, nil
}

func (s OrderFacadeStub) CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.CustomerOrdersFn != nil {
		return s.CustomerOrdersFn(ctx, customerID)
	}
	return nil, nil
}

// DeliveryFacadeStub simulates delivery operations.
type DeliveryFacadeStub struct {
	DeliveriesFn func(context.Context) ([]model.Delivery, error)
	DeliveryFn   func(context.Context, int64) (*model.Delivery, error)
	ByOrderFn    func(context.Context, int64) (*model.Delivery, error)
	StatusFn     func(context.Context, int64, string) (*model.Delivery, error)
	CancelFn     func(context.Context, int64) (*model.Delivery, error)
}

func (s DeliveryFacadeStub) Deliveries(ctx context.Context) ([]model.Delivery, error) {
	if s.DeliveriesFn != nil {
		return s.DeliveriesFn(ctx)
	}
	_, delivery := testhelpers.SampleOrder(1)
	return []model.Delivery{*delivery}, nil
}

func (s DeliveryFacadeStub) Delivery(ctx context.Context, id int64) (*model.Delivery, error) {
	if s.DeliveryFn != nil {
		return s.DeliveryFn(ctx, id)
	}
	_, delivery := testhelpers.SampleOrder(id)
	return delivery, nil
}

func (s DeliveryFacadeStub) OrderDelivery(ctx context.Context, orderID int64) (*model.Delivery, error) {
	if s.ByOrderFn != nil {
		return s.ByOrderFn(ctx, orderID)
	}
	_, delivery := testhelpers.SampleOrder(orderID)
	return delivery, nil
}

// SetDeliveryStatus delegates to StatusFn or echoes the raw status back.
func (s DeliveryFacadeStub) SetDeliveryStatus(ctx context.Context, id int64, status string) (*model.Delivery, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, id, status)
	}
	_, delivery := testhelpers.SampleOrder(id)
	delivery.Status = model.DeliveryStatus(status)
	return delivery, nil
}

func (s DeliveryFacadeStub) CancelDelivery(ctx context.Context, id int64) (*model.Delivery, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id)
	}
	_, delivery := testhelpers.SampleOrder(id)
	delivery.Status = model.DeliveryStatusCanceled
	return delivery, nil
}
