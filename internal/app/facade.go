package app

import (
	"context"

	"github.com/polkiloo/dispatch/internal/domain/model"
	"github.com/polkiloo/dispatch/internal/usecase"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DispatchFacade exposes the use cases to transport adapters.
type DispatchFacade struct {
	orders     *usecase.OrderUseCase
	deliveries *usecase.DeliveryUseCase
	customers  *usecase.CustomerUseCase
	health     HealthChecker
}

func NewDispatchFacade(orders *usecase.OrderUseCase, deliveries *usecase.DeliveryUseCase, customers *usecase.CustomerUseCase, health HealthChecker) *DispatchFacade {
	return &DispatchFacade{orders: orders, deliveries: deliveries, customers: customers, health: health}
}

func (f *DispatchFacade) CreateOrder(ctx context.Context, in usecase.OrderInput) (*model.Order, *model.Delivery, error) {
	return f.orders.Create(ctx, in)
}

func (f *DispatchFacade) UpdateOrder(ctx context.Context, id int64, patch usecase.OrderPatch) (*model.Order, *model.Delivery, error) {
	return f.orders.Update(ctx, id, patch)
}

func (f *DispatchFacade) CancelOrder(ctx context.Context, id int64) error {
	return f.orders.Cancel(ctx, id)
}

// Order returns the order together with its delivery.
func (f *DispatchFacade) Order(ctx context.Context, id int64) (*model.Order, *model.Delivery, error) {
	order, err := f.orders.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	delivery, err := f.deliveries.GetByOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return order, delivery, nil
}

func (f *DispatchFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

// CustomerOrders lists orders of an existing customer.
func (f *DispatchFacade) CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	if _, err := f.customers.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return f.orders.ListByCustomer(ctx, customerID)
}

func (f *DispatchFacade) Deliveries(ctx context.Context) ([]model.Delivery, error) {
	return f.deliveries.List(ctx)
}

func (f *DispatchFacade) Delivery(ctx context.Context, id int64) (*model.Delivery, error) {
	return f.deliveries.Get(ctx, id)
}

func (f *DispatchFacade) OrderDelivery(ctx context.Context, orderID int64) (*model.Delivery, error) {
	return f.deliveries.GetByOrder(ctx, orderID)
}

func (f *DispatchFacade) SetDeliveryStatus(ctx context.Context, id int64, status string) (*model.Delivery, error) {
	return f.deliveries.AdvanceStatus(ctx, id, status)
}

func (f *DispatchFacade) CancelDelivery(ctx context.Context, id int64) (*model.Delivery, error) {
	return f.deliveries.Cancel(ctx, id)
}

func (f *DispatchFacade) RegisterCustomer(ctx context.Context, in usecase.CustomerInput) (*usecase.CustomerDetails, error) {
	return f.customers.Register(ctx, in)
}

func (f *DispatchFacade) UpdateCustomer(ctx context.Context, id int64, patch usecase.CustomerPatch) (*model.Customer, error) {
	return f.customers.Update(ctx, id, patch)
}

func (f *DispatchFacade) DeleteCustomer(ctx context.Context, id int64) error {
	return f.customers.Delete(ctx, id)
}

func (f *DispatchFacade) Customer(ctx context.Context, id int64) (*usecase.CustomerDetails, error) {
	return f.customers.Get(ctx, id)
}

func (f *DispatchFacade) CustomerByCPF(ctx context.Context, cpf string) (*usecase.CustomerDetails, error) {
	return f.customers.GetByCPF(ctx, cpf)
}

func (f *DispatchFacade) Customers(ctx context.Context) ([]model.Customer, error) {
	return f.customers.List(ctx)
}

func (f *DispatchFacade) AddPhone(ctx context.Context, customerID int64, in usecase.PhoneInput) (*model.Phone, error) {
	return f.customers.AddPhone(ctx, customerID, in)
}

func (f *DispatchFacade) Phones(ctx context.Context, customerID int64) ([]model.Phone, error) {
	return f.customers.Phones(ctx, customerID)
}

func (f *DispatchFacade) UpdatePhone(ctx context.Context, id int64, patch usecase.PhonePatch) (*model.Phone, error) {
	return f.customers.UpdatePhone(ctx, id, patch)
}

func (f *DispatchFacade) DeletePhone(ctx context.Context, id int64) error {
	return f.customers.DeletePhone(ctx, id)
}

func (f *DispatchFacade) AddAddress(ctx context.Context, customerID int64, in usecase.AddressInput) (*model.Address, error) {
	return f.customers.AddAddress(ctx, customerID, in)
}

func (f *DispatchFacade) Addresses(ctx context.Context, customerID int64) ([]model.Address, error) {
	return f.customers.Addresses(ctx, customerID)
}

func (f *DispatchFacade) UpdateAddress(ctx context.Context, id int64, patch usecase.AddressPatch) (*model.Address, error) {
	return f.customers.UpdateAddress(ctx, id, patch)
}

func (f *DispatchFacade) DeleteAddress(ctx context.Context, id int64) error {
	return f.customers.DeleteAddress(ctx, id)
}

// Health checks the database connection.
func (f *DispatchFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
