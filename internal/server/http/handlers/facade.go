package handlers

import (
	"context"

	"github.com/polkiloo/dispatch/internal/domain/model"
	"github.com/polkiloo/dispatch/internal/usecase"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, in usecase.OrderInput) (*model.Order, *model.Delivery, error)
	UpdateOrder(ctx context.Context, id int64, patch usecase.OrderPatch) (*model.Order, *model.Delivery, error)
	CancelOrder(ctx context.Context, id int64) error
	Order(ctx context.Context, id int64) (*model.Order, *model.Delivery, error)
	Orders(ctx context.Context) ([]model.Order, error)
	CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error)
}

// DeliveryFacade provides delivery reads and status changes.
type DeliveryFacade interface {
	Deliveries(ctx context.Context) ([]model.Delivery, error)
	Delivery(ctx context.Context, id int64) (*model.Delivery, error)
	OrderDelivery(ctx context.Context, orderID int64) (*model.Delivery, error)
	SetDeliveryStatus(ctx context.Context, id int64, status string) (*model.Delivery, error)
	CancelDelivery(ctx context.Context, id int64) (*model.Delivery, error)
}

// CustomerFacade manages customers and their contacts.
type CustomerFacade interface {
	RegisterCustomer(ctx context.Context, in usecase.CustomerInput) (*usecase.CustomerDetails, error)
	UpdateCustomer(ctx context.Context, id int64, patch usecase.CustomerPatch) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	Customer(ctx context.Context, id int64) (*usecase.CustomerDetails, error)
	CustomerByCPF(ctx context.Context, cpf string) (*usecase.CustomerDetails, error)
	Customers(ctx context.Context) ([]model.Customer, error)

	AddPhone(ctx context.Context, customerID int64, in usecase.PhoneInput) (*model.Phone, error)
	Phones(ctx context.Context, customerID int64) ([]model.Phone, error)
	UpdatePhone(ctx context.Context, id int64, patch usecase.PhonePatch) (*model.Phone, error)
	DeletePhone(ctx context.Context, id int64) error

	AddAddress(ctx context.Context, customerID int64, in usecase.AddressInput) (*model.Address, error)
	Addresses(ctx context.Context, customerID int64) ([]model.Address, error)
	UpdateAddress(ctx context.Context, id int64, patch usecase.AddressPatch) (*model.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}

// HealthFacade reports backend availability.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// DispatchFacade aggregates the full set of operations used across handlers.
type DispatchFacade interface {
	OrderFacade
	DeliveryFacade
	CustomerFacade
	HealthFacade
}
