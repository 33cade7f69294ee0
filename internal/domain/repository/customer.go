package repository

import (
	"context"

	"github.com/polkiloo/dispatch/internal/domain/model"
)

// CustomerRepository describes persistence operations with customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	GetByCPF(ctx context.Context, cpf string) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
	// Delete removes the customer together with its deliveries, orders,
	// phones and addresses.
	Delete(ctx context.Context, id int64) (int64, error)
}

// PhoneRepository describes persistence operations with customer phones.
type PhoneRepository interface {
	Create(ctx context.Context, phone *model.Phone) (*model.Phone, error)
	GetByID(ctx context.Context, id int64) (*model.Phone, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Phone, error)
	Update(ctx context.Context, phone *model.Phone) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// AddressRepository describes persistence operations with customer addresses.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) (*model.Address, error)
	GetByID(ctx context.Context, id int64) (*model.Address, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Address, error)
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, id int64) (int64, error)
}
