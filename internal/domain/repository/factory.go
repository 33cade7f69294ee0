package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Customers() CustomerRepository
	Phones() PhoneRepository
	Addresses() AddressRepository
	Orders() OrderRepository
	Deliveries() DeliveryRepository
}

// Transactor runs a unit of work against repositories sharing one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(Factory) error) error
}
