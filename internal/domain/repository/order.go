package repository

import (
	"context"

	"github.com/polkiloo/dispatch/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// LockByID loads the order and holds a row lock until the transaction ends.
	LockByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id int64) (int64, error)
}
