package repository

import (
	"context"

	"github.com/polkiloo/dispatch/internal/domain/model"
)

// DeliveryRepository describes persistence operations with deliveries.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *model.Delivery) (*model.Delivery, error)
	GetByID(ctx context.Context, id int64) (*model.Delivery, error)
	GetByOrderID(ctx context.Context, orderID int64) (*model.Delivery, error)
	List(ctx context.Context) ([]model.Delivery, error)
	// UpdateCosts rewrites the breakdown of the order's delivery and leaves the
	// status alone. It returns the number of rows touched.
	UpdateCosts(ctx context.Context, orderID int64, breakdown model.Breakdown) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.DeliveryStatus) (*model.Delivery, error)
	DeleteByOrderID(ctx context.Context, orderID int64) (int64, error)
}
