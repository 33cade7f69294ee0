package postgres

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
	"github.com/polkiloo/dispatch/internal/domain/model"
)

type orderRepository struct {
	db querier
}

const orderColumns = `idPedido, idCliente, urgencia, distanciaKM, pesoCargaKG, valorKG, valorKM, dataPedido`

func scanOrder(row scanner, o *model.Order) error {
	return row.Scan(&o.ID, &o.CustomerID, &o.Urgency, &o.DistanceKm, &o.WeightKg, &o.UnitPriceByWeight, &o.UnitPriceByDistance, &o.CreatedAt)
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	query := `INSERT INTO pedidos (idCliente, urgencia, distanciaKM, pesoCargaKG, valorKG, valorKM)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + orderColumns
	var created model.Order
	row := r.db.QueryRow(ctx, query, o.CustomerID, o.Urgency, o.DistanceKm, o.WeightKg, o.UnitPriceByWeight, o.UnitPriceByDistance)
	if err := scanOrder(row, &created); err != nil {
		return nil, mapError(err, fmt.Sprintf("order of customer %d", o.CustomerID))
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM pedidos WHERE idPedido=$1`, id)
}

func (r *orderRepository) LockByID(ctx context.Context, id int64) (*model.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM pedidos WHERE idPedido=$1 FOR UPDATE`, id)
}

func (r *orderRepository) get(ctx context.Context, query string, id int64) (*model.Order, error) {
	var o model.Order
	if err := scanOrder(r.db.QueryRow(ctx, query, id), &o); err != nil {
		return nil, mapError(err, fmt.Sprintf("order %d", id))
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM pedidos ORDER BY idPedido`)
	return collect(rows, err, "orders", scanOrder)
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM pedidos WHERE idCliente=$1 ORDER BY idPedido`, customerID)
	return collect(rows, err, fmt.Sprintf("orders of customer %d", customerID), scanOrder)
}

func (r *orderRepository) Update(ctx context.Context, o *model.Order) error {
	const query = `UPDATE pedidos SET urgencia=$1, distanciaKM=$2, pesoCargaKG=$3, valorKG=$4, valorKM=$5
                   WHERE idPedido=$6`
	subject := fmt.Sprintf("order %d", o.ID)
	tag, err := r.db.Exec(ctx, query, o.Urgency, o.DistanceKm, o.WeightKg, o.UnitPriceByWeight, o.UnitPriceByDistance, o.ID)
	if err != nil {
		return mapError(err, subject)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.NotFoundf("%s not found", subject)
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM pedidos WHERE idPedido=$1`, id)
	if err != nil {
		return 0, mapError(err, fmt.Sprintf("order %d", id))
	}
	return tag.RowsAffected(), nil
}
