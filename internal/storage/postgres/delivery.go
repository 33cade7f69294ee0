package postgres

import (
	"context"
	"fmt"

	"github.com/polkiloo/dispatch/internal/domain/model"
)

type deliveryRepository struct {
	db querier
}

const deliveryColumns = `idEntrega, idPedidoFK, valorDistancia, valorPeso, acrescimo, taxaExtra, desconto, valorTotal, statusEntrega`

func scanDelivery(row scanner, d *model.Delivery) error {
	return row.Scan(&d.ID, &d.OrderID, &d.DistanceCost, &d.WeightCost, &d.Surcharge, &d.ExtraFee, &d.Discount, &d.TotalCost, &d.Status)
}

func (r *deliveryRepository) Create(ctx context.Context, d *model.Delivery) (*model.Delivery, error) {
	query := `INSERT INTO entregas (idPedidoFK, valorDistancia, valorPeso, acrescimo, taxaExtra, desconto, valorTotal, statusEntrega)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING ` + deliveryColumns
	var created model.Delivery
	b := d.Breakdown
	row := r.db.QueryRow(ctx, query, d.OrderID, b.DistanceCost, b.WeightCost, b.Surcharge, b.ExtraFee, b.Discount, b.TotalCost, d.Status)
	if err := scanDelivery(row, &created); err != nil {
		return nil, mapError(err, fmt.Sprintf("delivery of order %d", d.OrderID))
	}
	return &created, nil
}

func (r *deliveryRepository) GetByID(ctx context.Context, id int64) (*model.Delivery, error) {
	var d model.Delivery
	query := `SELECT ` + deliveryColumns + ` FROM entregas WHERE idEntrega=$1`
	if err := scanDelivery(r.db.QueryRow(ctx, query, id), &d); err != nil {
		return nil, mapError(err, fmt.Sprintf("delivery %d", id))
	}
	return &d, nil
}

func (r *deliveryRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.Delivery, error) {
	var d model.Delivery
	query := `SELECT ` + deliveryColumns + ` FROM entregas WHERE idPedidoFK=$1`
	if err := scanDelivery(r.db.QueryRow(ctx, query, orderID), &d); err != nil {
		return nil, mapError(err, fmt.Sprintf("delivery of order %d", orderID))
	}
	return &d, nil
}

func (r *deliveryRepository) List(ctx context.Context) ([]model.Delivery, error) {
	rows, err := r.db.Query(ctx, `SELECT `+deliveryColumns+` FROM entregas ORDER BY idEntrega`)
	return collect(rows, err, "deliveries", scanDelivery)
}

func (r *deliveryRepository) UpdateCosts(ctx context.Context, orderID int64, b model.Breakdown) (int64, error) {
	const query = `UPDATE entregas SET valorDistancia=$1, valorPeso=$2, acrescimo=$3, taxaExtra=$4, desconto=$5, valorTotal=$6
                   WHERE idPedidoFK=$7`
	tag, err := r.db.Exec(ctx, query, b.DistanceCost, b.WeightCost, b.Surcharge, b.ExtraFee, b.Discount, b.TotalCost, orderID)
	if err != nil {
		return 0, mapError(err, fmt.Sprintf("delivery of order %d", orderID))
	}
	return tag.RowsAffected(), nil
}

func (r *deliveryRepository) UpdateStatus(ctx context.Context, id int64, status model.DeliveryStatus) (*model.Delivery, error) {
	query := `UPDATE entregas SET statusEntrega=$1 WHERE idEntrega=$2 RETURNING ` + deliveryColumns
	var d model.Delivery
	if err := scanDelivery(r.db.QueryRow(ctx, query, status, id), &d); err != nil {
		return nil, mapError(err, fmt.Sprintf("delivery %d", id))
	}
	return &d, nil
}

func (r *deliveryRepository) DeleteByOrderID(ctx context.Context, orderID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM entregas WHERE idPedidoFK=$1`, orderID)
	if err != nil {
		return 0, mapError(err, fmt.Sprintf("delivery of order %d", orderID))
	}
	return tag.RowsAffected(), nil
}
