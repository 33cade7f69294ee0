package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
	"github.com/polkiloo/dispatch/internal/domain/model"
)

var (
	orderRowColumns    = []string{"idpedido", "idcliente", "urgencia", "distanciakm", "pesocargakg", "valorkg", "valorkm", "datapedido"}
	deliveryRowColumns = []string{"identrega", "idpedidofk", "valordistancia", "valorpeso", "acrescimo", "taxaextra", "desconto", "valortotal", "statusentrega"}
	customerRowColumns = []string{"idcliente", "nomecliente", "sobrenomecliente", "cpfcliente", "emailcliente"}
	phoneRowColumns    = []string{"idtelefone", "idclientefk", "numero", "tipotelefone"}
	addressRowColumns  = []string{"idendereco", "idclientefk", "logradouro", "numero", "bairro", "cidade", "estado", "cep", "complemento"}
)

func sampleOrder() *model.Order {
	return &model.Order{
		CustomerID:          2,
		Urgency:             model.UrgencyUrgent,
		DistanceKm:          decimal.NewFromInt(100),
		WeightKg:            decimal.NewFromInt(60),
		UnitPriceByWeight:   decimal.NewFromInt(5),
		UnitPriceByDistance: decimal.NewFromInt(3),
	}
}

func sampleBreakdown() model.Breakdown {
	return model.Breakdown{
		DistanceCost: decimal.NewFromInt(300),
		WeightCost:   decimal.NewFromInt(300),
		Surcharge:    decimal.NewFromInt(120),
		ExtraFee:     decimal.NewFromInt(15),
		Discount:     decimal.NewFromInt(72),
		TotalCost:    decimal.NewFromInt(663),
	}
}

func TestOrderRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{db: storage.pool}
	anyArg := pgxmockv3.AnyArg()

	createdAt := time.Now()
	mock.ExpectQuery(q("RETURNING "+orderColumns)).WithArgs(int64(2), model.UrgencyUrgent, anyArg, anyArg, anyArg, anyArg).WillReturnRows(
		pgxmockv3.NewRows(orderRowColumns).
			AddRow(int64(10), int64(2), model.UrgencyUrgent, "100.0000", "60.0000", "5.0000", "3.0000", createdAt))
	order, err := repo.Create(context.Background(), sampleOrder())
	if err != nil || order.ID != 10 || !order.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected result: order=%+v err=%v", order, err)
	}
	if order.DistanceKm.String() != "100" || order.CustomerID != 2 {
		t.Fatalf("expected stored row to be returned, got %+v", order)
	}

	mock.ExpectQuery("INSERT INTO pedidos").WithArgs(int64(2), model.UrgencyUrgent, anyArg, anyArg, anyArg, anyArg).
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "pedidos_idcliente_fkey"})
	if _, err := repo.Create(context.Background(), sampleOrder()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for missing customer, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO pedidos").WithArgs(int64(2), model.UrgencyUrgent, anyArg, anyArg, anyArg, anyArg).WillReturnError(errors.New("insert"))
	if _, err := repo.Create(context.Background(), sampleOrder()); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryGetLockAndList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{db: storage.pool}

	now := time.Now()
	row := func() *pgxmockv3.Rows {
		return pgxmockv3.NewRows(orderRowColumns).
			AddRow(int64(1), int64(2), model.UrgencyNotUrgent, "10.0000", "20.0000", "3.0000", "2.0000", now)
	}

	mock.ExpectQuery(`FROM pedidos WHERE idPedido=\$1$`).WithArgs(int64(1)).WillReturnRows(row())
	order, err := repo.GetByID(context.Background(), 1)
	if err != nil || order.Urgency != model.UrgencyNotUrgent || !order.WeightKg.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("unexpected order: %+v err=%v", order, err)
	}

	mock.ExpectQuery(`FROM pedidos WHERE idPedido=\$1 FOR UPDATE`).WithArgs(int64(1)).WillReturnRows(row())
	if _, err := repo.LockByID(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery(`FROM pedidos WHERE idPedido=\$1 FOR UPDATE`).WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.LockByID(context.Background(), 9); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM pedidos ORDER BY idPedido").WillReturnRows(row())
	orders, err := repo.List(context.Background())
	if err != nil || len(orders) != 1 {
		t.Fatalf("unexpected list: %+v err=%v", orders, err)
	}

	mock.ExpectQuery(`FROM pedidos WHERE idCliente=\$1`).WithArgs(int64(5)).WillReturnRows(pgxmockv3.NewRows(orderRowColumns))
	orders, err = repo.ListByCustomer(context.Background(), 5)
	if err != nil || orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty non-nil list, got %+v err=%v", orders, err)
	}

	mock.ExpectQuery(`FROM pedidos WHERE idCliente=\$1`).WithArgs(int64(5)).WillReturnRows(row().RowError(0, errors.New("row")))
	if _, err := repo.ListByCustomer(context.Background(), 5); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}

	mock.ExpectQuery("FROM pedidos ORDER BY idPedido").WillReturnError(errors.New("query"))
	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryUpdateAndDelete(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{db: storage.pool}
	anyArg := pgxmockv3.AnyArg()

	order := sampleOrder()
	order.ID = 4

	mock.ExpectExec("UPDATE pedidos SET").WithArgs(model.UrgencyUrgent, anyArg, anyArg, anyArg, anyArg, int64(4)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.Update(context.Background(), order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE pedidos SET").WithArgs(model.UrgencyUrgent, anyArg, anyArg, anyArg, anyArg, int64(4)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.Update(context.Background(), order); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec(q("DELETE FROM pedidos WHERE idPedido=$1")).WithArgs(int64(4)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if rows, err := repo.Delete(context.Background(), 4); err != nil || rows != 1 {
		t.Fatalf("unexpected delete result rows=%d err=%v", rows, err)
	}

	mock.ExpectExec(q("DELETE FROM pedidos WHERE idPedido=$1")).WithArgs(int64(4)).WillReturnError(errors.New("delete"))
	if _, err := repo.Delete(context.Background(), 4); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestDeliveryRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &deliveryRepository{db: storage.pool}
	anyArg := pgxmockv3.AnyArg()
	ctx := context.Background()

	row := func(status model.DeliveryStatus) *pgxmockv3.Rows {
		return pgxmockv3.NewRows(deliveryRowColumns).
			AddRow(int64(3), int64(10), "300.0000", "300.0000", "120.0000", "15.0000", "72.0000", "663.0000", status)
	}

	mock.ExpectQuery("INSERT INTO entregas").WithArgs(int64(10), anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, model.DeliveryStatusCalculated).
		WillReturnRows(row(model.DeliveryStatusCalculated))
	created, err := repo.Create(ctx, &model.Delivery{OrderID: 10, Breakdown: sampleBreakdown(), Status: model.DeliveryStatusCalculated})
	if err != nil || created.ID != 3 || created.OrderID != 10 {
		t.Fatalf("unexpected delivery: %+v err=%v", created, err)
	}
	if !created.TotalCost.Equal(decimal.NewFromInt(663)) || created.Status != model.DeliveryStatusCalculated {
		t.Fatalf("expected stored row to be returned, got %+v", created)
	}

	mock.ExpectQuery("INSERT INTO entregas").WithArgs(int64(10), anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, model.DeliveryStatusCalculated).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "entregas_idpedidofk_key"})
	if _, err := repo.Create(ctx, &model.Delivery{OrderID: 10, Breakdown: sampleBreakdown(), Status: model.DeliveryStatusCalculated}); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	mock.ExpectQuery(`FROM entregas WHERE idEntrega=\$1`).WithArgs(int64(3)).WillReturnRows(row(model.DeliveryStatusCalculated))
	got, err := repo.GetByID(ctx, 3)
	if err != nil || !got.TotalCost.Equal(decimal.NewFromInt(663)) || got.Status != model.DeliveryStatusCalculated {
		t.Fatalf("unexpected delivery: %+v err=%v", got, err)
	}

	mock.ExpectQuery(`FROM entregas WHERE idPedidoFK=\$1`).WithArgs(int64(11)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByOrderID(ctx, 11); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM entregas ORDER BY idEntrega").WillReturnRows(row(model.DeliveryStatusDelivered))
	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 || list[0].Status != model.DeliveryStatusDelivered {
		t.Fatalf("unexpected list: %+v err=%v", list, err)
	}

	mock.ExpectExec("UPDATE entregas SET valorDistancia").WithArgs(anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, int64(10)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if rows, err := repo.UpdateCosts(ctx, 10, sampleBreakdown()); err != nil || rows != 1 {
		t.Fatalf("unexpected update costs result rows=%d err=%v", rows, err)
	}

	mock.ExpectExec("UPDATE entregas SET valorDistancia").WithArgs(anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, int64(12)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if rows, err := repo.UpdateCosts(ctx, 12, sampleBreakdown()); err != nil || rows != 0 {
		t.Fatalf("expected zero rows without error, rows=%d err=%v", rows, err)
	}

	mock.ExpectQuery("UPDATE entregas SET statusEntrega").WithArgs(model.DeliveryStatusInTransit, int64(3)).
		WillReturnRows(row(model.DeliveryStatusInTransit))
	updated, err := repo.UpdateStatus(ctx, 3, model.DeliveryStatusInTransit)
	if err != nil || updated.Status != model.DeliveryStatusInTransit || !updated.Surcharge.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("unexpected delivery: %+v err=%v", updated, err)
	}

	mock.ExpectQuery("UPDATE entregas SET statusEntrega").WithArgs(model.DeliveryStatusCanceled, int64(99)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.UpdateStatus(ctx, 99, model.DeliveryStatusCanceled); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec(q("DELETE FROM entregas WHERE idPedidoFK=$1")).WithArgs(int64(10)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if rows, err := repo.DeleteByOrderID(ctx, 10); err != nil || rows != 1 {
		t.Fatalf("unexpected delete result rows=%d err=%v", rows, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCustomerRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &customerRepository{db: storage.pool}
	ctx := context.Background()
	customer := &model.Customer{FirstName: "Ana", LastName: "Silva", CPF: "12345678909", Email: "ana@example.com"}

	mock.ExpectQuery("INSERT INTO clientes").WithArgs("Ana", "Silva", "12345678909", "ana@example.com").
		WillReturnRows(pgxmockv3.NewRows([]string{"idcliente"}).AddRow(int64(1)))
	created, err := repo.Create(ctx, customer)
	if err != nil || created.ID != 1 || created.CPF != "12345678909" {
		t.Fatalf("unexpected customer: %+v err=%v", created, err)
	}

	mock.ExpectQuery("INSERT INTO clientes").WithArgs("Ana", "Silva", "12345678909", "ana@example.com").
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation})
	if _, err := repo.Create(ctx, customer); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	mock.ExpectQuery(`FROM clientes WHERE idCliente=\$1`).WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows(customerRowColumns).AddRow(int64(1), "Ana", "Silva", "12345678909", "ana@example.com"))
	if got, err := repo.GetByID(ctx, 1); err != nil || got.FirstName != "Ana" {
		t.Fatalf("unexpected customer: %+v err=%v", got, err)
	}

	mock.ExpectQuery(`FROM clientes WHERE cpfCliente=\$1`).WithArgs("00000000000").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByCPF(ctx, "00000000000"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM clientes ORDER BY idCliente").
		WillReturnRows(pgxmockv3.NewRows(customerRowColumns).AddRow(int64(1), "Ana", "Silva", "12345678909", "ana@example.com"))
	if list, err := repo.List(ctx); err != nil || len(list) != 1 {
		t.Fatalf("unexpected list: %+v err=%v", list, err)
	}

	customer.ID = 1
	mock.ExpectExec("UPDATE clientes SET").WithArgs("Ana", "Silva", "12345678909", "ana@example.com", int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.Update(ctx, customer); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCustomerRepositoryDeleteCascades(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &customerRepository{db: storage.pool}

	mock.ExpectExec(q("DELETE FROM entregas WHERE idPedidoFK IN (SELECT idPedido FROM pedidos WHERE idCliente=$1)")).
		WithArgs(int64(1)).WillReturnResult(pgxmockv3.NewResult("DELETE", 2))
	mock.ExpectExec(q("DELETE FROM pedidos WHERE idCliente=$1")).WithArgs(int64(1)).WillReturnResult(pgxmockv3.NewResult("DELETE", 2))
	mock.ExpectExec(q("DELETE FROM telefones WHERE idClienteFK=$1")).WithArgs(int64(1)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	mock.ExpectExec(q("DELETE FROM enderecos WHERE idClienteFK=$1")).WithArgs(int64(1)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	mock.ExpectExec(q("DELETE FROM clientes WHERE idCliente=$1")).WithArgs(int64(1)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))

	rows, err := repo.Delete(context.Background(), 1)
	if err != nil || rows != 1 {
		t.Fatalf("unexpected delete result rows=%d err=%v", rows, err)
	}

	mock.ExpectExec(q("DELETE FROM entregas WHERE idPedidoFK IN")).WithArgs(int64(2)).WillReturnError(errors.New("lock"))
	if _, err := repo.Delete(context.Background(), 2); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPhoneRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &phoneRepository{db: storage.pool}
	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO telefones").WithArgs(int64(1), "11999998888", model.PhoneTypeMobile).
		WillReturnRows(pgxmockv3.NewRows([]string{"idtelefone"}).AddRow(int64(5)))
	phone, err := repo.Create(ctx, &model.Phone{CustomerID: 1, Number: "11999998888", Type: model.PhoneTypeMobile})
	if err != nil || phone.ID != 5 {
		t.Fatalf("unexpected phone: %+v err=%v", phone, err)
	}

	mock.ExpectQuery(`FROM telefones WHERE idClienteFK=\$1`).WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows(phoneRowColumns).AddRow(int64(5), int64(1), "11999998888", model.PhoneTypeMobile))
	phones, err := repo.ListByCustomer(ctx, 1)
	if err != nil || len(phones) != 1 || phones[0].Type != model.PhoneTypeMobile {
		t.Fatalf("unexpected phones: %+v err=%v", phones, err)
	}

	mock.ExpectQuery(`FROM telefones WHERE idTelefone=\$1`).WithArgs(int64(6)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(ctx, 6); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE telefones SET").WithArgs("1133334444", model.PhoneTypeLandline, int64(5)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.Update(ctx, &model.Phone{ID: 5, Number: "1133334444", Type: model.PhoneTypeLandline}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestAddressRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &addressRepository{db: storage.pool}
	ctx := context.Background()
	complement := "Sala 12"

	mock.ExpectQuery("INSERT INTO enderecos").
		WithArgs(int64(1), "Rua A", "10", "Centro", "Santos", "SP", "11010000", &complement).
		WillReturnRows(pgxmockv3.NewRows([]string{"idendereco"}).AddRow(int64(8)))
	address, err := repo.Create(ctx, &model.Address{
		CustomerID: 1, Street: "Rua A", Number: "10", District: "Centro", City: "Santos", State: "SP",
		PostalCode: "11010000", Complement: &complement,
	})
	if err != nil || address.ID != 8 {
		t.Fatalf("unexpected address: %+v err=%v", address, err)
	}

	mock.ExpectQuery(`FROM enderecos WHERE idEndereco=\$1`).WithArgs(int64(8)).
		WillReturnRows(pgxmockv3.NewRows(addressRowColumns).AddRow(int64(8), int64(1), "Rua A", "10", "Centro", "Santos", "SP", "11010000", nil))
	got, err := repo.GetByID(ctx, 8)
	if err != nil || got.Complement != nil {
		t.Fatalf("expected address without complement, got %+v err=%v", got, err)
	}

	mock.ExpectExec(q("DELETE FROM enderecos WHERE idEndereco=$1")).WithArgs(int64(8)).WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if rows, err := repo.Delete(ctx, 8); err != nil || rows != 0 {
		t.Fatalf("unexpected delete result rows=%d err=%v", rows, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
