package app

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
	"github.com/polkiloo/dispatch/internal/domain/model"
	testhelpers "github.com/polkiloo/dispatch/internal/test"
	"github.com/polkiloo/dispatch/internal/usecase"
)

func newFacade(health HealthChecker) (*DispatchFacade, *testhelpers.MemoryStore) {
	store := testhelpers.NewMemoryStore()
	facade := NewDispatchFacade(
		usecase.NewOrderUseCase(store, store),
		usecase.NewDeliveryUseCase(store),
		usecase.NewCustomerUseCase(store, store),
		health,
	)
	return facade, store
}

func seedCustomer(store *testhelpers.MemoryStore) model.Customer {
	return store.SeedCustomer(model.Customer{
		FirstName: "Maria",
		LastName:  "Silva",
		CPF:       testhelpers.RandomCPF(),
		Email:     "maria@example.com",
	})
}

func orderInput(customerID int64) usecase.OrderInput {
	return usecase.OrderInput{
		CustomerID:          strconv.FormatInt(customerID, 10),
		Urgency:             "URGENT",
		DistanceKm:          "100",
		WeightKg:            "60",
		UnitPriceByWeight:   "5",
		UnitPriceByDistance: "3",
	}
}

func TestDispatchFacadeOrderLifecycle(t *testing.T) {
	facade, store := newFacade(&testhelpers.HealthCheckerStub{})
	customer := seedCustomer(store)
	ctx := context.Background()

	order, delivery, err := facade.CreateOrder(ctx, orderInput(customer.ID))
	if err != nil {
		t.Fatalf("create order returned error: %v", err)
	}
	if delivery.OrderID != order.ID {
		t.Fatalf("delivery bound to order %d, want %d", delivery.OrderID, order.ID)
	}
	if !delivery.TotalCost.Equal(decimal.NewFromInt(663)) {
		t.Fatalf("unexpected total %s", delivery.TotalCost)
	}

	gotOrder, gotDelivery, err := facade.Order(ctx, order.ID)
	if err != nil {
		t.Fatalf("order returned error: %v", err)
	}
	if gotOrder.ID != order.ID || gotDelivery.ID != delivery.ID {
		t.Fatalf("unexpected order view %+v / %+v", gotOrder, gotDelivery)
	}

	orders, err := facade.CustomerOrders(ctx, customer.ID)
	if err != nil {
		t.Fatalf("customer orders returned error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}

	advanced, err := facade.SetDeliveryStatus(ctx, delivery.ID, "em transito")
	if err != nil {
		t.Fatalf("set status returned error: %v", err)
	}
	if advanced.Status != model.DeliveryStatusInTransit {
		t.Fatalf("unexpected status %s", advanced.Status)
	}

	if err := facade.CancelOrder(ctx, order.ID); err != nil {
		t.Fatalf("cancel order returned error: %v", err)
	}
	if _, _, err := facade.Order(ctx, order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found after cancel, got %v", err)
	}
	deliveries, err := facade.Deliveries(ctx)
	if err != nil {
		t.Fatalf("deliveries returned error: %v", err)
	}
	if len(deliveries) != 0 {
		t.Fatalf("expected deliveries to be removed, got %d", len(deliveries))
	}
}

func TestDispatchFacadeCustomerOrdersUnknownCustomer(t *testing.T) {
	facade, _ := newFacade(&testhelpers.HealthCheckerStub{})
	if _, err := facade.CustomerOrders(context.Background(), 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDispatchFacadeCustomers(t *testing.T) {
	facade, _ := newFacade(&testhelpers.HealthCheckerStub{})
	ctx := context.Background()

	details, err := facade.RegisterCustomer(ctx, usecase.CustomerInput{
		FirstName: "Joana",
		LastName:  "Souza",
		CPF:       testhelpers.RandomCPF(),
		Email:     "joana@example.com",
		Phone:     usecase.PhoneInput{Number: "11987654321", Type: "MOBILE"},
		Address: usecase.AddressInput{
			Street: "Rua A", Number: "10", District: "Centro",
			City: "Recife", State: "PE", PostalCode: "50000000",
		},
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	byCPF, err := facade.CustomerByCPF(ctx, details.Customer.CPF)
	if err != nil {
		t.Fatalf("customer by cpf returned error: %v", err)
	}
	if byCPF.Customer.ID != details.Customer.ID {
		t.Fatalf("unexpected customer %d", byCPF.Customer.ID)
	}

	phone, err := facade.AddPhone(ctx, details.Customer.ID, usecase.PhoneInput{Number: "8133334444", Type: "fixo"})
	if err != nil {
		t.Fatalf("add phone returned error: %v", err)
	}
	phones, err := facade.Phones(ctx, details.Customer.ID)
	if err != nil || len(phones) != 2 {
		t.Fatalf("expected two phones, got %d (%v)", len(phones), err)
	}
	if err := facade.DeletePhone(ctx, phone.ID); err != nil {
		t.Fatalf("delete phone returned error: %v", err)
	}

	if err := facade.DeleteCustomer(ctx, details.Customer.ID); err != nil {
		t.Fatalf("delete customer returned error: %v", err)
	}
	customers, err := facade.Customers(ctx)
	if err != nil {
		t.Fatalf("customers returned error: %v", err)
	}
	if len(customers) != 0 {
		t.Fatalf("expected no customers, got %d", len(customers))
	}
}

func TestDispatchFacadeHealth(t *testing.T) {
	facade, _ := newFacade(&testhelpers.HealthCheckerStub{})
	if err := facade.Health(context.Background()); err != nil {
		t.Fatalf("unexpected health error: %v", err)
	}

	down := errors.New("down")
	facade, _ = newFacade(&testhelpers.HealthCheckerStub{Err: down})
	if err := facade.Health(context.Background()); !errors.Is(err, down) {
		t.Fatalf("expected health error, got %v", err)
	}
}
