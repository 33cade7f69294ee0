package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/polkiloo/dispatch/internal/app"
	testhelpers "github.com/polkiloo/dispatch/internal/test"
	"github.com/polkiloo/dispatch/internal/usecase"
)

func newCustomerHandler() (*CustomerHandler, *testhelpers.MemoryStore) {
	store := testhelpers.NewMemoryStore()
	facade := app.NewDispatchFacade(
		usecase.NewOrderUseCase(store, store),
		usecase.NewDeliveryUseCase(store),
		usecase.NewCustomerUseCase(store, store),
		&testhelpers.HealthCheckerStub{},
	)
	return NewCustomerHandler(facade), store
}

func registerBody(cpf string) []byte {
	return []byte(fmt.Sprintf(`{
		"firstName": "Maria",
		"lastName": "Silva",
		"cpf": %q,
		"email": "maria.silva@example.com",
		"phone": {"number": "11987654321", "type": "Móvel"},
		"address": {"street": "Rua das Flores", "number": "12", "district": "Centro", "city": "Recife", "state": "PE", "postalCode": "50000000"}
	}`, cpf))
}

func registerCustomer(t *testing.T, handler *CustomerHandler, cpf string) int64 {
	t.Helper()
	resp := performRequest(t, http.MethodPost, "/customers", "/customers", handler.Register, registerBody(cpf))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var data struct {
		ID     int64 `json:"id"`
		Phones []struct {
			Type string `json:"type"`
		} `json:"phones"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, resp).Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Phones) != 1 || data.Phones[0].Type != "MOBILE" {
		t.Fatalf("unexpected phones %+v", data.Phones)
	}
	return data.ID
}

func TestCustomerHandlerRegister(t *testing.T) {
	handler, store := newCustomerHandler()
	cpf := testhelpers.RandomCPF()
	registerCustomer(t, handler, cpf)

	resp := performRequest(t, http.MethodPost, "/customers", "/customers", handler.Register, registerBody(cpf))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for duplicate cpf, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/customers", "/customers", handler.Register, registerBody("123"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for short cpf, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/customers", "/customers", handler.Register, []byte(`{"firstName": "Maria"}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing fields, got %d", resp.Code)
	}

	counts := store.Snapshot()
	if counts["customers"] != 1 || counts["phones"] != 1 || counts["addresses"] != 1 {
		t.Fatalf("unexpected rows after failed registrations: %v", counts)
	}
}

func TestCustomerHandlerLookup(t *testing.T) {
	handler, _ := newCustomerHandler()
	cpf := testhelpers.RandomCPF()
	id := registerCustomer(t, handler, cpf)

	formatted := cpf[:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:]
	resp := performRequest(t, http.MethodGet, "/customers", "/customers?cpf="+formatted, handler.List, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/customers", "/customers?cpf=00000000000", handler.List, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/customers/:id", fmt.Sprintf("/customers/%d", id), handler.Get, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/customers", "/customers", handler.List, nil)
	var list []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, resp).Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestCustomerHandlerUpdateAndDelete(t *testing.T) {
	handler, store := newCustomerHandler()
	id := registerCustomer(t, handler, testhelpers.RandomCPF())
	target := fmt.Sprintf("/customers/%d", id)

	resp := performRequest(t, http.MethodPut, "/customers/:id", target, handler.Update, []byte(`{"lastName": "Souza"}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var result struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, resp).Result, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.FirstName != "Maria" || result.LastName != "Souza" {
		t.Fatalf("unexpected customer %+v", result)
	}

	resp = performRequest(t, http.MethodPut, "/customers/:id", target, handler.Update, []byte(`{"email": "bad"}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodDelete, "/customers/:id", target, handler.Delete, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if counts := store.Snapshot(); counts["customers"] != 0 || counts["phones"] != 0 || counts["addresses"] != 0 {
		t.Fatalf("expected cascade delete, got %v", counts)
	}

	resp = performRequest(t, http.MethodDelete, "/customers/:id", target, handler.Delete, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCustomerHandlerContacts(t *testing.T) {
	handler, _ := newCustomerHandler()
	id := registerCustomer(t, handler, testhelpers.RandomCPF())
	phones := fmt.Sprintf("/customers/%d/phones", id)
	addresses := fmt.Sprintf("/customers/%d/addresses", id)

	resp := performRequest(t, http.MethodPost, "/customers/:id/phones", phones, handler.AddPhone, []byte(`{"number": "8133334444", "type": "fixo"}`))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var phone struct {
		ID   int64  `json:"id"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, resp).Data, &phone); err != nil {
		t.Fatalf("decode phone: %v", err)
	}
	if phone.Type != "LANDLINE" {
		t.Fatalf("unexpected phone type %q", phone.Type)
	}

	resp = performRequest(t, http.MethodPost, "/customers/:id/phones", phones, handler.AddPhone, []byte(`{"number": "8133334444", "type": "fax"}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown type, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/customers/:id/phones", phones, handler.Phones, nil)
	var listed []json.RawMessage
	if err := json.Unmarshal(decodeEnvelope(t, resp).Data, &listed); err != nil || len(listed) != 2 {
		t.Fatalf("expected two phones, got %d (%v)", len(listed), err)
	}

	phoneTarget := fmt.Sprintf("/phones/%d", phone.ID)
	resp = performRequest(t, http.MethodPut, "/phones/:id", phoneTarget, handler.UpdatePhone, []byte(`{"type": "mobile"}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodDelete, "/phones/:id", phoneTarget, handler.DeletePhone, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodDelete, "/phones/:id", phoneTarget, handler.DeletePhone, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/customers/:id/addresses", addresses, handler.AddAddress,
		[]byte(`{"street": "Av. Boa Viagem", "number": "900", "district": "Boa Viagem", "city": "Recife", "state": "PE", "postalCode": "51020000", "complement": "apto 101"}`))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var address struct {
		ID         int64   `json:"id"`
		Complement *string `json:"complement"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, resp).Data, &address); err != nil {
		t.Fatalf("decode address: %v", err)
	}
	if address.Complement == nil || *address.Complement != "apto 101" {
		t.Fatalf("unexpected complement %v", address.Complement)
	}

	addressTarget := fmt.Sprintf("/addresses/%d", address.ID)
	resp = performRequest(t, http.MethodPut, "/addresses/:id", addressTarget, handler.UpdateAddress, []byte(`{"postalCode": "123"}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for short postal code, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/customers/:id/addresses", addresses, handler.Addresses, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodDelete, "/addresses/:id", addressTarget, handler.DeleteAddress, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}
