package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/dispatch/internal/domain/model"
	"github.com/polkiloo/dispatch/internal/server/http/dto"
	"github.com/polkiloo/dispatch/internal/usecase"
)

// CustomerHandler manages customers, phones and addresses.
type CustomerHandler struct {
	facade CustomerFacade
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(facade CustomerFacade) *CustomerHandler {
	return &CustomerHandler{facade: facade}
}

// Register handles POST /api/customers.
func (h *CustomerHandler) Register(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	details, err := h.facade.RegisterCustomer(c.Request.Context(), usecase.CustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CPF:       req.CPF,
		Email:     req.Email,
		Phone:     phoneInput(req.Phone),
		Address:   addressInput(req.Address),
	})
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusCreated, "customer registered", toCustomerDetails(details))
}

// List handles GET /api/customers, or a lookup by ?cpf= when given.
func (h *CustomerHandler) List(c *gin.Context) {
	if cpf, ok := c.GetQuery("cpf"); ok {
		details, err := h.facade.CustomerByCPF(c.Request.Context(), cpf)
		if err != nil {
			fail(c, err)
			return
		}
		respondData(c, http.StatusOK, "customer found", toCustomerDetails(details))
		return
	}

	customers, err := h.facade.Customers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respondList(c, mapSlice(customers, toCustomerResponse), "customers found", "no customers found")
}

// Get handles GET /api/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "customer id")
	if !ok {
		return
	}
	details, err := h.facade.Customer(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusOK, "customer found", toCustomerDetails(details))
}

// Update handles PUT /api/customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "customer id")
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	customer, err := h.facade.UpdateCustomer(c.Request.Context(), id, usecase.CustomerPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CPF:       req.CPF,
		Email:     req.Email,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respondResult(c, "customer updated", toCustomerResponse(*customer))
}

// Delete handles DELETE /api/customers/:id together with everything the customer owns.
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "customer id")
	if !ok {
		return
	}
	if err := h.facade.DeleteCustomer(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "customer deleted"})
}

// AddPhone handles POST /api/customers/:id/phones.
func (h *CustomerHandler) AddPhone(c *gin.Context) {
	id, ok := pathID(c, "customer id")
	if !ok {
		return
	}
	var req dto.PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	phone, err := h.facade.AddPhone(c.Request.Context(), id, phoneInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusCreated, "phone added", toPhoneResponse(*phone))
}

// Phones handles GET /api/customers/:id/phones.
func (h *CustomerHandler) Phones(c *gin.Context) {
	id, ok := pathID(c, "customer id")
	if !ok {
		return
	}
	phones, err := h.facade.Phones(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondList(c, mapSlice(phones, toPhoneResponse), "phones found", "customer has no phones")
}

// UpdatePhone handles PUT /api/phones/:id.
func (h *CustomerHandler) UpdatePhone(c *gin.Context) {
	id, ok := pathID(c, "phone id")
	if !ok {
		return
	}
	var req dto.UpdatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	phone, err := h.facade.UpdatePhone(c.Request.Context(), id, usecase.PhonePatch{Number: req.Number, Type: req.Type})
	if err != nil {
		fail(c, err)
		return
	}
	respondResult(c, "phone updated", toPhoneResponse(*phone))
}

// DeletePhone handles DELETE /api/phones/:id.
func (h *CustomerHandler) DeletePhone(c *gin.Context) {
	id, ok := pathID(c, "phone id")
	if !ok {
		return
	}
	if err := h.facade.DeletePhone(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "phone deleted"})
}

// AddAddress handles POST /api/customers/:id/addresses.
func (h *CustomerHandler) AddAddress(c *gin.Context) {
	id, ok := pathID(c, "customer id")
	if !ok {
		return
	}
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	address, err := h.facade.AddAddress(c.Request.Context(), id, addressInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusCreated, "address added", toAddressResponse(*address))
}

// Addresses handles GET /api/customers/:id/addresses.
func (h *CustomerHandler) Addresses(c *gin.Context) {
	id, ok := pathID(c, "customer id")
	if !ok {
		return
	}
	addresses, err := h.facade.Addresses(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondList(c, mapSlice(addresses, toAddressResponse), "addresses found", "customer has no addresses")
}

// UpdateAddress handles PUT /api/addresses/:id.
func (h *CustomerHandler) UpdateAddress(c *gin.Context) {
	id, ok := pathID(c, "address id")
	if !ok {
		return
	}
	var req dto.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	address, err := h.facade.UpdateAddress(c.Request.Context(), id, usecase.AddressPatch{
		Street:     req.Street,
		Number:     req.Number,
		District:   req.District,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Complement: req.Complement,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respondResult(c, "address updated", toAddressResponse(*address))
}

// DeleteAddress handles DELETE /api/addresses/:id.
func (h *CustomerHandler) DeleteAddress(c *gin.Context) {
	id, ok := pathID(c, "address id")
	if !ok {
		return
	}
	if err := h.facade.DeleteAddress(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "address deleted"})
}

func phoneInput(req dto.PhoneRequest) usecase.PhoneInput {
	return usecase.PhoneInput{Number: req.Number, Type: req.Type}
}

func addressInput(req dto.AddressRequest) usecase.AddressInput {
	return usecase.AddressInput{
		Street:     req.Street,
		Number:     req.Number,
		District:   req.District,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Complement: req.Complement,
	}
}

func toCustomerResponse(c model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, CPF: c.CPF, Email: c.Email}
}

func toPhoneResponse(p model.Phone) dto.PhoneResponse {
	return dto.PhoneResponse{ID: p.ID, CustomerID: p.CustomerID, Number: p.Number, Type: string(p.Type)}
}

func toAddressResponse(a model.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Street:     a.Street,
		Number:     a.Number,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Complement: a.Complement,
	}
}

func toCustomerDetails(d *usecase.CustomerDetails) dto.CustomerDetailsResponse {
	return dto.CustomerDetailsResponse{
		CustomerResponse: toCustomerResponse(d.Customer),
		Phones:           mapSlice(d.Phones, toPhoneResponse),
		Addresses:        mapSlice(d.Addresses, toAddressResponse),
	}
}
