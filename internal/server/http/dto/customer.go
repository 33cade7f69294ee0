package dto

type PhoneRequest struct {
	Number string `json:"number" binding:"required"`
	Type   string `json:"type" binding:"required"`
}

type AddressRequest struct {
	Street     string  `json:"street" binding:"required"`
	Number     string  `json:"number" binding:"required"`
	District   string  `json:"district" binding:"required"`
	City       string  `json:"city" binding:"required"`
	State      string  `json:"state" binding:"required"`
	PostalCode string  `json:"postalCode" binding:"required"`
	Complement *string `json:"complement"`
}

// CreateCustomerRequest is the body of POST /api/customers.
type CreateCustomerRequest struct {
	FirstName string         `json:"firstName" binding:"required"`
	LastName  string         `json:"lastName" binding:"required"`
	CPF       string         `json:"cpf" binding:"required"`
	Email     string         `json:"email" binding:"required"`
	Phone     PhoneRequest   `json:"phone"`
	Address   AddressRequest `json:"address"`
}

type UpdateCustomerRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	CPF       *string `json:"cpf"`
	Email     *string `json:"email"`
}

type UpdatePhoneRequest struct {
	Number *string `json:"number"`
	Type   *string `json:"type"`
}

type UpdateAddressRequest struct {
	Street     *string `json:"street"`
	Number     *string `json:"number"`
	District   *string `json:"district"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postalCode"`
	Complement *string `json:"complement"`
}

type CustomerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
}

type PhoneResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId"`
	Number     string `json:"number"`
	Type       string `json:"type"`
}

type AddressResponse struct {
	ID         int64   `json:"id"`
	CustomerID int64   `json:"customerId"`
	Street     string  `json:"street"`
	Number     string  `json:"number"`
	District   string  `json:"district"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postalCode"`
	Complement *string `json:"complement"`
}

// CustomerDetailsResponse is a customer with its phones and addresses.
type CustomerDetailsResponse struct {
	CustomerResponse
	Phones    []PhoneResponse   `json:"phones"`
	Addresses []AddressResponse `json:"addresses"`
}
