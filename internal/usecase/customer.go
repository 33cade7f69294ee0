package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
	"github.com/polkiloo/dispatch/internal/domain/model"
	"github.com/polkiloo/dispatch/internal/domain/repository"
)

// PhoneInput is a raw phone as received from clients.
type PhoneInput struct {
	Number string
	Type   string
}

// AddressInput is a raw address as received from clients.
type AddressInput struct {
	Street     string
	Number     string
	District   string
	City       string
	State      string
	PostalCode string
	Complement *string
}

// CustomerInput registers a customer with its first phone and address.
type CustomerInput struct {
	FirstName string
	LastName  string
	CPF       string
	Email     string
	Phone     PhoneInput
	Address   AddressInput
}

// CustomerPatch lists customer attributes to replace.
type CustomerPatch struct {
	FirstName *string
	LastName  *string
	CPF       *string
	Email     *string
}

// PhonePatch lists phone attributes to replace.
type PhonePatch struct {
	Number *string
	Type   *string
}

// AddressPatch lists address attributes to replace. An empty complement
// clears the stored one.
type AddressPatch struct {
	Street     *string
	Number     *string
	District   *string
	City       *string
	State      *string
	PostalCode *string
	Complement *string
}

// CustomerDetails is a customer with its contacts.
type CustomerDetails struct {
	Customer  model.Customer
	Phones    []model.Phone
	Addresses []model.Address
}

func buildCustomer(firstName, lastName, cpf, email string) (*model.Customer, error) {
	var err error
	c := &model.Customer{}
	if c.FirstName, err = requireMinLength("first name", firstName, minNameLength); err != nil {
		return nil, err
	}
	if c.LastName, err = requireMinLength("last name", lastName, minNameLength); err != nil {
		return nil, err
	}
	if c.CPF, err = NormalizeCPF(cpf); err != nil {
		return nil, err
	}
	c.Email = strings.TrimSpace(email)
	if err = validateEmail(c.Email); err != nil {
		return nil, err
	}
	return c, nil
}

func (in PhoneInput) phone() (*model.Phone, error) {
	number, err := validatePhoneNumber(in.Number)
	if err != nil {
		return nil, err
	}
	kind, err := model.ParsePhoneType(in.Type)
	if err != nil {
		return nil, err
	}
	return &model.Phone{Number: number, Type: kind}, nil
}

func (in AddressInput) address() (*model.Address, error) {
	var err error
	a := &model.Address{}
	fields := []struct {
		name  string
		value string
		dst   *string
	}{
		{"street", in.Street, &a.Street},
		{"address number", in.Number, &a.Number},
		{"district", in.District, &a.District},
		{"city", in.City, &a.City},
		{"state", in.State, &a.State},
	}
	for _, f := range fields {
		if *f.dst, err = requireText(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if a.PostalCode, err = validatePostalCode(in.PostalCode); err != nil {
		return nil, err
	}
	if in.Complement != nil {
		if complement := strings.TrimSpace(*in.Complement); complement != "" {
			a.Complement = &complement
		}
	}
	return a, nil
}

// CustomerUseCase manages customers and their contacts.
type CustomerUseCase struct {
	repos repository.Factory
	tx    repository.Transactor
}

// NewCustomerUseCase constructs CustomerUseCase.
func NewCustomerUseCase(repos repository.Factory, tx repository.Transactor) *CustomerUseCase {
	return &CustomerUseCase{repos: repos, tx: tx}
}

// Register stores the customer with its first phone and address.
func (u *CustomerUseCase) Register(ctx context.Context, in CustomerInput) (*CustomerDetails, error) {
	customer, err := buildCustomer(in.FirstName, in.LastName, in.CPF, in.Email)
	if err != nil {
		return nil, err
	}
	phone, err := in.Phone.phone()
	if err != nil {
		return nil, err
	}
	address, err := in.Address.address()
	if err != nil {
		return nil, err
	}

	var details CustomerDetails
	err = u.tx.WithinTransaction(ctx, func(repos repository.Factory) error {
		if err := ensureCPFFree(ctx, repos, customer.CPF, 0); err != nil {
			return err
		}

		created, err := repos.Customers().Create(ctx, customer)
		if err != nil {
			return err
		}
		phone.CustomerID = created.ID
		storedPhone, err := repos.Phones().Create(ctx, phone)
		if err != nil {
			return err
		}
		address.CustomerID = created.ID
		storedAddress, err := repos.Addresses().Create(ctx, address)
		if err != nil {
			return err
		}

		details = CustomerDetails{
			Customer:  *created,
			Phones:    []model.Phone{*storedPhone},
			Addresses: []model.Address{*storedAddress},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// Update merges the patch into the stored customer.
func (u *CustomerUseCase) Update(ctx context.Context, id int64, patch CustomerPatch) (*model.Customer, error) {
	if err := RequirePositiveID("customer id", id); err != nil {
		return nil, err
	}

	var updated *model.Customer
	err := u.tx.WithinTransaction(ctx, func(repos repository.Factory) error {
		current, err := repos.Customers().GetByID(ctx, id)
		if err != nil {
			return err
		}
		merged, err := buildCustomer(
			pick(patch.FirstName, current.FirstName),
			pick(patch.LastName, current.LastName),
			pick(patch.CPF, current.CPF),
			pick(patch.Email, current.Email),
		)
		if err != nil {
			return err
		}
		merged.ID = id

		if merged.CPF != current.CPF {
			if err := ensureCPFFree(ctx, repos, merged.CPF, id); err != nil {
				return err
			}
		}
		if err := repos.Customers().Update(ctx, merged); err != nil {
			return err
		}
		updated = merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the customer along with everything it owns.
func (u *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	if err := RequirePositiveID("customer id", id); err != nil {
		return err
	}
	return u.tx.WithinTransaction(ctx, func(repos repository.Factory) error {
		rows, err := repos.Customers().Delete(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domainErrors.NotFoundf("customer %d not found", id)
		}
		return nil
	})
}

// Get returns the customer with its phones and addresses.
func (u *CustomerUseCase) Get(ctx context.Context, id int64) (*CustomerDetails, error) {
	if err := RequirePositiveID("customer id", id); err != nil {
		return nil, err
	}
	customer, err := u.repos.Customers().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.details(ctx, customer)
}

// GetByCPF looks a customer up by document number. Punctuation is ignored.
func (u *CustomerUseCase) GetByCPF(ctx context.Context, rawCPF string) (*CustomerDetails, error) {
	cpf, err := NormalizeCPF(rawCPF)
	if err != nil {
		return nil, err
	}
	customer, err := u.repos.Customers().GetByCPF(ctx, cpf)
	if err != nil {
		return nil, err
	}
	return u.details(ctx, customer)
}

// List returns all customers.
func (u *CustomerUseCase) List(ctx context.Context) ([]model.Customer, error) {
	return u.repos.Customers().List(ctx)
}

// AddPhone attaches a phone to an existing customer.
func (u *CustomerUseCase) AddPhone(ctx context.Context, customerID int64, in PhoneInput) (*model.Phone, error) {
	if err := RequirePositiveID("customer id", customerID); err != nil {
		return nil, err
	}
	phone, err := in.phone()
	if err != nil {
		return nil, err
	}
	phone.CustomerID = customerID

	var created *model.Phone
	err = u.tx.WithinTransaction(ctx, func(repos repository.Factory) error {
		if _, err := repos.Customers().GetByID(ctx, customerID); err != nil {
			return err
		}
		var err error
		created, err = repos.Phones().Create(ctx, phone)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Phones lists the customer's phones.
func (u *CustomerUseCase) Phones(ctx context.Context, customerID int64) ([]model.Phone, error) {
	if err := u.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return u.repos.Phones().ListByCustomer(ctx, customerID)
}

// UpdatePhone merges the patch into the stored phone.
func (u *CustomerUseCase) UpdatePhone(ctx context.Context, id int64, patch PhonePatch) (*model.Phone, error) {
	if err := RequirePositiveID("phone id", id); err != nil {
		return nil, err
	}

	var updated *model.Phone
	err := u.tx.WithinTransaction(ctx, func(repos repository.Factory) error {
		current, err := repos.Phones().GetByID(ctx, id)
		if err != nil {
			return err
		}
		merged, err := PhoneInput{
			Number: pick(patch.Number, current.Number),
			Type:   pick(patch.Type, string(current.Type)),
		}.phone()
		if err != nil {
			return err
		}
		merged.ID = current.ID
		merged.CustomerID = current.CustomerID
		if err := repos.Phones().Update(ctx, merged); err != nil {
			return err
		}
		updated = merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeletePhone removes a phone.
func (u *CustomerUseCase) DeletePhone(ctx context.Context, id int64) error {
	if err := RequirePositiveID("phone id", id); err != nil {
		return err
	}
	rows, err := u.repos.Phones().Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domainErrors.NotFoundf("phone %d not found", id)
	}
	return nil
}

// AddAddress attaches an address to an existing customer.
func (u *CustomerUseCase) AddAddress(ctx context.Context, customerID int64, in AddressInput) (*model.Address, error) {
	if err := RequirePositiveID("customer id", customerID); err != nil {
		return nil, err
	}
	address, err := in.address()
	if err != nil {
		return nil, err
	}
	address.CustomerID = customerID

	var created *model.Address
	err = u.tx.WithinTransaction(ctx, func(repos repository.Factory) error {
		if _, err := repos.Customers().GetByID(ctx, customerID); err != nil {
			return err
		}
		var err error
		created, err = repos.Addresses().Create(ctx, address)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Addresses lists the customer's addresses.
func (u *CustomerUseCase) Addresses(ctx context.Context, customerID int64) ([]model.Address, error) {
	if err := u.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return u.repos.Addresses().ListByCustomer(ctx, customerID)
}

// UpdateAddress merges the patch into the stored address.
func (u *CustomerUseCase) UpdateAddress(ctx context.Context, id int64, patch AddressPatch) (*model.Address, error) {
	if err := RequirePositiveID("address id", id); err != nil {
		return nil, err
	}

	var updated *model.Address
	err := u.tx.WithinTransaction(ctx, func(repos repository.Factory) error {
		current, err := repos.Addresses().GetByID(ctx, id)
		if err != nil {
			return err
		}
		complement := current.Complement
		if patch.Complement != nil {
			complement = patch.Complement
		}
		merged, err := AddressInput{
			Street:     pick(patch.Street, current.Street),
			Number:     pick(patch.Number, current.Number),
			District:   pick(patch.District, current.District),
			City:       pick(patch.City, current.City),
			State:      pick(patch.State, current.State),
			PostalCode: pick(patch.PostalCode, current.PostalCode),
			Complement: complement,
		}.address()
		if err != nil {
			return err
		}
		merged.ID = current.ID
		merged.CustomerID = current.CustomerID
		if err := repos.Addresses().Update(ctx, merged); err != nil {
			return err
		}
		updated = merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAddress removes an address.
func (u *CustomerUseCase) DeleteAddress(ctx context.Context, id int64) error {
	if err := RequirePositiveID("address id", id); err != nil {
		return err
	}
	rows, err := u.repos.Addresses().Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domainErrors.NotFoundf("address %d not found", id)
	}
	return nil
}

func (u *CustomerUseCase) requireCustomer(ctx context.Context, id int64) error {
	if err := RequirePositiveID("customer id", id); err != nil {
		return err
	}
	_, err := u.repos.Customers().GetByID(ctx, id)
	return err
}

func (u *CustomerUseCase) details(ctx context.Context, customer *model.Customer) (*CustomerDetails, error) {
	phones, err := u.repos.Phones().ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	addresses, err := u.repos.Addresses().ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return &CustomerDetails{Customer: *customer, Phones: phones, Addresses: addresses}, nil
}

// ensureCPFFree fails with ErrConflict when cpf belongs to a customer other than owner.
func ensureCPFFree(ctx context.Context, repos repository.Factory, cpf string, owner int64) error {
	existing, err := repos.Customers().GetByCPF(ctx, cpf)
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != owner:
		return domainErrors.Conflictf("cpf %s is already registered", cpf)
	}
	return nil
}
