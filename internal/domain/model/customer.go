package model

import "github.com/polkiloo/dispatch/internal/pkg/enum"

// PhoneType distinguishes landlines from mobile numbers.
type PhoneType string

const (
	PhoneTypeLandline PhoneType = "LANDLINE"
	PhoneTypeMobile   PhoneType = "MOBILE"
)

var phoneTypeAliases = map[string]PhoneType{
	"fixo":     PhoneTypeLandline,
	"landline": PhoneTypeLandline,
	"movel":    PhoneTypeMobile,
	"mobile":   PhoneTypeMobile,
}

// ParsePhoneType resolves client supplied phone type text.
func ParsePhoneType(raw string) (PhoneType, error) {
	return enum.Lookup("phone type", raw, phoneTypeAliases)
}

// Customer owns phones, addresses and orders.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	CPF       string
	Email     string
}

// Phone is a customer contact number.
type Phone struct {
	ID         int64
	CustomerID int64
	Number     string
	Type       PhoneType
}

// Address is a customer postal address.
type Address struct {
	ID         int64
	CustomerID int64
	Street     string
	Number     string
	District   string
	City       string
	State      string
	PostalCode string
	Complement *string
}
