package usecase

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
	"github.com/polkiloo/dispatch/internal/domain/pricing"
)

const (
	cpfLength        = 11
	postalCodeLength = 8
	minNameLength    = 3
	minEmailLength   = 10
	minPhoneLength   = 8
	maxPhoneLength   = 20
	maxNumberLength  = 32
)

var validate = validator.New()

// ParseID checks that raw is a positive integer identifier.
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainErrors.Validationf("%s must be a positive integer", field)
	}
	return id, nil
}

// RequirePositiveID rejects non-positive identifiers.
func RequirePositiveID(field string, id int64) error {
	if id <= 0 {
		return domainErrors.Validationf("%s must be a positive integer", field)
	}
	return nil
}

// parsePositive parses a required decimal that must be strictly positive.
func parsePositive(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, domainErrors.Validationf("%s is required", field)
	}
	if len(raw) > maxNumberLength {
		return decimal.Zero, domainErrors.Validationf("%s must have at most %d characters", field, maxNumberLength)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domainErrors.Validationf("%s must be a number", field)
	}
	if !value.IsPositive() {
		return decimal.Zero, domainErrors.Validationf("%s must be greater than zero", field)
	}
	if err := pricing.CheckMeasure(value); err != nil {
		return decimal.Zero, domainErrors.Validationf("%s %v", field, err)
	}
	return value, nil
}

// NormalizeCPF strips punctuation and checks the document has 11 digits.
func NormalizeCPF(raw string) (string, error) {
	cpf := strings.NewReplacer(".", "", "-", "").Replace(strings.TrimSpace(raw))
	if cpf == "" {
		return "", domainErrors.Validationf("cpf is required")
	}
	if len(cpf) != cpfLength || strings.IndexFunc(cpf, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		return "", domainErrors.Validationf("cpf must have %d digits", cpfLength)
	}
	return cpf, nil
}

func validateEmail(email string) error {
	if utf8.RuneCountInString(email) < minEmailLength {
		return domainErrors.Validationf("email must have at least %d characters", minEmailLength)
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return domainErrors.Validationf("email is malformed")
	}
	return nil
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domainErrors.Validationf("%s is required", field)
	}
	return value, nil
}

func requireMinLength(field, value string, min int) (string, error) {
	value, err := requireText(field, value)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(value) < min {
		return "", domainErrors.Validationf("%s must have at least %d characters", field, min)
	}
	return value, nil
}

func validatePhoneNumber(number string) (string, error) {
	number, err := requireText("phone number", number)
	if err != nil {
		return "", err
	}
	if n := utf8.RuneCountInString(number); n < minPhoneLength || n > maxPhoneLength {
		return "", domainErrors.Validationf("phone number must have between %d and %d characters", minPhoneLength, maxPhoneLength)
	}
	return number, nil
}

func validatePostalCode(code string) (string, error) {
	code, err := requireText("postal code", code)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(code) != postalCodeLength {
		return "", domainErrors.Validationf("postal code must have %d characters", postalCodeLength)
	}
	return code, nil
}

// pick returns the patched value when present and the current one otherwise.
func pick(patch *string, current string) string {
	if patch != nil {
		return *patch
	}
	return current
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
