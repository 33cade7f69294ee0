// Package pricing computes the cost breakdown of a delivery.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/dispatch/internal/domain/errors"
	"github.com/polkiloo/dispatch/internal/domain/model"
)

const (
	// MeasureScale is the number of fraction digits an order measure may carry.
	MeasureScale = 4
	// MaxMeasureDigits bounds the integer part of an order measure.
	MaxMeasureDigits = 6
	maxAmountDigits  = 10
)

var (
	ErrTooPrecise = errors.New("has more than 4 decimal places")
	ErrTooLarge   = errors.New("must be below 1000000")
)

var (
	heavyLoadKg       = decimal.NewFromInt(50)
	heavyLoadFee      = decimal.NewFromInt(15)
	discountThreshold = decimal.NewFromInt(500)
	urgentDivisor     = decimal.NewFromInt(5)
	discountDivisor   = decimal.NewFromInt(10)
)

// Input holds the order attributes that drive the price.
type Input struct {
	DistanceKm          decimal.Decimal
	WeightKg            decimal.Decimal
	UnitPriceByDistance decimal.Decimal
	UnitPriceByWeight   decimal.Decimal
	Urgency             model.Urgency
}

// InputFromOrder extracts pricing input from an order.
func InputFromOrder(o *model.Order) Input {
	return Input{
		DistanceKm:          o.DistanceKm,
		WeightKg:            o.WeightKg,
		UnitPriceByDistance: o.UnitPriceByDistance,
		UnitPriceByWeight:   o.UnitPriceByWeight,
		Urgency:             o.Urgency,
	}
}

// Compute returns the breakdown for in.
//
// Loads strictly above 50 kg pay a fixed fee of 15. Urgent orders pay a fifth of
// the base amount. Orders whose base plus surcharge is strictly above 500 get a
// tenth of that sum off; the extra fee is never discounted.
func Compute(in Input) (model.Breakdown, error) {
	if err := in.validate(); err != nil {
		return model.Breakdown{}, err
	}

	weightCost := in.UnitPriceByWeight.Mul(in.WeightKg)
	distanceCost := in.UnitPriceByDistance.Mul(in.DistanceKm)
	base := weightCost.Add(distanceCost)

	extraFee := decimal.Zero
	if in.WeightKg.GreaterThan(heavyLoadKg) {
		extraFee = heavyLoadFee
	}

	surcharge := decimal.Zero
	if in.Urgency == model.UrgencyUrgent {
		surcharge = base.Div(urgentDivisor).Round(2)
	}

	discount := decimal.Zero
	if subtotal := base.Add(surcharge); subtotal.GreaterThan(discountThreshold) {
		discount = subtotal.Div(discountDivisor).Round(2)
	}

	b := model.Breakdown{
		DistanceCost: distanceCost,
		WeightCost:   weightCost,
		Surcharge:    surcharge,
		ExtraFee:     extraFee,
		Discount:     discount,
		TotalCost:    base.Add(surcharge).Add(extraFee).Sub(discount),
	}
	for _, amount := range []decimal.Decimal{b.DistanceCost, b.WeightCost, b.Surcharge, b.TotalCost} {
		if integerDigits(amount) > maxAmountDigits {
			return model.Breakdown{}, fmt.Errorf("%w: amount %s exceeds %d integer digits", domainErrors.ErrInvalidInput, amount, maxAmountDigits)
		}
	}
	return b, nil
}

// CheckMeasure reports whether v fits an order column: at most MeasureScale
// fraction digits and fewer than MaxMeasureDigits integer digits. It inspects
// the coefficient and exponent first so huge exponents are never rescaled.
func CheckMeasure(v decimal.Decimal) error {
	exp := int64(v.Exponent())
	if v.IsZero() {
		switch {
		case exp < -MeasureScale:
			return ErrTooPrecise
		case exp > MaxMeasureDigits:
			return ErrTooLarge
		}
		return nil
	}
	if integerDigits(v) > MaxMeasureDigits {
		return ErrTooLarge
	}
	if exp >= -MeasureScale {
		return nil
	}
	// A coefficient shorter than the excess scale cannot end in enough zeros.
	if -exp-MeasureScale >= int64(v.NumDigits()) {
		return ErrTooPrecise
	}
	if !v.Equal(v.Truncate(MeasureScale)) {
		return ErrTooPrecise
	}
	return nil
}

func integerDigits(v decimal.Decimal) int64 {
	return int64(v.NumDigits()) + int64(v.Exponent())
}

func (in Input) validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"distance", in.DistanceKm},
		{"weight", in.WeightKg},
		{"unit price by distance", in.UnitPriceByDistance},
		{"unit price by weight", in.UnitPriceByWeight},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", domainErrors.ErrInvalidInput, f.name)
		}
		if err := CheckMeasure(f.value); err != nil {
			return fmt.Errorf("%w: %s %w", domainErrors.ErrInvalidInput, f.name, err)
		}
	}
	if !in.Urgency.Valid() {
		return fmt.Errorf("%w: unknown urgency %q", domainErrors.ErrInvalidInput, in.Urgency)
	}
	return nil
}
