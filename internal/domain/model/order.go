package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/dispatch/internal/pkg/enum"
)

// Urgency classifies how fast an order must be delivered.
type Urgency string

const (
	UrgencyUrgent    Urgency = "URGENT"
	UrgencyNotUrgent Urgency = "NOT_URGENT"
)

var urgencyAliases = map[string]Urgency{
	"urgente":    UrgencyUrgent,
	"urgent":     UrgencyUrgent,
	"naourgente": UrgencyNotUrgent,
	"not_urgent": UrgencyNotUrgent,
	"noturgent":  UrgencyNotUrgent,
}

// ParseUrgency resolves client supplied urgency text.
func ParseUrgency(raw string) (Urgency, error) {
	return enum.Lookup("urgency", raw, urgencyAliases)
}

// Valid reports whether u is a known urgency.
func (u Urgency) Valid() bool {
	return u == UrgencyUrgent || u == UrgencyNotUrgent
}

// Order is a customer request to carry a load over a distance.
type Order struct {
	ID                  int64
	CustomerID          int64
	Urgency             Urgency
	DistanceKm          decimal.Decimal
	WeightKg            decimal.Decimal
	UnitPriceByWeight   decimal.Decimal
	UnitPriceByDistance decimal.Decimal
	CreatedAt           time.Time
}
