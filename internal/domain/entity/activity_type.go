// Package entity defines the core business entities for the domain layer.
package entity

// Well-known activity categories. Category is free-form; these are the seeded ones.
const (
	CategoryTransport = "transport"
	CategoryEnergy    = "energy"
	CategoryFood      = "food"
	CategoryOther     = "other"
)

// ActivityType is an emission catalog entry. It is read-only for end users.
type ActivityType struct {
	ID             string
	Slug           string
	Name           string
	Unit           string
	EmissionFactor float64 // kg CO2e per one unit
	Icon           string
	Category       string
}

// Estimate returns the emissions an amount of this activity would produce.
func (a *ActivityType) Estimate(amount float64) float64 {
	return CalculateCO2e(amount, a.EmissionFactor)
}

// CalculateCO2e applies an emission factor to an amount. No rounding is applied.
func CalculateCO2e(amount, emissionFactor float64) float64 {
	return amount * emissionFactor
}

// Catalog indexes activity types by id.
type Catalog map[string]*ActivityType

// NewCatalog builds a Catalog from a list of activity types.
func NewCatalog(types []*ActivityType) Catalog {
	c := make(Catalog, len(types))
	for _, t := range types {
		c[t.ID] = t
	}
	return c
}

// Lookup returns the activity type with the given id.
func (c Catalog) Lookup(id string) (*ActivityType, bool) {
	t, ok := c[id]
	return t, ok
}
