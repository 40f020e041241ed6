// Package quote computes price estimates for cleaning jobs. The calculation
// is pure: identical input always yields an identical breakdown, with no
// clock, locale or stored state involved.
package quote

import (
	"math"

	"bossmaids/models"
)

// Base rates in whole dollars, keyed by service type.
var baseRates = map[string]float64{
	"regular": 80,
	"deep":    150,
	"movein":  200,
	"airbnb":  60,
	"office":  120,
}

// defaultBaseRate applies to unrecognized service types.
const defaultBaseRate = 80

// Locality multipliers keyed by "City-ST". Unknown localities stay at 1.0.
var localityMultipliers = map[string]float64{
	"Miami-FL":       1.2,
	"Los Angeles-CA": 1.4,
	"New York-NY":    1.5,
	"Houston-TX":     1.0,
	"Phoenix-AZ":     0.9,
}

// Frequency discounts as fractions. Unknown frequencies get no discount.
var frequencyDiscounts = map[string]float64{
	"weekly":   0.15,
	"biweekly": 0.10,
	"monthly":  0.05,
	"onetime":  0,
}

// Size multiplier weights and clamp bounds. The clamp keeps pathological
// inputs (a 40-bedroom mansion, a 10-sqft closet) from producing absurd
// quotes.
const (
	bedroomWeight  = 0.15
	bathroomWeight = 0.10
	areaWeight     = 0.20 // per 1000 sqft
	sizeFloor      = 0.1
	sizeCeiling    = 2.0
)

// Services lists the known service types with their base rates.
func Services() map[string]float64 {
	out := make(map[string]float64, len(baseRates))
	for k, v := range baseRates {
		out[k] = v
	}
	return out
}

// Calculate prices a job:
//
//	subtotal = base * locality * (1 + size)
//	total    = round(subtotal * (1 - discount))
//
// rounded to the nearest whole dollar. Every lookup falls back to a defined
// default, so no input combination fails.
func Calculate(in models.QuoteInput) models.QuoteBreakdown {
	base, ok := baseRates[in.Service]
	if !ok {
		base = defaultBaseRate
	}

	locality, ok := localityMultipliers[in.City+"-"+in.State]
	if !ok {
		locality = 1.0
	}

	size := float64(in.Bedrooms)*bedroomWeight +
		float64(in.Bathrooms)*bathroomWeight +
		in.SquareFeet/1000*areaWeight
	size = math.Min(sizeCeiling, math.Max(sizeFloor, size))

	discount := frequencyDiscounts[in.Frequency]

	subtotal := base * locality * (1 + size)
	total := math.Round(subtotal * (1 - discount))

	return models.QuoteBreakdown{
		BaseRate:           base,
		LocalityMultiplier: locality,
		SizeMultiplier:     size,
		FrequencyDiscount:  discount,
		Subtotal:           subtotal,
		Total:              total,
	}
}
