package quote

import (
	"testing"

	"bossmaids/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMiamiWeeklyRegular(t *testing.T) {
	in := models.QuoteInput{
		Bedrooms:   3,
		Bathrooms:  2,
		SquareFeet: 1500,
		Service:    "regular",
		Frequency:  "weekly",
		City:       "Miami",
		State:      "FL",
	}

	out := Calculate(in)

	assert.Equal(t, 80.0, out.BaseRate)
	assert.Equal(t, 1.2, out.LocalityMultiplier)
	assert.InDelta(t, 0.95, out.SizeMultiplier, 1e-9)
	assert.Equal(t, 0.15, out.FrequencyDiscount)
	assert.InDelta(t, 187.20, out.Subtotal, 1e-9)
	assert.Equal(t, 159.0, out.Total)
}

func TestCalculateIsDeterministic(t *testing.T) {
	in := models.QuoteInput{
		Bedrooms:   2,
		Bathrooms:  1,
		SquareFeet: 900,
		Service:    "deep",
		Frequency:  "monthly",
		City:       "Phoenix",
		State:      "AZ",
	}

	first := Calculate(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Calculate(in))
	}
}

func TestCalculateUnknownInputsFallBack(t *testing.T) {
	in := models.QuoteInput{
		Bedrooms:   1,
		Bathrooms:  1,
		SquareFeet: 500,
		Service:    "window-washing",
		Frequency:  "fortnightly",
		City:       "Boise",
		State:      "ID",
	}

	out := Calculate(in)

	assert.Equal(t, 80.0, out.BaseRate)
	assert.Equal(t, 1.0, out.LocalityMultiplier)
	assert.Equal(t, 0.0, out.FrequencyDiscount)
	assert.InDelta(t, 108.0, out.Subtotal, 1e-9) // 80 * 1.0 * 1.35
	assert.Equal(t, 108.0, out.Total)
}

func TestCalculateSizeMultiplierClamped(t *testing.T) {
	huge := Calculate(models.QuoteInput{
		Bedrooms:   40,
		Bathrooms:  20,
		SquareFeet: 50000,
		Service:    "regular",
		Frequency:  "onetime",
	})
	assert.Equal(t, 2.0, huge.SizeMultiplier)

	tiny := Calculate(models.QuoteInput{
		Bedrooms:   0,
		Bathrooms:  0,
		SquareFeet: 10,
		Service:    "regular",
		Frequency:  "onetime",
	})
	assert.Equal(t, 0.1, tiny.SizeMultiplier)
}

func TestCalculateWholeDollarTotals(t *testing.T) {
	inputs := []models.QuoteInput{
		{Bedrooms: 3, Bathrooms: 2, SquareFeet: 1500, Service: "regular", Frequency: "weekly", City: "Miami", State: "FL"},
		{Bedrooms: 4, Bathrooms: 3, SquareFeet: 2200, Service: "deep", Frequency: "biweekly", City: "Los Angeles", State: "CA"},
		{Bedrooms: 1, Bathrooms: 1, SquareFeet: 650, Service: "airbnb", Frequency: "weekly", City: "New York", State: "NY"},
	}
	for _, in := range inputs {
		out := Calculate(in)
		assert.Equal(t, out.Total, float64(int(out.Total)))
	}
}

func TestCalculateMonotonicInArea(t *testing.T) {
	in := models.QuoteInput{
		Bedrooms:  2,
		Bathrooms: 2,
		Service:   "deep",
		Frequency: "biweekly",
		City:      "New York",
		State:     "NY",
	}

	prev := -1.0
	for sqft := 200.0; sqft <= 20000; sqft += 200 {
		in.SquareFeet = sqft
		total := Calculate(in).Total
		assert.GreaterOrEqual(t, total, prev, "sqft: %v", sqft)
		prev = total
	}
}

func TestCalculateDiscountOrdering(t *testing.T) {
	base := models.QuoteInput{
		Bedrooms:   3,
		Bathrooms:  2,
		SquareFeet: 1500,
		Service:    "deep",
		City:       "Houston",
		State:      "TX",
	}

	totals := make(map[string]float64)
	for _, freq := range []string{"weekly", "biweekly", "monthly", "onetime"} {
		in := base
		in.Frequency = freq
		totals[freq] = Calculate(in).Total
	}

	assert.Less(t, totals["weekly"], totals["biweekly"])
	assert.Less(t, totals["biweekly"], totals["monthly"])
	assert.Less(t, totals["monthly"], totals["onetime"])
}

func TestServicesCopyIsIsolated(t *testing.T) {
	first := Services()
	require.Contains(t, first, "regular")

	first["regular"] = 1

	assert.Equal(t, 80.0, Services()["regular"])
}
