package models

// QuoteInput describes one job to be priced. City and State are free text;
// unknown localities fall back to a neutral multiplier.
type QuoteInput struct {
	Bedrooms   int     `json:"bedrooms" binding:"required,gt=0"`
	Bathrooms  int     `json:"bathrooms" binding:"required,gt=0"`
	SquareFeet float64 `json:"squareFeet" binding:"required,gt=0"`
	Service    string  `json:"service"`
	Frequency  string  `json:"frequency"`
	City       string  `json:"city"`
	State      string  `json:"state"`
}

// QuoteBreakdown is the computed price with every factor that produced it.
// It is never persisted on its own; callers embed Total into records.
type QuoteBreakdown struct {
	BaseRate           float64 `json:"baseRate"`
	LocalityMultiplier float64 `json:"localityMultiplier"`
	SizeMultiplier     float64 `json:"sizeMultiplier"`
	FrequencyDiscount  float64 `json:"frequencyDiscount"`
	Subtotal           float64 `json:"subtotal"`
	Total              float64 `json:"total"`
}
