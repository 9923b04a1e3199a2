package utils

import "math"

// FareResult contains the computed charge and its breakdown
type FareResult struct {
	BaseCharge    float64 `json:"baseCharge"`
	Discount      float64 `json:"discount"`
	PayableAmount float64 `json:"payableAmount"`
	PromoApplied  bool    `json:"promoApplied"`
}

const (
	// Charge is distance times the vehicle's daily rate scaled down by this
	// divisor. Inherited pricing formula; treat as given.
	FareRateDivisor = 100.0

	// Flat discount applied whenever a promo code is present. Codes are not
	// validated at this layer.
	PromoDiscountRate = 0.10
)

// CalculateBookingFare computes the payable amount for a booking from the
// trip distance and the vehicle's daily rate.
func CalculateBookingFare(distance, dailyRate float64, promoCode string) FareResult {
	baseCharge := distance * dailyRate / FareRateDivisor

	var discount float64
	if promoCode != "" {
		discount = baseCharge * PromoDiscountRate
	}

	payable := baseCharge - discount

	return FareResult{
		BaseCharge:    math.Round(baseCharge*100) / 100,
		Discount:      math.Round(discount*100) / 100,
		PayableAmount: math.Round(payable*100) / 100,
		PromoApplied:  promoCode != "",
	}
}
