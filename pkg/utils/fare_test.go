package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBookingFare(t *testing.T) {
	tests := []struct {
		name         string
		distance     float64
		dailyRate    float64
		promoCode    string
		wantPayable  float64
		wantDiscount float64
		wantPromo    bool
	}{
		{
			name:        "no promo",
			distance:    100,
			dailyRate:   50,
			wantPayable: 50,
		},
		{
			name:         "promo code gives flat 10 percent off",
			distance:     100,
			dailyRate:    50,
			promoCode:    "SAVE10",
			wantPayable:  45,
			wantDiscount: 5,
			wantPromo:    true,
		},
		{
			name:         "any non-empty code counts as promo",
			distance:     100,
			dailyRate:    50,
			promoCode:    "not-a-real-code",
			wantPayable:  45,
			wantDiscount: 5,
			wantPromo:    true,
		},
		{
			name:        "zero distance",
			distance:    0,
			dailyRate:   50,
			wantPayable: 0,
		},
		{
			name:        "fractional result rounds to cents",
			distance:    33,
			dailyRate:   10,
			promoCode:   "X",
			wantPayable: 2.97,
			wantPromo:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBookingFare(tt.distance, tt.dailyRate, tt.promoCode)

			assert.Equal(t, tt.wantPayable, got.PayableAmount)
			assert.Equal(t, tt.wantPromo, got.PromoApplied)
			if tt.wantDiscount != 0 {
				assert.Equal(t, tt.wantDiscount, got.Discount)
			}
		})
	}
}
