package booking

import "math"

// Marketplace fee rates applied when a booking's total price is first
// established. Fees are computed once and never recomputed, even if rates
// change later.
const (
	VendorFeeRate   = 0.10
	CustomerFeeRate = 0.02
)

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Fees returns the vendor and customer fee for a total price.
func Fees(price float64) (vendorFee, customerFee float64) {
	return Round2(price * VendorFeeRate), Round2(price * CustomerFeeRate)
}
