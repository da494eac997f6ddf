package utils

import "math/big"

// MulDiv returns floor(a * b / denominator). The intermediate product
// is kept at full precision.
func MulDiv(a, b, denominator *big.Int) *big.Int {
	product := new(big.Int).Mul(a, b)
	return product.Quo(product, denominator)
}

// MulDivRoundingUp returns ceil(a * b / denominator).
func MulDivRoundingUp(a, b, denominator *big.Int) *big.Int {
	product := new(big.Int).Mul(a, b)
	quotient, remainder := new(big.Int).QuoRem(product, denominator, new(big.Int))
	if remainder.Sign() != 0 {
		quotient.Add(quotient, one)
	}
	return quotient
}

// DivRoundingUp returns ceil(numerator / denominator).
func DivRoundingUp(numerator, denominator *big.Int) *big.Int {
	quotient, remainder := new(big.Int).QuoRem(numerator, denominator, new(big.Int))
	if remainder.Sign() != 0 {
		quotient.Add(quotient, one)
	}
	return quotient
}

var one = big.NewInt(1)
