package utils

import "math/big"

// EncodeSqrtRatioX96 returns the sqrt price as a Q64.96 for a price
// given as amount1/amount0.
func EncodeSqrtRatioX96(amount1, amount0 *big.Int) *big.Int {
	numerator := new(big.Int).Lsh(amount1, 192)
	ratioX192 := numerator.Quo(numerator, amount0)
	return ratioX192.Sqrt(ratioX192)
}
