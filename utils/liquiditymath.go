package utils

import "math/big"

func maxLiquidityForAmount0Imprecise(sqrtRatioAX96, sqrtRatioBX96, amount0 *big.Int) *big.Int {
	if sqrtRatioAX96.Cmp(sqrtRatioBX96) > 0 {
		sqrtRatioAX96, sqrtRatioBX96 = sqrtRatioBX96, sqrtRatioAX96
	}
	intermediate := MulDiv(sqrtRatioAX96, sqrtRatioBX96, Q96)
	return MulDiv(amount0, intermediate, new(big.Int).Sub(sqrtRatioBX96, sqrtRatioAX96))
}

func maxLiquidityForAmount0Precise(sqrtRatioAX96, sqrtRatioBX96, amount0 *big.Int) *big.Int {
	if sqrtRatioAX96.Cmp(sqrtRatioBX96) > 0 {
		sqrtRatioAX96, sqrtRatioBX96 = sqrtRatioBX96, sqrtRatioAX96
	}
	numerator := new(big.Int).Mul(new(big.Int).Mul(amount0, sqrtRatioAX96), sqrtRatioBX96)
	denominator := new(big.Int).Mul(Q96, new(big.Int).Sub(sqrtRatioBX96, sqrtRatioAX96))
	return numerator.Quo(numerator, denominator)
}

func maxLiquidityForAmount1(sqrtRatioAX96, sqrtRatioBX96, amount1 *big.Int) *big.Int {
	if sqrtRatioAX96.Cmp(sqrtRatioBX96) > 0 {
		sqrtRatioAX96, sqrtRatioBX96 = sqrtRatioBX96, sqrtRatioAX96
	}
	return MulDiv(amount1, Q96, new(big.Int).Sub(sqrtRatioBX96, sqrtRatioAX96))
}

// MaxLiquidityForAmounts computes the maximum liquidity received for
// the given token amounts over a price range at the current price.
// useFullPrecision selects the exact amount0 formula; the imprecise
// one matches the core contract's rounding.
func MaxLiquidityForAmounts(sqrtRatioCurrentX96, sqrtRatioAX96, sqrtRatioBX96, amount0, amount1 *big.Int, useFullPrecision bool) *big.Int {
	if sqrtRatioAX96.Cmp(sqrtRatioBX96) > 0 {
		sqrtRatioAX96, sqrtRatioBX96 = sqrtRatioBX96, sqrtRatioAX96
	}
	liquidityFor0 := maxLiquidityForAmount0Imprecise
	if useFullPrecision {
		liquidityFor0 = maxLiquidityForAmount0Precise
	}

	if sqrtRatioCurrentX96.Cmp(sqrtRatioAX96) <= 0 {
		return liquidityFor0(sqrtRatioAX96, sqrtRatioBX96, amount0)
	}
	if sqrtRatioCurrentX96.Cmp(sqrtRatioBX96) < 0 {
		liquidity0 := liquidityFor0(sqrtRatioCurrentX96, sqrtRatioBX96, amount0)
		liquidity1 := maxLiquidityForAmount1(sqrtRatioAX96, sqrtRatioCurrentX96, amount1)
		if liquidity0.Cmp(liquidity1) < 0 {
			return liquidity0
		}
		return liquidity1
	}
	return maxLiquidityForAmount1(sqrtRatioAX96, sqrtRatioBX96, amount1)
}
