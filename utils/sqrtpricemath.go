package utils

import (
	"errors"
	"math/big"
)

var (
	ErrSqrtPriceOverflow = errors.New("sqrt price exceeds 160 bits")
	ErrPriceUnderflow    = errors.New("insufficient reserves for amount out")
	ErrNegativeLiquidity = errors.New("liquidity underflow")
)

// GetAmount0Delta returns the amount0 delta between the two sqrt
// prices for the given liquidity, rounding up or down.
func GetAmount0Delta(sqrtRatioAX96, sqrtRatioBX96, liquidity *big.Int, roundUp bool) *big.Int {
	if sqrtRatioAX96.Cmp(sqrtRatioBX96) > 0 {
		sqrtRatioAX96, sqrtRatioBX96 = sqrtRatioBX96, sqrtRatioAX96
	}
	numerator1 := new(big.Int).Lsh(liquidity, 96)
	numerator2 := new(big.Int).Sub(sqrtRatioBX96, sqrtRatioAX96)
	if roundUp {
		return DivRoundingUp(MulDivRoundingUp(numerator1, numerator2, sqrtRatioBX96), sqrtRatioAX96)
	}
	return new(big.Int).Quo(MulDiv(numerator1, numerator2, sqrtRatioBX96), sqrtRatioAX96)
}

// GetAmount1Delta returns the amount1 delta between the two sqrt
// prices for the given liquidity, rounding up or down.
func GetAmount1Delta(sqrtRatioAX96, sqrtRatioBX96, liquidity *big.Int, roundUp bool) *big.Int {
	if sqrtRatioAX96.Cmp(sqrtRatioBX96) > 0 {
		sqrtRatioAX96, sqrtRatioBX96 = sqrtRatioBX96, sqrtRatioAX96
	}
	diff := new(big.Int).Sub(sqrtRatioBX96, sqrtRatioAX96)
	if roundUp {
		return MulDivRoundingUp(liquidity, diff, Q96)
	}
	return MulDiv(liquidity, diff, Q96)
}

// GetNextSqrtPriceFromInput returns the price after swapping the given
// input amount of token0 or token1.
func GetNextSqrtPriceFromInput(sqrtPX96, liquidity, amountIn *big.Int, zeroForOne bool) (*big.Int, error) {
	if sqrtPX96.Sign() <= 0 || liquidity.Sign() <= 0 {
		return nil, errors.New("price and liquidity must be positive")
	}
	if zeroForOne {
		return getNextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amountIn, true)
	}
	return getNextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amountIn, true)
}

// GetNextSqrtPriceFromOutput returns the price after swapping out the
// given output amount of token0 or token1.
func GetNextSqrtPriceFromOutput(sqrtPX96, liquidity, amountOut *big.Int, zeroForOne bool) (*big.Int, error) {
	if sqrtPX96.Sign() <= 0 || liquidity.Sign() <= 0 {
		return nil, errors.New("price and liquidity must be positive")
	}
	if zeroForOne {
		return getNextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amountOut, false)
	}
	return getNextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amountOut, false)
}

func getNextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amount *big.Int, add bool) (*big.Int, error) {
	if amount.Sign() == 0 {
		return new(big.Int).Set(sqrtPX96), nil
	}
	numerator1 := new(big.Int).Lsh(liquidity, 96)
	product := new(big.Int).Mul(amount, sqrtPX96)
	if add {
		denominator := new(big.Int).Add(numerator1, product)
		return MulDivRoundingUp(numerator1, sqrtPX96, denominator), nil
	}
	if numerator1.Cmp(product) <= 0 {
		return nil, ErrPriceUnderflow
	}
	denominator := new(big.Int).Sub(numerator1, product)
	next := MulDivRoundingUp(numerator1, sqrtPX96, denominator)
	if next.Cmp(MaxUint160) > 0 {
		return nil, ErrSqrtPriceOverflow
	}
	return next, nil
}

func getNextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amount *big.Int, add bool) (*big.Int, error) {
	if add {
		quotient := new(big.Int).Quo(new(big.Int).Lsh(amount, 96), liquidity)
		next := quotient.Add(quotient, sqrtPX96)
		if next.Cmp(MaxUint160) > 0 {
			return nil, ErrSqrtPriceOverflow
		}
		return next, nil
	}
	quotient := DivRoundingUp(new(big.Int).Lsh(amount, 96), liquidity)
	if sqrtPX96.Cmp(quotient) <= 0 {
		return nil, ErrPriceUnderflow
	}
	return new(big.Int).Sub(sqrtPX96, quotient), nil
}

// AddDelta applies an int128 liquidity delta to a uint128 liquidity
// value.
func AddDelta(x, y *big.Int) (*big.Int, error) {
	z := new(big.Int).Add(x, y)
	if z.Sign() < 0 {
		return nil, ErrNegativeLiquidity
	}
	return z, nil
}
