package entities

import (
	"math/big"

	"v4sdk/utils"
)

// TickToPrice returns the price of baseCurrency in terms of
// quoteCurrency at the given tick.
func TickToPrice(baseCurrency, quoteCurrency Currency, tick int) (*Price, error) {
	sqrtRatioX96, err := utils.GetSqrtRatioAtTick(tick)
	if err != nil {
		return nil, err
	}
	ratioX192 := new(big.Int).Mul(sqrtRatioX96, sqrtRatioX96)

	sorted, err := SortsBefore(baseCurrency, quoteCurrency)
	if err != nil {
		return nil, err
	}
	if sorted {
		return NewPrice(baseCurrency, quoteCurrency, utils.Q192, ratioX192), nil
	}
	return NewPrice(baseCurrency, quoteCurrency, ratioX192, utils.Q192), nil
}

// PriceToClosestTick returns the first tick whose price is greater
// than or equal to the given price.
func PriceToClosestTick(price *Price) (int, error) {
	sorted, err := SortsBefore(price.BaseCurrency, price.QuoteCurrency)
	if err != nil {
		return 0, err
	}

	var sqrtRatioX96 *big.Int
	if sorted {
		sqrtRatioX96 = utils.EncodeSqrtRatioX96(price.Numerator, price.Denominator)
	} else {
		sqrtRatioX96 = utils.EncodeSqrtRatioX96(price.Denominator, price.Numerator)
	}
	tick, err := utils.GetTickAtSqrtRatio(sqrtRatioX96)
	if err != nil {
		return 0, err
	}

	nextTickPrice, err := TickToPrice(price.BaseCurrency, price.QuoteCurrency, tick+1)
	if err != nil {
		return 0, err
	}
	if sorted {
		if price.Fraction.Cmp(&nextTickPrice.Fraction) >= 0 {
			tick++
		}
	} else {
		if price.Fraction.Cmp(&nextTickPrice.Fraction) <= 0 {
			tick++
		}
	}
	return tick, nil
}
