package entities

import (
	"math/big"

	"v4sdk/utils"
)

// Position is a liquidity range on a pool.
type Position struct {
	Pool      *Pool
	TickLower int
	TickUpper int
	Liquidity *big.Int

	token0Amount *CurrencyAmount
	token1Amount *CurrencyAmount
	mintAmounts  *MintAmounts
}

// MintAmounts is a pair of raw currency amounts.
type MintAmounts struct {
	Amount0 *big.Int
	Amount1 *big.Int
}

// NewPosition validates the tick range against the pool's spacing.
func NewPosition(pool *Pool, liquidity *big.Int, tickLower, tickUpper int) (*Position, error) {
	if tickLower >= tickUpper {
		return nil, ErrInvalidTickRange
	}
	if tickLower < utils.MinTick || tickLower%pool.TickSpacing != 0 {
		return nil, ErrInvalidTickRange
	}
	if tickUpper > utils.MaxTick || tickUpper%pool.TickSpacing != 0 {
		return nil, ErrInvalidTickRange
	}
	return &Position{
		Pool:      pool,
		TickLower: tickLower,
		TickUpper: tickUpper,
		Liquidity: liquidity,
	}, nil
}

// PriceLower returns the price of currency0 at the lower tick.
func (p *Position) PriceLower() (*Price, error) {
	return TickToPrice(p.Pool.Currency0, p.Pool.Currency1, p.TickLower)
}

// PriceUpper returns the price of currency0 at the upper tick.
func (p *Position) PriceUpper() (*Price, error) {
	return TickToPrice(p.Pool.Currency0, p.Pool.Currency1, p.TickUpper)
}

// Amount0 returns the amount of currency0 the position's liquidity
// represents at the current pool price.
func (p *Position) Amount0() (*CurrencyAmount, error) {
	if p.token0Amount != nil {
		return p.token0Amount, nil
	}
	sqrtLower, err := utils.GetSqrtRatioAtTick(p.TickLower)
	if err != nil {
		return nil, err
	}
	sqrtUpper, err := utils.GetSqrtRatioAtTick(p.TickUpper)
	if err != nil {
		return nil, err
	}
	var raw *big.Int
	switch {
	case p.Pool.TickCurrent < p.TickLower:
		raw = utils.GetAmount0Delta(sqrtLower, sqrtUpper, p.Liquidity, false)
	case p.Pool.TickCurrent < p.TickUpper:
		raw = utils.GetAmount0Delta(p.Pool.SqrtRatioX96, sqrtUpper, p.Liquidity, false)
	default:
		raw = new(big.Int)
	}
	p.token0Amount, err = FromRawAmount(p.Pool.Currency0, raw)
	return p.token0Amount, err
}

// Amount1 returns the amount of currency1 the position's liquidity
// represents at the current pool price.
func (p *Position) Amount1() (*CurrencyAmount, error) {
	if p.token1Amount != nil {
		return p.token1Amount, nil
	}
	sqrtLower, err := utils.GetSqrtRatioAtTick(p.TickLower)
	if err != nil {
		return nil, err
	}
	sqrtUpper, err := utils.GetSqrtRatioAtTick(p.TickUpper)
	if err != nil {
		return nil, err
	}
	var raw *big.Int
	switch {
	case p.Pool.TickCurrent < p.TickLower:
		raw = new(big.Int)
	case p.Pool.TickCurrent < p.TickUpper:
		raw = utils.GetAmount1Delta(sqrtLower, p.Pool.SqrtRatioX96, p.Liquidity, false)
	default:
		raw = utils.GetAmount1Delta(sqrtLower, sqrtUpper, p.Liquidity, false)
	}
	p.token1Amount, err = FromRawAmount(p.Pool.Currency1, raw)
	return p.token1Amount, err
}

// MintAmounts returns the amounts that must be deposited to mint the
// position's liquidity, rounding up.
func (p *Position) MintAmounts() (MintAmounts, error) {
	if p.mintAmounts != nil {
		return *p.mintAmounts, nil
	}
	amounts, err := p.amountsAtPrice(p.Pool.SqrtRatioX96, p.Pool.TickCurrent, true)
	if err != nil {
		return MintAmounts{}, err
	}
	p.mintAmounts = &amounts
	return amounts, nil
}

// amountsAtPrice computes the amount pair at an arbitrary pool price.
func (p *Position) amountsAtPrice(sqrtRatioX96 *big.Int, tickCurrent int, roundUp bool) (MintAmounts, error) {
	sqrtLower, err := utils.GetSqrtRatioAtTick(p.TickLower)
	if err != nil {
		return MintAmounts{}, err
	}
	sqrtUpper, err := utils.GetSqrtRatioAtTick(p.TickUpper)
	if err != nil {
		return MintAmounts{}, err
	}

	amount0, amount1 := new(big.Int), new(big.Int)
	switch {
	case tickCurrent < p.TickLower:
		amount0 = utils.GetAmount0Delta(sqrtLower, sqrtUpper, p.Liquidity, roundUp)
	case tickCurrent < p.TickUpper:
		amount0 = utils.GetAmount0Delta(sqrtRatioX96, sqrtUpper, p.Liquidity, roundUp)
		amount1 = utils.GetAmount1Delta(sqrtLower, sqrtRatioX96, p.Liquidity, roundUp)
	default:
		amount1 = utils.GetAmount1Delta(sqrtLower, sqrtUpper, p.Liquidity, roundUp)
	}
	return MintAmounts{Amount0: amount0, Amount1: amount1}, nil
}

// ratiosAfterSlippage returns the sqrt price bounds the pool can move
// to within the slippage tolerance.
func (p *Position) ratiosAfterSlippage(slippageTolerance *Percent) (*big.Int, *big.Int, error) {
	if slippageTolerance == nil {
		return nil, nil, ErrNoSlippageTolerance
	}
	if slippageTolerance.Fraction.Numerator.Sign() < 0 {
		return nil, nil, ErrNegativeSlippage
	}
	price := p.Pool.Currency0Price().Fraction

	one := NewFractionFromInt(1)
	lowerFraction := price.Mul(one.Sub(&slippageTolerance.Fraction))
	upperFraction := price.Mul(one.Add(&slippageTolerance.Fraction))

	sqrtLower := utils.EncodeSqrtRatioX96(lowerFraction.Numerator, lowerFraction.Denominator)
	if sqrtLower.Cmp(utils.MinSqrtRatio) <= 0 {
		sqrtLower = new(big.Int).Add(utils.MinSqrtRatio, big.NewInt(1))
	}
	sqrtUpper := utils.EncodeSqrtRatioX96(upperFraction.Numerator, upperFraction.Denominator)
	if sqrtUpper.Cmp(utils.MaxSqrtRatio) >= 0 {
		sqrtUpper = new(big.Int).Sub(utils.MaxSqrtRatio, big.NewInt(1))
	}
	return sqrtLower, sqrtUpper, nil
}

// MintAmountsWithSlippage returns the maximum amounts that could be
// required to mint the position's liquidity if the pool price moves
// within the slippage tolerance before execution.
func (p *Position) MintAmountsWithSlippage(slippageTolerance *Percent) (MintAmounts, error) {
	sqrtLower, sqrtUpper, err := p.ratiosAfterSlippage(slippageTolerance)
	if err != nil {
		return MintAmounts{}, err
	}
	tickLower, err := utils.GetTickAtSqrtRatio(sqrtLower)
	if err != nil {
		return MintAmounts{}, err
	}
	tickUpper, err := utils.GetTickAtSqrtRatio(sqrtUpper)
	if err != nil {
		return MintAmounts{}, err
	}

	// the worst-case amount0 occurs at the upper price bound,
	// amount1 at the lower
	amountsUpper, err := p.amountsAtPrice(sqrtUpper, tickUpper, true)
	if err != nil {
		return MintAmounts{}, err
	}
	amountsLower, err := p.amountsAtPrice(sqrtLower, tickLower, true)
	if err != nil {
		return MintAmounts{}, err
	}
	return MintAmounts{Amount0: amountsUpper.Amount0, Amount1: amountsLower.Amount1}, nil
}

// BurnAmountsWithSlippage returns the minimum amounts guaranteed when
// burning the position's liquidity if the pool price moves within the
// slippage tolerance before execution.
func (p *Position) BurnAmountsWithSlippage(slippageTolerance *Percent) (MintAmounts, error) {
	sqrtLower, sqrtUpper, err := p.ratiosAfterSlippage(slippageTolerance)
	if err != nil {
		return MintAmounts{}, err
	}
	tickLower, err := utils.GetTickAtSqrtRatio(sqrtLower)
	if err != nil {
		return MintAmounts{}, err
	}
	tickUpper, err := utils.GetTickAtSqrtRatio(sqrtUpper)
	if err != nil {
		return MintAmounts{}, err
	}

	amountsUpper, err := p.amountsAtPrice(sqrtUpper, tickUpper, false)
	if err != nil {
		return MintAmounts{}, err
	}
	amountsLower, err := p.amountsAtPrice(sqrtLower, tickLower, false)
	if err != nil {
		return MintAmounts{}, err
	}
	return MintAmounts{Amount0: amountsUpper.Amount0, Amount1: amountsLower.Amount1}, nil
}

// FromAmounts computes the maximum liquidity position for the given
// amounts. Set useFullPrecision false to match the onchain imprecise
// liquidity formula.
func FromAmounts(pool *Pool, tickLower, tickUpper int, amount0, amount1 *big.Int, useFullPrecision bool) (*Position, error) {
	sqrtLower, err := utils.GetSqrtRatioAtTick(tickLower)
	if err != nil {
		return nil, err
	}
	sqrtUpper, err := utils.GetSqrtRatioAtTick(tickUpper)
	if err != nil {
		return nil, err
	}
	liquidity := utils.MaxLiquidityForAmounts(pool.SqrtRatioX96, sqrtLower, sqrtUpper, amount0, amount1, useFullPrecision)
	return NewPosition(pool, liquidity, tickLower, tickUpper)
}

// FromAmount0 computes the maximum liquidity position funded by
// amount0 alone.
func FromAmount0(pool *Pool, tickLower, tickUpper int, amount0 *big.Int, useFullPrecision bool) (*Position, error) {
	return FromAmounts(pool, tickLower, tickUpper, amount0, utils.MaxUint256, useFullPrecision)
}

// FromAmount1 computes the maximum liquidity position funded by
// amount1 alone. Always uses full precision, as the imprecise formula
// only affects amount0.
func FromAmount1(pool *Pool, tickLower, tickUpper int, amount1 *big.Int) (*Position, error) {
	return FromAmounts(pool, tickLower, tickUpper, utils.MaxUint256, amount1, true)
}
