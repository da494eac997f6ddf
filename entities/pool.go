package entities

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"v4sdk/abi"
	"v4sdk/utils"
)

// Pool is an immutable snapshot of a v4 pool's state. Swap
// simulations return new amounts and a post-swap pool; the receiver
// is never mutated.
type Pool struct {
	Currency0    Currency
	Currency1    Currency
	Fee          uint32
	TickSpacing  int
	Hooks        common.Address
	SqrtRatioX96 *big.Int
	Liquidity    *big.Int
	TickCurrent  int
	TickData     TickDataProvider

	poolKey abi.PoolKey
	poolID  common.Hash
}

// NewPool validates the pool parameters and computes the pool key and
// ID. Currencies may be passed in either order.
func NewPool(currencyA, currencyB Currency, fee uint32, tickSpacing int, hooks common.Address, sqrtRatioX96, liquidity *big.Int, tickCurrent int, tickData TickDataProvider) (*Pool, error) {
	if fee == utils.DynamicFeeFlag {
		if hooks == (common.Address{}) {
			return nil, ErrInvalidDynamicFee
		}
	} else if int64(fee) > utils.MaxFee.Int64() {
		return nil, ErrInvalidFee
	}

	sorted, err := SortsBefore(currencyA, currencyB)
	if err != nil {
		return nil, err
	}
	currency0, currency1 := currencyA, currencyB
	if !sorted {
		currency0, currency1 = currencyB, currencyA
	}

	tickAtPrice, err := utils.GetTickAtSqrtRatio(sqrtRatioX96)
	if err != nil {
		return nil, err
	}
	nextRatio, err := utils.GetSqrtRatioAtTick(tickCurrent + 1)
	if err != nil {
		return nil, err
	}
	currentRatio, err := utils.GetSqrtRatioAtTick(tickCurrent)
	if err != nil {
		return nil, err
	}
	// the supplied price must lie inside the supplied tick
	if !(tickCurrent == tickAtPrice ||
		(sqrtRatioX96.Cmp(currentRatio) >= 0 && sqrtRatioX96.Cmp(nextRatio) < 0)) {
		return nil, ErrPriceTickMismatch
	}

	if tickData == nil {
		tickData = noTickData{}
	}

	key := abi.NewPoolKey(currencyAddress(currency0), currencyAddress(currency1), fee, tickSpacing, hooks)
	id, err := key.ID()
	if err != nil {
		return nil, err
	}

	return &Pool{
		Currency0:    currency0,
		Currency1:    currency1,
		Fee:          fee,
		TickSpacing:  tickSpacing,
		Hooks:        hooks,
		SqrtRatioX96: sqrtRatioX96,
		Liquidity:    liquidity,
		TickCurrent:  tickCurrent,
		TickData:     tickData,
		poolKey:      key,
		poolID:       id,
	}, nil
}

// currencyAddress maps a currency to its pool key address; the native
// currency is the zero address.
func currencyAddress(c Currency) common.Address {
	if c.IsNative() {
		return common.Address{}
	}
	return c.Address()
}

// PoolID computes the pool ID for the given parameters without
// constructing a pool.
func PoolID(currencyA, currencyB Currency, fee uint32, tickSpacing int, hooks common.Address) (common.Hash, error) {
	sorted, err := SortsBefore(currencyA, currencyB)
	if err != nil {
		return common.Hash{}, err
	}
	currency0, currency1 := currencyA, currencyB
	if !sorted {
		currency0, currency1 = currencyB, currencyA
	}
	return abi.NewPoolKey(currencyAddress(currency0), currencyAddress(currency1), fee, tickSpacing, hooks).ID()
}

// Key returns the pool key.
func (p *Pool) Key() abi.PoolKey { return p.poolKey }

// ID returns the pool ID.
func (p *Pool) ID() common.Hash { return p.poolID }

// InvolvesCurrency reports whether the currency is one of the pool's
// pair.
func (p *Pool) InvolvesCurrency(currency Currency) bool {
	return p.Currency0.Equal(currency) || p.Currency1.Equal(currency)
}

// Currency0Price returns the price of currency0 in terms of
// currency1.
func (p *Pool) Currency0Price() *Price {
	ratioSquared := new(big.Int).Mul(p.SqrtRatioX96, p.SqrtRatioX96)
	return NewPrice(p.Currency0, p.Currency1, utils.Q192, ratioSquared)
}

// Currency1Price returns the price of currency1 in terms of
// currency0.
func (p *Pool) Currency1Price() *Price {
	ratioSquared := new(big.Int).Mul(p.SqrtRatioX96, p.SqrtRatioX96)
	return NewPrice(p.Currency1, p.Currency0, ratioSquared, utils.Q192)
}

// PriceOf returns the price of the given currency in terms of the
// other currency of the pool.
func (p *Pool) PriceOf(currency Currency) (*Price, error) {
	if currency.Equal(p.Currency0) {
		return p.Currency0Price(), nil
	}
	if currency.Equal(p.Currency1) {
		return p.Currency1Price(), nil
	}
	return nil, ErrCurrencyNotInvolved
}

// ChainID returns the chain the pool's currencies live on.
func (p *Pool) ChainID() uint64 { return p.Currency0.ChainID() }

// hookImpactsSwap reports whether the hook participates in swap
// execution, which makes offchain simulation unsound.
func (p *Pool) hookImpactsSwap() bool {
	return utils.HasSwapPermissions(p.Hooks)
}

// GetOutputAmount simulates an exact-input swap and returns the
// output amount together with the pool state after the swap.
func (p *Pool) GetOutputAmount(ctx context.Context, inputAmount *CurrencyAmount, sqrtPriceLimitX96 *big.Int) (*CurrencyAmount, *Pool, error) {
	if p.hookImpactsSwap() {
		return nil, nil, ErrUnsupportedHook
	}
	if !p.InvolvesCurrency(inputAmount.Currency) {
		return nil, nil, ErrCurrencyNotInvolved
	}

	zeroForOne := inputAmount.Currency.Equal(p.Currency0)
	amountSpecified := inputAmount.Quotient()

	result, err := p.swap(ctx, zeroForOne, amountSpecified, sqrtPriceLimitX96)
	if err != nil {
		return nil, nil, err
	}

	outputCurrency := p.Currency1
	if !zeroForOne {
		outputCurrency = p.Currency0
	}
	outputAmount, err := FromRawAmount(outputCurrency, new(big.Int).Neg(result.amountCalculated))
	if err != nil {
		return nil, nil, err
	}
	next, err := NewPool(p.Currency0, p.Currency1, p.Fee, p.TickSpacing, p.Hooks, result.sqrtRatioX96, result.liquidity, result.tickCurrent, p.TickData)
	if err != nil {
		return nil, nil, err
	}
	return outputAmount, next, nil
}

// GetInputAmount simulates an exact-output swap and returns the input
// amount together with the pool state after the swap.
func (p *Pool) GetInputAmount(ctx context.Context, outputAmount *CurrencyAmount, sqrtPriceLimitX96 *big.Int) (*CurrencyAmount, *Pool, error) {
	if p.hookImpactsSwap() {
		return nil, nil, ErrUnsupportedHook
	}
	if !p.InvolvesCurrency(outputAmount.Currency) {
		return nil, nil, ErrCurrencyNotInvolved
	}

	zeroForOne := outputAmount.Currency.Equal(p.Currency1)
	amountSpecified := new(big.Int).Neg(outputAmount.Quotient())

	result, err := p.swap(ctx, zeroForOne, amountSpecified, sqrtPriceLimitX96)
	if err != nil {
		return nil, nil, err
	}

	inputCurrency := p.Currency0
	if !zeroForOne {
		inputCurrency = p.Currency1
	}
	inputAmount, err := FromRawAmount(inputCurrency, result.amountCalculated)
	if err != nil {
		return nil, nil, err
	}
	next, err := NewPool(p.Currency0, p.Currency1, p.Fee, p.TickSpacing, p.Hooks, result.sqrtRatioX96, result.liquidity, result.tickCurrent, p.TickData)
	if err != nil {
		return nil, nil, err
	}
	return inputAmount, next, nil
}

type swapResult struct {
	amountCalculated *big.Int
	sqrtRatioX96     *big.Int
	liquidity        *big.Int
	tickCurrent      int
}

type swapState struct {
	amountSpecifiedRemaining *big.Int
	amountCalculated         *big.Int
	sqrtPriceX96             *big.Int
	tick                     int
	liquidity                *big.Int
}

type stepState struct {
	sqrtPriceStartX96 *big.Int
	tickNext          int
	initialized       bool
	sqrtPriceNextX96  *big.Int
}

// swap walks the tick list crossing initialized ticks until the
// specified amount is exhausted or the price limit is reached.
func (p *Pool) swap(ctx context.Context, zeroForOne bool, amountSpecified, sqrtPriceLimitX96 *big.Int) (*swapResult, error) {
	if sqrtPriceLimitX96 == nil {
		if zeroForOne {
			sqrtPriceLimitX96 = new(big.Int).Add(utils.MinSqrtRatio, big.NewInt(1))
		} else {
			sqrtPriceLimitX96 = new(big.Int).Sub(utils.MaxSqrtRatio, big.NewInt(1))
		}
	}
	if zeroForOne {
		if sqrtPriceLimitX96.Cmp(utils.MinSqrtRatio) <= 0 || sqrtPriceLimitX96.Cmp(p.SqrtRatioX96) >= 0 {
			return nil, ErrInvalidSqrtPriceLimit
		}
	} else {
		if sqrtPriceLimitX96.Cmp(utils.MaxSqrtRatio) >= 0 || sqrtPriceLimitX96.Cmp(p.SqrtRatioX96) <= 0 {
			return nil, ErrInvalidSqrtPriceLimit
		}
	}

	exactInput := amountSpecified.Sign() >= 0

	state := swapState{
		amountSpecifiedRemaining: new(big.Int).Set(amountSpecified),
		amountCalculated:         new(big.Int),
		sqrtPriceX96:             new(big.Int).Set(p.SqrtRatioX96),
		tick:                     p.TickCurrent,
		liquidity:                new(big.Int).Set(p.Liquidity),
	}

	for state.amountSpecifiedRemaining.Sign() != 0 && state.sqrtPriceX96.Cmp(sqrtPriceLimitX96) != 0 {
		var step stepState
		step.sqrtPriceStartX96 = new(big.Int).Set(state.sqrtPriceX96)

		tickNext, initialized, err := p.TickData.NextInitializedTickWithinOneWord(ctx, state.tick, zeroForOne, p.TickSpacing)
		if err != nil {
			return nil, err
		}
		step.tickNext, step.initialized = tickNext, initialized

		if step.tickNext < utils.MinTick {
			step.tickNext = utils.MinTick
		} else if step.tickNext > utils.MaxTick {
			step.tickNext = utils.MaxTick
		}
		step.sqrtPriceNextX96, err = utils.GetSqrtRatioAtTick(step.tickNext)
		if err != nil {
			return nil, err
		}

		target := step.sqrtPriceNextX96
		if zeroForOne {
			if step.sqrtPriceNextX96.Cmp(sqrtPriceLimitX96) < 0 {
				target = sqrtPriceLimitX96
			}
		} else {
			if step.sqrtPriceNextX96.Cmp(sqrtPriceLimitX96) > 0 {
				target = sqrtPriceLimitX96
			}
		}

		swapStep, err := utils.ComputeSwapStep(state.sqrtPriceX96, target, state.liquidity, state.amountSpecifiedRemaining, int64(p.Fee))
		if err != nil {
			return nil, err
		}
		state.sqrtPriceX96 = swapStep.SqrtRatioNextX96

		if exactInput {
			state.amountSpecifiedRemaining = new(big.Int).Sub(
				state.amountSpecifiedRemaining,
				new(big.Int).Add(swapStep.AmountIn, swapStep.FeeAmount),
			)
			state.amountCalculated = new(big.Int).Sub(state.amountCalculated, swapStep.AmountOut)
		} else {
			state.amountSpecifiedRemaining = new(big.Int).Add(state.amountSpecifiedRemaining, swapStep.AmountOut)
			state.amountCalculated = new(big.Int).Add(
				state.amountCalculated,
				new(big.Int).Add(swapStep.AmountIn, swapStep.FeeAmount),
			)
		}

		if state.sqrtPriceX96.Cmp(step.sqrtPriceNextX96) == 0 {
			if step.initialized {
				tick, err := p.TickData.GetTick(ctx, step.tickNext)
				if err != nil {
					return nil, err
				}
				liquidityNet := tick.LiquidityNet
				// crossing left to right adds net liquidity; right to
				// left subtracts it
				if zeroForOne {
					liquidityNet = new(big.Int).Neg(liquidityNet)
				}
				state.liquidity, err = utils.AddDelta(state.liquidity, liquidityNet)
				if err != nil {
					return nil, err
				}
			}
			if zeroForOne {
				state.tick = step.tickNext - 1
			} else {
				state.tick = step.tickNext
			}
		} else if state.sqrtPriceX96.Cmp(step.sqrtPriceStartX96) != 0 {
			state.tick, err = utils.GetTickAtSqrtRatio(state.sqrtPriceX96)
			if err != nil {
				return nil, err
			}
		}
	}

	if state.amountSpecifiedRemaining.Sign() != 0 {
		return nil, ErrInsufficientLiquidity
	}

	return &swapResult{
		amountCalculated: state.amountCalculated,
		sqrtRatioX96:     state.sqrtPriceX96,
		liquidity:        state.liquidity,
		tickCurrent:      state.tick,
	}, nil
}

// noTickData rejects every tick lookup. Pools built without a tick
// data provider can price and plan but not simulate swaps.
type noTickData struct{}

func (noTickData) GetTick(context.Context, int) (Tick, error) {
	return Tick{}, ErrNoTicks
}

func (noTickData) NextInitializedTickWithinOneWord(context.Context, int, bool, int) (int, bool, error) {
	return 0, false, ErrNoTicks
}
