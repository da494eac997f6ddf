package entities

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TradeType says which side of a trade is fixed.
type TradeType int

const (
	ExactInput TradeType = iota
	ExactOutput
)

// Swap is one route of a trade and the amounts that move through it.
type Swap struct {
	Route        *Route
	InputAmount  *CurrencyAmount
	OutputAmount *CurrencyAmount
}

// BestTradeOptions bounds the best-trade search.
type BestTradeOptions struct {
	// MaxNumResults is how many trades to return; zero means 3.
	MaxNumResults int
	// MaxHops is the longest route to consider; zero means 3.
	MaxHops int
}

func (o BestTradeOptions) normalize() BestTradeOptions {
	if o.MaxNumResults == 0 {
		o.MaxNumResults = 3
	}
	if o.MaxHops == 0 {
		o.MaxHops = 3
	}
	return o
}

// Trade is an execution of one or more routes, splitting an input
// amount across them. Pools cannot repeat across routes. Computed
// aggregates are cached on first use.
type Trade struct {
	Swaps     []*Swap
	TradeType TradeType

	inputAmount    *CurrencyAmount
	outputAmount   *CurrencyAmount
	executionPrice *Price
	priceImpact    *Percent
}

func newTrade(swaps []*Swap, tradeType TradeType) (*Trade, error) {
	if len(swaps) == 0 {
		return nil, ErrEmptyRoute
	}
	inputCurrency := swaps[0].InputAmount.Currency
	outputCurrency := swaps[0].OutputAmount.Currency
	for _, swap := range swaps {
		if !inputCurrency.Equal(swap.Route.Input) {
			return nil, ErrRouteMismatch
		}
		if !outputCurrency.Equal(swap.Route.Output) {
			return nil, ErrRouteMismatch
		}
	}

	numPools := 0
	seen := make(map[common.Hash]struct{})
	for _, swap := range swaps {
		for _, pool := range swap.Route.Pools {
			numPools++
			seen[pool.ID()] = struct{}{}
		}
	}
	if len(seen) != numPools {
		return nil, ErrDuplicatePools
	}

	return &Trade{Swaps: swaps, TradeType: tradeType}, nil
}

// CreateUncheckedTrade builds a trade from a pre-computed swap result
// without simulating it. Useful when the amounts were quoted
// elsewhere and no tick data is available.
func CreateUncheckedTrade(route *Route, inputAmount, outputAmount *CurrencyAmount, tradeType TradeType) (*Trade, error) {
	return newTrade([]*Swap{{Route: route, InputAmount: inputAmount, OutputAmount: outputAmount}}, tradeType)
}

// CreateUncheckedTradeWithMultipleRoutes builds a multi-route trade
// from pre-computed swap results.
func CreateUncheckedTradeWithMultipleRoutes(swaps []*Swap, tradeType TradeType) (*Trade, error) {
	return newTrade(swaps, tradeType)
}

// ExactIn simulates an exact-input trade through the route.
func ExactIn(ctx context.Context, route *Route, amountIn *CurrencyAmount) (*Trade, error) {
	return FromRoute(ctx, route, amountIn, ExactInput)
}

// ExactOut simulates an exact-output trade through the route.
func ExactOut(ctx context.Context, route *Route, amountOut *CurrencyAmount) (*Trade, error) {
	return FromRoute(ctx, route, amountOut, ExactOutput)
}

// FromRoute simulates swapping through the route's pools in order and
// builds the resulting trade.
func FromRoute(ctx context.Context, route *Route, amount *CurrencyAmount, tradeType TradeType) (*Trade, error) {
	var inputAmount, outputAmount *CurrencyAmount
	var err error

	if tradeType == ExactInput {
		if !amount.Currency.Equal(route.Input) {
			return nil, ErrRouteMismatch
		}
		current := amount
		for _, pool := range route.Pools {
			current, _, err = pool.GetOutputAmount(ctx, current, nil)
			if err != nil {
				return nil, err
			}
		}
		inputAmount = amount
		outputAmount = current
	} else {
		if !amount.Currency.Equal(route.Output) {
			return nil, ErrRouteMismatch
		}
		current := amount
		for i := len(route.Pools) - 1; i >= 0; i-- {
			current, _, err = route.Pools[i].GetInputAmount(ctx, current, nil)
			if err != nil {
				return nil, err
			}
		}
		inputAmount = current
		outputAmount = amount
	}

	return newTrade([]*Swap{{Route: route, InputAmount: inputAmount, OutputAmount: outputAmount}}, tradeType)
}

// RouteAmount pairs a route with the amount to push through it.
type RouteAmount struct {
	Route  *Route
	Amount *CurrencyAmount
}

// FromRoutes simulates a split trade across several routes.
func FromRoutes(ctx context.Context, routes []RouteAmount, tradeType TradeType) (*Trade, error) {
	swaps := make([]*Swap, 0, len(routes))
	for _, ra := range routes {
		trade, err := FromRoute(ctx, ra.Route, ra.Amount, tradeType)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, trade.Swaps[0])
	}
	return newTrade(swaps, tradeType)
}

// Route returns the single route of the trade; it errors if the trade
// splits across multiple routes.
func (t *Trade) Route() (*Route, error) {
	if len(t.Swaps) != 1 {
		return nil, ErrRouteMismatch
	}
	return t.Swaps[0].Route, nil
}

// InputCurrency returns the currency the trade spends.
func (t *Trade) InputCurrency() Currency { return t.Swaps[0].InputAmount.Currency }

// OutputCurrency returns the currency the trade receives.
func (t *Trade) OutputCurrency() Currency { return t.Swaps[0].OutputAmount.Currency }

// InputAmount sums the input across all routes, assuming no slippage.
func (t *Trade) InputAmount() (*CurrencyAmount, error) {
	if t.inputAmount != nil {
		return t.inputAmount, nil
	}
	total := NewFraction(new(big.Int), nil)
	for _, swap := range t.Swaps {
		total = total.Add(&swap.InputAmount.Fraction)
	}
	amount, err := FromFractionalAmount(t.InputCurrency(), total.Numerator, total.Denominator)
	if err != nil {
		return nil, err
	}
	t.inputAmount = amount
	return amount, nil
}

// OutputAmount sums the output across all routes, assuming no
// slippage.
func (t *Trade) OutputAmount() (*CurrencyAmount, error) {
	if t.outputAmount != nil {
		return t.outputAmount, nil
	}
	total := NewFraction(new(big.Int), nil)
	for _, swap := range t.Swaps {
		total = total.Add(&swap.OutputAmount.Fraction)
	}
	amount, err := FromFractionalAmount(t.OutputCurrency(), total.Numerator, total.Denominator)
	if err != nil {
		return nil, err
	}
	t.outputAmount = amount
	return amount, nil
}

// ExecutionPrice returns the trade price as output per input.
func (t *Trade) ExecutionPrice() (*Price, error) {
	if t.executionPrice != nil {
		return t.executionPrice, nil
	}
	inputAmount, err := t.InputAmount()
	if err != nil {
		return nil, err
	}
	outputAmount, err := t.OutputAmount()
	if err != nil {
		return nil, err
	}
	t.executionPrice = PriceFromAmounts(inputAmount, outputAmount)
	return t.executionPrice, nil
}

// PriceImpact returns the percent difference between the routes' mid
// price and the execution price.
func (t *Trade) PriceImpact() (*Percent, error) {
	if t.priceImpact != nil {
		return t.priceImpact, nil
	}
	spotOutputAmount, err := FromRawAmount(t.OutputCurrency(), new(big.Int))
	if err != nil {
		return nil, err
	}
	for _, swap := range t.Swaps {
		midPrice, err := swap.Route.MidPrice()
		if err != nil {
			return nil, err
		}
		quoted, err := midPrice.Quote(swap.InputAmount)
		if err != nil {
			return nil, err
		}
		spotOutputAmount, err = spotOutputAmount.Add(quoted)
		if err != nil {
			return nil, err
		}
	}
	outputAmount, err := t.OutputAmount()
	if err != nil {
		return nil, err
	}
	diff, err := spotOutputAmount.Sub(outputAmount)
	if err != nil {
		return nil, err
	}
	impact := diff.Fraction.Div(&spotOutputAmount.Fraction)
	t.priceImpact = NewPercent(impact.Numerator, impact.Denominator)
	return t.priceImpact, nil
}

// MinimumAmountOut returns the least output the trade can deliver
// within the slippage tolerance. Pass nil amountOut to use the
// trade's own output.
func (t *Trade) MinimumAmountOut(slippageTolerance *Percent, amountOut *CurrencyAmount) (*CurrencyAmount, error) {
	if slippageTolerance.Fraction.Numerator.Sign() < 0 {
		return nil, ErrNegativeSlippage
	}
	var err error
	if amountOut == nil {
		amountOut, err = t.OutputAmount()
		if err != nil {
			return nil, err
		}
	}
	if t.TradeType == ExactOutput {
		return amountOut, nil
	}
	one := NewFractionFromInt(1)
	scale := one.Add(&slippageTolerance.Fraction).Invert()
	return amountOut.MulFraction(scale)
}

// MaximumAmountIn returns the most input the trade can require within
// the slippage tolerance. Pass nil amountIn to use the trade's own
// input.
func (t *Trade) MaximumAmountIn(slippageTolerance *Percent, amountIn *CurrencyAmount) (*CurrencyAmount, error) {
	if slippageTolerance.Fraction.Numerator.Sign() < 0 {
		return nil, ErrNegativeSlippage
	}
	var err error
	if amountIn == nil {
		amountIn, err = t.InputAmount()
		if err != nil {
			return nil, err
		}
	}
	if t.TradeType == ExactInput {
		return amountIn, nil
	}
	one := NewFractionFromInt(1)
	scale := one.Add(&slippageTolerance.Fraction)
	return amountIn.MulFraction(scale)
}

// WorstExecutionPrice returns the execution price after accounting
// for the slippage tolerance.
func (t *Trade) WorstExecutionPrice(slippageTolerance *Percent) (*Price, error) {
	maxIn, err := t.MaximumAmountIn(slippageTolerance, nil)
	if err != nil {
		return nil, err
	}
	minOut, err := t.MinimumAmountOut(slippageTolerance, nil)
	if err != nil {
		return nil, err
	}
	return PriceFromAmounts(maxIn, minOut), nil
}

// tradeComparator ranks trades by output, then input, then total hop
// count. Lower is better.
func tradeComparator(a, b *Trade) (int, error) {
	if !a.InputCurrency().Equal(b.InputCurrency()) || !a.OutputCurrency().Equal(b.OutputCurrency()) {
		return 0, ErrDifferentCurrency
	}
	aInput, err := a.InputAmount()
	if err != nil {
		return 0, err
	}
	bInput, err := b.InputAmount()
	if err != nil {
		return 0, err
	}
	aOutput, err := a.OutputAmount()
	if err != nil {
		return 0, err
	}
	bOutput, err := b.OutputAmount()
	if err != nil {
		return 0, err
	}

	if c := aOutput.Fraction.Cmp(&bOutput.Fraction); c != 0 {
		// more output ranks first
		return -c, nil
	}
	if c := aInput.Fraction.Cmp(&bInput.Fraction); c != 0 {
		// less input ranks first
		return c, nil
	}
	// each hop costs gas
	aHops, bHops := 0, 0
	for _, swap := range a.Swaps {
		aHops += len(swap.Route.Pools) + 1
	}
	for _, swap := range b.Swaps {
		bHops += len(swap.Route.Pools) + 1
	}
	switch {
	case aHops < bHops:
		return -1, nil
	case aHops > bHops:
		return 1, nil
	default:
		return 0, nil
	}
}

// sortedInsert adds the trade keeping the slice sorted and bounded at
// maxSize, dropping the worst entry when full.
func sortedInsert(trades []*Trade, trade *Trade, maxSize int) ([]*Trade, error) {
	lo, hi := 0, len(trades)
	for lo < hi {
		mid := (lo + hi) / 2
		c, err := tradeComparator(trades[mid], trade)
		if err != nil {
			return nil, err
		}
		if c <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	trades = append(trades, nil)
	copy(trades[lo+1:], trades[lo:])
	trades[lo] = trade
	if len(trades) > maxSize {
		trades = trades[:maxSize]
	}
	return trades, nil
}

// BestTradeExactIn searches the given pools for the top trades
// spending exactly amountIn for currencyOut, considering routes of up
// to MaxHops pools. Routes are linear; splitting across routes may
// still beat the result.
func BestTradeExactIn(ctx context.Context, pools []*Pool, amountIn *CurrencyAmount, currencyOut Currency, options BestTradeOptions) ([]*Trade, error) {
	if len(pools) == 0 {
		return nil, ErrEmptyRoute
	}
	options = options.normalize()
	return bestTradeExactIn(ctx, pools, amountIn, currencyOut, options, nil, amountIn, nil)
}

func bestTradeExactIn(ctx context.Context, pools []*Pool, amountIn *CurrencyAmount, currencyOut Currency, options BestTradeOptions, currentPools []*Pool, nextAmountIn *CurrencyAmount, bestTrades []*Trade) ([]*Trade, error) {
	for i, pool := range pools {
		if !pool.InvolvesCurrency(nextAmountIn.Currency) {
			continue
		}
		amountOut, _, err := pool.GetOutputAmount(ctx, nextAmountIn, nil)
		if errors.Is(err, ErrInsufficientLiquidity) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if amountOut.Currency.Equal(currencyOut) {
			routePools := append(append([]*Pool{}, currentPools...), pool)
			route, err := NewRoute(routePools, amountIn.Currency, currencyOut)
			if err != nil {
				return nil, err
			}
			trade, err := FromRoute(ctx, route, amountIn, ExactInput)
			if err != nil {
				return nil, err
			}
			bestTrades, err = sortedInsert(bestTrades, trade, options.MaxNumResults)
			if err != nil {
				return nil, err
			}
		} else if options.MaxHops > 1 && len(pools) > 1 {
			remaining := make([]*Pool, 0, len(pools)-1)
			remaining = append(remaining, pools[:i]...)
			remaining = append(remaining, pools[i+1:]...)
			nextPools := append(append([]*Pool{}, currentPools...), pool)
			nextOptions := BestTradeOptions{MaxNumResults: options.MaxNumResults, MaxHops: options.MaxHops - 1}
			bestTrades, err = bestTradeExactIn(ctx, remaining, amountIn, currencyOut, nextOptions, nextPools, amountOut, bestTrades)
			if err != nil {
				return nil, err
			}
		}
	}
	return bestTrades, nil
}

// BestTradeExactOut searches the given pools for the top trades
// spending currencyIn to receive exactly amountOut, considering
// routes of up to MaxHops pools.
func BestTradeExactOut(ctx context.Context, pools []*Pool, currencyIn Currency, amountOut *CurrencyAmount, options BestTradeOptions) ([]*Trade, error) {
	if len(pools) == 0 {
		return nil, ErrEmptyRoute
	}
	options = options.normalize()
	return bestTradeExactOut(ctx, pools, currencyIn, amountOut, options, nil, amountOut, nil)
}

func bestTradeExactOut(ctx context.Context, pools []*Pool, currencyIn Currency, amountOut *CurrencyAmount, options BestTradeOptions, currentPools []*Pool, nextAmountOut *CurrencyAmount, bestTrades []*Trade) ([]*Trade, error) {
	for i, pool := range pools {
		if !pool.InvolvesCurrency(nextAmountOut.Currency) {
			continue
		}
		amountIn, _, err := pool.GetInputAmount(ctx, nextAmountOut, nil)
		if errors.Is(err, ErrInsufficientLiquidity) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if amountIn.Currency.Equal(currencyIn) {
			routePools := append([]*Pool{pool}, currentPools...)
			route, err := NewRoute(routePools, currencyIn, amountOut.Currency)
			if err != nil {
				return nil, err
			}
			trade, err := FromRoute(ctx, route, amountOut, ExactOutput)
			if err != nil {
				return nil, err
			}
			bestTrades, err = sortedInsert(bestTrades, trade, options.MaxNumResults)
			if err != nil {
				return nil, err
			}
		} else if options.MaxHops > 1 && len(pools) > 1 {
			remaining := make([]*Pool, 0, len(pools)-1)
			remaining = append(remaining, pools[:i]...)
			remaining = append(remaining, pools[i+1:]...)
			nextPools := append([]*Pool{pool}, currentPools...)
			nextOptions := BestTradeOptions{MaxNumResults: options.MaxNumResults, MaxHops: options.MaxHops - 1}
			bestTrades, err = bestTradeExactOut(ctx, remaining, currencyIn, amountOut, nextOptions, nextPools, amountIn, bestTrades)
			if err != nil {
				return nil, err
			}
		}
	}
	return bestTrades, nil
}
