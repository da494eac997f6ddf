package planner

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"v4sdk/abi"
	"v4sdk/entities"
)

var (
	ErrMultipleSwaps    = errors.New("plan accepts a single-route trade")
	ErrSlippageRequired = errors.New("exact-output trade requires a slippage tolerance")
	ErrTruncatedPlan    = errors.New("plan data truncated")
)

// OpenDelta tells settle and take actions to use the pool manager's
// currently open currency delta instead of a fixed amount.
var OpenDelta = new(big.Int)

// V4Planner accumulates actions and their encoded parameters.
type V4Planner struct {
	Actions []byte
	Params  [][]byte
}

// NewV4Planner returns an empty plan.
func NewV4Planner() *V4Planner {
	return &V4Planner{}
}

// AddAction encodes the parameter values and appends the action to
// the plan.
func (p *V4Planner) AddAction(action abi.Action, values ...interface{}) error {
	encoded, err := abi.EncodeAction(action, values...)
	if err != nil {
		return err
	}
	p.Actions = append(p.Actions, byte(action))
	p.Params = append(p.Params, encoded)
	return nil
}

// AddTrade appends the swap action for a single-route trade. The
// slippage tolerance bounds the unfixed side; it is required for
// exact-output trades and optional (unbounded when nil) for
// exact-input trades.
func (p *V4Planner) AddTrade(trade *entities.Trade, slippageTolerance *entities.Percent) error {
	if len(trade.Swaps) != 1 {
		return ErrMultipleSwaps
	}
	exactOutput := trade.TradeType == entities.ExactOutput
	if exactOutput && slippageTolerance == nil {
		return ErrSlippageRequired
	}

	route := trade.Swaps[0].Route
	inputAmount, err := trade.InputAmount()
	if err != nil {
		return err
	}
	outputAmount, err := trade.OutputAmount()
	if err != nil {
		return err
	}

	if len(route.Pools) == 1 {
		pool := route.Pools[0]
		zeroForOne := route.Input.Equal(pool.Currency0)
		if exactOutput {
			maxIn, err := trade.MaximumAmountIn(slippageTolerance, nil)
			if err != nil {
				return err
			}
			return p.AddAction(abi.ActionSwapExactOutSingle, abi.SwapExactOutSingleParams{
				PoolKey:         pool.Key(),
				ZeroForOne:      zeroForOne,
				AmountOut:       outputAmount.Quotient(),
				AmountInMaximum: maxIn.Quotient(),
				HookData:        []byte{},
			})
		}
		minOut := new(big.Int)
		if slippageTolerance != nil {
			amount, err := trade.MinimumAmountOut(slippageTolerance, nil)
			if err != nil {
				return err
			}
			minOut = amount.Quotient()
		}
		return p.AddAction(abi.ActionSwapExactInSingle, abi.SwapExactInSingleParams{
			PoolKey:          pool.Key(),
			ZeroForOne:       zeroForOne,
			AmountIn:         inputAmount.Quotient(),
			AmountOutMinimum: minOut,
			HookData:         []byte{},
		})
	}

	path := EncodeRouteToPath(route, exactOutput)
	if exactOutput {
		maxIn, err := trade.MaximumAmountIn(slippageTolerance, nil)
		if err != nil {
			return err
		}
		return p.AddAction(abi.ActionSwapExactOut, abi.SwapExactOutParams{
			CurrencyOut:     currencyAddress(route.Output),
			Path:            path,
			AmountOut:       outputAmount.Quotient(),
			AmountInMaximum: maxIn.Quotient(),
		})
	}
	minOut := new(big.Int)
	if slippageTolerance != nil {
		amount, err := trade.MinimumAmountOut(slippageTolerance, nil)
		if err != nil {
			return err
		}
		minOut = amount.Quotient()
	}
	return p.AddAction(abi.ActionSwapExactIn, abi.SwapExactInParams{
		CurrencyIn:       currencyAddress(route.Input),
		Path:             path,
		AmountIn:         inputAmount.Quotient(),
		AmountOutMinimum: minOut,
	})
}

// AddSettle appends a settle of the given currency. Pass OpenDelta to
// settle whatever delta is open.
func (p *V4Planner) AddSettle(currency entities.Currency, payerIsUser bool, amount *big.Int) error {
	if amount == nil {
		amount = OpenDelta
	}
	return p.AddAction(abi.ActionSettle, currencyAddress(currency), amount, payerIsUser)
}

// AddTake appends a take of the given currency to the recipient. Pass
// OpenDelta to take whatever delta is open.
func (p *V4Planner) AddTake(currency entities.Currency, recipient common.Address, amount *big.Int) error {
	if amount == nil {
		amount = OpenDelta
	}
	return p.AddAction(abi.ActionTake, currencyAddress(currency), recipient, amount)
}

// Finalize encodes the accumulated plan as modifyLiquidities unlock
// data.
func (p *V4Planner) Finalize() ([]byte, error) {
	return abi.EncodePlan(p.Actions, p.Params)
}

// EncodeRouteToPath converts a route to the path key list the
// multi-hop swap actions expect. Exact-output paths run from the
// output currency back toward the input.
func EncodeRouteToPath(route *entities.Route, exactOutput bool) []abi.PathKey {
	pools := route.Pools
	pathCurrency := route.Input
	if exactOutput {
		reversed := make([]*entities.Pool, len(pools))
		for i, pool := range pools {
			reversed[len(pools)-1-i] = pool
		}
		pools = reversed
		pathCurrency = route.Output
	}

	path := make([]abi.PathKey, len(pools))
	for i, pool := range pools {
		next := pool.Currency0
		if pathCurrency.Equal(pool.Currency0) {
			next = pool.Currency1
		}
		path[i] = abi.PathKey{
			IntermediateCurrency: currencyAddress(next),
			Fee:                  big.NewInt(int64(pool.Fee)),
			TickSpacing:          big.NewInt(int64(pool.TickSpacing)),
			Hooks:                pool.Hooks,
			HookData:             []byte{},
		}
		pathCurrency = next
	}
	return path
}

func currencyAddress(c entities.Currency) common.Address {
	if c.IsNative() {
		return common.Address{}
	}
	return c.Address()
}

// PlannedAction is one decoded step of a plan.
type PlannedAction struct {
	Action abi.Action
	Params []byte
}

// Parse splits finalized unlock data back into its actions and raw
// parameter blobs.
func Parse(data []byte) ([]PlannedAction, error) {
	actions, params, err := abi.DecodePlan(data)
	if err != nil {
		return nil, err
	}
	if len(actions) != len(params) {
		return nil, ErrTruncatedPlan
	}
	planned := make([]PlannedAction, len(actions))
	for i, action := range actions {
		planned[i] = PlannedAction{Action: abi.Action(action), Params: params[i]}
	}
	return planned, nil
}
