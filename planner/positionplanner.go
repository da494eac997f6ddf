package planner

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"v4sdk/abi"
	"v4sdk/entities"
)

// V4PositionPlanner builds liquidity management plans on top of
// V4Planner.
type V4PositionPlanner struct {
	V4Planner
}

// NewV4PositionPlanner returns an empty position plan.
func NewV4PositionPlanner() *V4PositionPlanner {
	return &V4PositionPlanner{}
}

// AddMint appends a mint of a new position on the pool.
func (p *V4PositionPlanner) AddMint(pool *entities.Pool, tickLower, tickUpper int, liquidity, amount0Max, amount1Max *big.Int, owner common.Address, hookData []byte) error {
	if hookData == nil {
		hookData = []byte{}
	}
	return p.AddAction(abi.ActionMintPosition,
		pool.Key(),
		big.NewInt(int64(tickLower)),
		big.NewInt(int64(tickUpper)),
		liquidity,
		amount0Max,
		amount1Max,
		owner,
		hookData,
	)
}

// AddIncrease appends a liquidity increase of an existing position.
func (p *V4PositionPlanner) AddIncrease(tokenID, liquidity, amount0Max, amount1Max *big.Int, hookData []byte) error {
	if hookData == nil {
		hookData = []byte{}
	}
	return p.AddAction(abi.ActionIncreaseLiquidity, tokenID, liquidity, amount0Max, amount1Max, hookData)
}

// AddDecrease appends a liquidity decrease of an existing position.
func (p *V4PositionPlanner) AddDecrease(tokenID, liquidity, amount0Min, amount1Min *big.Int, hookData []byte) error {
	if hookData == nil {
		hookData = []byte{}
	}
	return p.AddAction(abi.ActionDecreaseLiquidity, tokenID, liquidity, amount0Min, amount1Min, hookData)
}

// AddBurn appends a burn of an entire position.
func (p *V4PositionPlanner) AddBurn(tokenID, amount0Min, amount1Min *big.Int, hookData []byte) error {
	if hookData == nil {
		hookData = []byte{}
	}
	return p.AddAction(abi.ActionBurnPosition, tokenID, amount0Min, amount1Min, hookData)
}

// AddSettlePair appends a settle of both currencies of a pair.
func (p *V4PositionPlanner) AddSettlePair(currency0, currency1 entities.Currency) error {
	return p.AddAction(abi.ActionSettlePair, currencyAddress(currency0), currencyAddress(currency1))
}

// AddTakePair appends a take of both currencies of a pair.
func (p *V4PositionPlanner) AddTakePair(currency0, currency1 entities.Currency, recipient common.Address) error {
	return p.AddAction(abi.ActionTakePair, currencyAddress(currency0), currencyAddress(currency1), recipient)
}

// AddSweep appends a sweep of any leftover balance of the currency.
func (p *V4PositionPlanner) AddSweep(currency entities.Currency, recipient common.Address) error {
	return p.AddAction(abi.ActionSweep, currencyAddress(currency), recipient)
}
