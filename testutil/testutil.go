// Package testutil provides shared fixtures for tests: well-known
// currencies, prices and ready-made pools.
package testutil

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"v4sdk/entities"
	"v4sdk/utils"
)

const ChainID = 1

var (
	Ether = entities.NewEther(ChainID)

	USDC = entities.NewToken(ChainID, common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 6, "USDC", "USD Coin")
	DAI  = entities.NewToken(ChainID, common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), 18, "DAI", "Dai Stablecoin")

	Token0 = entities.NewToken(ChainID, common.HexToAddress("0x0000000000000000000000000000000000000001"), 18, "t0", "token0")
	Token1 = entities.NewToken(ChainID, common.HexToAddress("0x0000000000000000000000000000000000000002"), 18, "t1", "token1")
	Token2 = entities.NewToken(ChainID, common.HexToAddress("0x0000000000000000000000000000000000000003"), 18, "t2", "token2")
	Token3 = entities.NewToken(ChainID, common.HexToAddress("0x0000000000000000000000000000000000000004"), 18, "t3", "token3")

	// SqrtPriceOneToOne is the sqrt price of a 1:1 pool.
	SqrtPriceOneToOne = utils.EncodeSqrtRatioX96(big.NewInt(1), big.NewInt(1))
)

// TickSpacing for the default 0.30% fee tier.
const TickSpacing = 60

// NewTestPool builds a pool at a 1:1 price with no liquidity and no
// hook. It panics on invalid fixtures, which keeps call sites short.
func NewTestPool(currencyA, currencyB entities.Currency) *entities.Pool {
	pool, err := entities.NewPool(currencyA, currencyB, 3000, TickSpacing, common.Address{}, SqrtPriceOneToOne, new(big.Int), 0, nil)
	if err != nil {
		panic(err)
	}
	return pool
}

// NewTestPoolWithLiquidity builds a 1:1 pool carrying uniform
// liquidity across the full tick range.
func NewTestPoolWithLiquidity(currencyA, currencyB entities.Currency, liquidity int64) *entities.Pool {
	l := big.NewInt(liquidity)
	ticks := []entities.Tick{
		{
			Index:          utils.NearestUsableTick(utils.MinTick, TickSpacing),
			LiquidityGross: l,
			LiquidityNet:   l,
		},
		{
			Index:          utils.NearestUsableTick(utils.MaxTick, TickSpacing),
			LiquidityGross: l,
			LiquidityNet:   new(big.Int).Neg(l),
		},
	}
	provider, err := entities.NewTickListDataProvider(ticks, TickSpacing)
	if err != nil {
		panic(err)
	}
	pool, err := entities.NewPool(currencyA, currencyB, 3000, TickSpacing, common.Address{}, SqrtPriceOneToOne, l, 0, provider)
	if err != nil {
		panic(err)
	}
	return pool
}
