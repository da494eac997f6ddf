package extensions

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	v4abi "v4sdk/abi"
	"v4sdk/entities"
)

// ErrPoolNotInitialized is returned when a pool's slot0 reads back a
// zero price.
var ErrPoolNotInitialized = errors.New("pool created but not initialized")

// PoolFetcher builds entities.Pool values from onchain state.
type PoolFetcher struct {
	ChainID uint64
	Manager common.Address

	caller ethereum.ContractCaller
	lens   *PoolManagerLens
	log    *zap.Logger
}

// NewPoolFetcher builds a fetcher against the pool manager. A nil
// logger disables logging.
func NewPoolFetcher(chainID uint64, manager common.Address, caller ethereum.ContractCaller, log *zap.Logger) *PoolFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &PoolFetcher{
		ChainID: chainID,
		Manager: manager,
		caller:  caller,
		lens:    NewPoolManagerLens(manager, caller),
		log:     log,
	}
}

// Lens exposes the fetcher's pool manager lens.
func (f *PoolFetcher) Lens() *PoolManagerLens { return f.lens }

// Fetch reads the pool identified by the key parameters at the given
// block (nil for latest) and returns it with a tick data provider
// wired for swap simulation. Currency addresses use the zero address
// for native.
func (f *PoolFetcher) Fetch(ctx context.Context, currencyA, currencyB common.Address, fee uint32, tickSpacing int, hooks common.Address, block *big.Int) (*entities.Pool, error) {
	poolID, err := f.poolID(currencyA, currencyB, fee, tickSpacing, hooks)
	if err != nil {
		return nil, err
	}
	f.log.Debug("fetching pool",
		zap.String("pool_id", poolID.Hex()),
		zap.Uint32("fee", fee),
		zap.Int("tick_spacing", tickSpacing))

	group, groupCtx := errgroup.WithContext(ctx)

	var slot0 Slot0
	var liquidity *big.Int
	var tokenA, tokenB entities.Currency

	group.Go(func() error {
		var err error
		slot0, err = f.lens.GetSlot0(groupCtx, poolID, block)
		return err
	})
	group.Go(func() error {
		var err error
		liquidity, err = f.lens.GetLiquidity(groupCtx, poolID, block)
		return err
	})
	group.Go(func() error {
		var err error
		tokenA, err = f.currency(groupCtx, currencyA, block)
		return err
	})
	group.Go(func() error {
		var err error
		tokenB, err = f.currency(groupCtx, currencyB, block)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if slot0.SqrtPriceX96.Sign() == 0 {
		return nil, ErrPoolNotInitialized
	}

	tickData := NewSimpleTickDataProvider(f.lens, poolID, block)
	pool, err := entities.NewPool(tokenA, tokenB, fee, tickSpacing, hooks, slot0.SqrtPriceX96, liquidity, slot0.Tick, tickData)
	if err != nil {
		return nil, err
	}
	f.log.Debug("fetched pool",
		zap.String("pool_id", poolID.Hex()),
		zap.String("sqrt_price_x96", slot0.SqrtPriceX96.String()),
		zap.String("liquidity", liquidity.String()),
		zap.Int("tick", slot0.Tick))
	return pool, nil
}

// poolID derives the pool ID from addresses alone; metadata does not
// participate in the key.
func (f *PoolFetcher) poolID(currencyA, currencyB common.Address, fee uint32, tickSpacing int, hooks common.Address) (common.Hash, error) {
	currency0, currency1 := currencyA, currencyB
	if !isBefore(currency0, currency1) {
		currency0, currency1 = currency1, currency0
	}
	return v4abi.NewPoolKey(currency0, currency1, fee, tickSpacing, hooks).ID()
}

// isBefore orders currency addresses the way the pool key does: the
// native zero address first, tokens by address.
func isBefore(a, b common.Address) bool {
	return a.Cmp(b) < 0
}

// currency resolves an address to a currency, reading ERC20 metadata
// for tokens.
func (f *PoolFetcher) currency(ctx context.Context, address common.Address, block *big.Int) (entities.Currency, error) {
	if address == (common.Address{}) {
		return entities.NewEther(f.ChainID), nil
	}

	group, groupCtx := errgroup.WithContext(ctx)

	var name, symbol string
	var decimals uint8

	group.Go(func() error {
		return f.callERC20(groupCtx, address, "name", block, &name)
	})
	group.Go(func() error {
		return f.callERC20(groupCtx, address, "symbol", block, &symbol)
	})
	group.Go(func() error {
		return f.callERC20(groupCtx, address, "decimals", block, &decimals)
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("token metadata %s: %w", address, err)
	}
	return entities.NewToken(f.ChainID, address, decimals, symbol, name), nil
}

func (f *PoolFetcher) callERC20(ctx context.Context, token common.Address, method string, block *big.Int, out interface{}) error {
	data, err := v4abi.ERC20().Pack(method)
	if err != nil {
		return err
	}
	raw, err := f.caller.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, block)
	if err != nil {
		return err
	}
	return v4abi.ERC20().UnpackIntoInterface(out, method, raw)
}
