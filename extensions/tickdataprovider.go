package extensions

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"v4sdk/entities"
	"v4sdk/utils"
)

// SimpleTickDataProvider resolves tick queries through the lens,
// caching bitmap words for the lifetime of the provider. Suitable for
// simulating a handful of swap steps; fetch the full tick list up
// front for anything heavier.
type SimpleTickDataProvider struct {
	Lens   *PoolManagerLens
	PoolID common.Hash
	// Block pins all reads to one block; nil reads latest.
	Block *big.Int

	words map[int]*big.Int
}

var _ entities.TickDataProvider = (*SimpleTickDataProvider)(nil)

// NewSimpleTickDataProvider builds a provider reading the pool's
// ticks through the lens.
func NewSimpleTickDataProvider(lens *PoolManagerLens, poolID common.Hash, block *big.Int) *SimpleTickDataProvider {
	return &SimpleTickDataProvider{
		Lens:   lens,
		PoolID: poolID,
		Block:  block,
		words:  make(map[int]*big.Int),
	}
}

// GetTick reads the liquidity recorded at the tick.
func (p *SimpleTickDataProvider) GetTick(ctx context.Context, index int) (entities.Tick, error) {
	gross, net, err := p.Lens.GetTickLiquidity(ctx, p.PoolID, index, p.Block)
	if err != nil {
		return entities.Tick{}, err
	}
	return entities.Tick{Index: index, LiquidityGross: gross, LiquidityNet: net}, nil
}

// NextInitializedTickWithinOneWord scans the bitmap word containing
// the tick for the next initialized tick.
func (p *SimpleTickDataProvider) NextInitializedTickWithinOneWord(ctx context.Context, tick int, lte bool, tickSpacing int) (int, bool, error) {
	compressed := utils.FloorDiv(tick, tickSpacing)
	if !lte {
		compressed++
	}
	wordPos, bitPos := utils.TickPosition(compressed)
	if p.words == nil {
		p.words = make(map[int]*big.Int)
	}
	word, ok := p.words[wordPos]
	if !ok {
		var err error
		word, err = p.Lens.GetTickBitmap(ctx, p.PoolID, wordPos, p.Block)
		if err != nil {
			return 0, false, err
		}
		p.words[wordPos] = word
	}
	next, initialized := utils.NextInitializedTickWithinWord(word, compressed, bitPos, lte, tickSpacing)
	return next, initialized, nil
}
