package entities

import (
	"context"
	"math/big"
	"sort"

	"v4sdk/utils"
)

// Tick is the liquidity bookkeeping for one initialized tick.
type Tick struct {
	Index          int
	LiquidityGross *big.Int
	LiquidityNet   *big.Int
}

// TickDataProvider supplies tick data to swap simulation. RPC-backed
// implementations honor the context.
type TickDataProvider interface {
	// GetTick returns the tick at the given index.
	GetTick(ctx context.Context, index int) (Tick, error)
	// NextInitializedTickWithinOneWord returns the next initialized
	// tick in the direction of the swap, bounded to one bitmap word,
	// and whether that tick is initialized.
	NextInitializedTickWithinOneWord(ctx context.Context, tick int, lte bool, tickSpacing int) (int, bool, error)
}

// TickListDataProvider serves tick data from a static, validated
// list.
type TickListDataProvider struct {
	ticks []Tick
}

// NewTickListDataProvider validates the tick list: sorted by index,
// indexes on the spacing grid, net liquidity summing to zero.
func NewTickListDataProvider(ticks []Tick, tickSpacing int) (*TickListDataProvider, error) {
	if len(ticks) == 0 {
		return nil, ErrNoTicks
	}
	if !sort.SliceIsSorted(ticks, func(i, j int) bool { return ticks[i].Index < ticks[j].Index }) {
		return nil, ErrUnsortedTicks
	}
	net := new(big.Int)
	for _, tick := range ticks {
		if tick.Index%tickSpacing != 0 {
			return nil, ErrTickOffGrid
		}
		net.Add(net, tick.LiquidityNet)
	}
	if net.Sign() != 0 {
		return nil, ErrUnbalancedTicks
	}
	return &TickListDataProvider{ticks: ticks}, nil
}

// GetTick returns the tick at the given index.
func (p *TickListDataProvider) GetTick(_ context.Context, index int) (Tick, error) {
	i := sort.Search(len(p.ticks), func(i int) bool { return p.ticks[i].Index >= index })
	if i == len(p.ticks) || p.ticks[i].Index != index {
		return Tick{}, ErrNoTicks
	}
	return p.ticks[i], nil
}

func (p *TickListDataProvider) isBelowSmallest(tick int) bool {
	return tick < p.ticks[0].Index
}

func (p *TickListDataProvider) isAtOrAboveLargest(tick int) bool {
	return tick >= p.ticks[len(p.ticks)-1].Index
}

// nextInitializedTick finds the closest initialized tick at or below
// (lte) or strictly above the given tick.
func (p *TickListDataProvider) nextInitializedTick(tick int, lte bool) (Tick, error) {
	if lte {
		if p.isBelowSmallest(tick) {
			return Tick{}, ErrNoTicks
		}
		i := sort.Search(len(p.ticks), func(i int) bool { return p.ticks[i].Index > tick })
		return p.ticks[i-1], nil
	}
	if p.isAtOrAboveLargest(tick) {
		return Tick{}, ErrNoTicks
	}
	i := sort.Search(len(p.ticks), func(i int) bool { return p.ticks[i].Index > tick })
	return p.ticks[i], nil
}

// NextInitializedTickWithinOneWord mirrors the core tick bitmap scan
// over the static list.
func (p *TickListDataProvider) NextInitializedTickWithinOneWord(_ context.Context, tick int, lte bool, tickSpacing int) (int, bool, error) {
	compressed := utils.FloorDiv(tick, tickSpacing)
	if lte {
		wordPos := compressed >> 8
		minimum := (wordPos << 8) * tickSpacing
		if p.isBelowSmallest(tick) {
			return minimum, false, nil
		}
		next, err := p.nextInitializedTick(tick, true)
		if err != nil {
			return 0, false, err
		}
		if next.Index < minimum {
			return minimum, false, nil
		}
		return next.Index, true, nil
	}
	wordPos := (compressed + 1) >> 8
	maximum := (((wordPos+1)<<8)-1)*tickSpacing
	if p.isAtOrAboveLargest(tick) {
		return maximum, false, nil
	}
	next, err := p.nextInitializedTick(tick, false)
	if err != nil {
		return 0, false, err
	}
	if next.Index > maximum {
		return maximum, false, nil
	}
	return next.Index, true, nil
}
