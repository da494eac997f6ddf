package extensions

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	v4abi "v4sdk/abi"
)

// Pool manager storage layout: the pools mapping lives at slot 6 and
// each pool's state struct spans consecutive slots from its base.
const (
	poolsSlot = 6

	feeGrowthGlobal0Offset = 1
	feeGrowthGlobal1Offset = 2
	liquidityOffset        = 3
	ticksOffset            = 4
	tickBitmapOffset       = 5
	positionsOffset        = 6
)

var ErrShortStorageValue = errors.New("storage read returned short value")

// Slot0 is the unpacked first slot of a pool's state.
type Slot0 struct {
	SqrtPriceX96 *big.Int
	Tick         int
	ProtocolFee  uint32
	LpFee        uint32
}

// PoolManagerLens reads pool manager state with extsload. Block may
// be nil for latest on every method.
type PoolManagerLens struct {
	Manager common.Address

	caller ethereum.ContractCaller
}

// NewPoolManagerLens builds a lens over the pool manager at the given
// address.
func NewPoolManagerLens(manager common.Address, caller ethereum.ContractCaller) *PoolManagerLens {
	return &PoolManagerLens{Manager: manager, caller: caller}
}

// extsload reads one raw storage slot of the pool manager.
func (l *PoolManagerLens) extsload(ctx context.Context, slot common.Hash, block *big.Int) (common.Hash, error) {
	data, err := v4abi.Extsload().Pack("extsload", slot)
	if err != nil {
		return common.Hash{}, err
	}
	out, err := l.caller.CallContract(ctx, ethereum.CallMsg{To: &l.Manager, Data: data}, block)
	if err != nil {
		return common.Hash{}, fmt.Errorf("extsload %s: %w", slot, err)
	}
	if len(out) < 32 {
		return common.Hash{}, ErrShortStorageValue
	}
	return common.BytesToHash(out[:32]), nil
}

// poolStateSlot returns the slot of the pool's state struct.
func poolStateSlot(poolID common.Hash) *big.Int {
	var buf [64]byte
	copy(buf[:32], poolID[:])
	buf[63] = poolsSlot
	return new(big.Int).SetBytes(crypto.Keccak256(buf[:]))
}

// mappingSlot returns the slot of key in the mapping at base,
// where key is already a full storage word.
func mappingSlot(key common.Hash, base *big.Int) common.Hash {
	var buf [64]byte
	copy(buf[:32], key[:])
	base.FillBytes(buf[32:])
	return common.BytesToHash(crypto.Keccak256(buf[:]))
}

// signedWord sign-extends v into a full storage word.
func signedWord(v int64) common.Hash {
	b := big.NewInt(v)
	if b.Sign() < 0 {
		b.Add(b, new(big.Int).Lsh(big.NewInt(1), 256))
	}
	return common.BigToHash(b)
}

func tickBitmapSlot(poolID common.Hash, wordPos int) common.Hash {
	base := poolStateSlot(poolID)
	base.Add(base, big.NewInt(tickBitmapOffset))
	return mappingSlot(signedWord(int64(wordPos)), base)
}

func tickInfoSlot(poolID common.Hash, tick int) common.Hash {
	base := poolStateSlot(poolID)
	base.Add(base, big.NewInt(ticksOffset))
	return mappingSlot(signedWord(int64(tick)), base)
}

func positionInfoSlot(poolID, positionKey common.Hash) common.Hash {
	base := poolStateSlot(poolID)
	base.Add(base, big.NewInt(positionsOffset))
	return mappingSlot(positionKey, base)
}

// GetSlot0 reads and unpacks the pool's slot0.
func (l *PoolManagerLens) GetSlot0(ctx context.Context, poolID common.Hash, block *big.Int) (Slot0, error) {
	value, err := l.extsload(ctx, common.BigToHash(poolStateSlot(poolID)), block)
	if err != nil {
		return Slot0{}, err
	}
	return unpackSlot0(value), nil
}

// Slot0 packing, from the most significant byte down: 3 empty bytes,
// lpFee (3), protocolFee (3), tick (3), sqrtPriceX96 (20).
func unpackSlot0(value common.Hash) Slot0 {
	sqrtPrice := new(big.Int).SetBytes(value[12:32])

	tick := int(value[9])<<16 | int(value[10])<<8 | int(value[11])
	if tick >= 1<<23 {
		tick -= 1 << 24
	}

	protocolFee := uint32(value[6])<<16 | uint32(value[7])<<8 | uint32(value[8])
	lpFee := uint32(value[3])<<16 | uint32(value[4])<<8 | uint32(value[5])

	return Slot0{SqrtPriceX96: sqrtPrice, Tick: tick, ProtocolFee: protocolFee, LpFee: lpFee}
}

// GetLiquidity reads the pool's active liquidity.
func (l *PoolManagerLens) GetLiquidity(ctx context.Context, poolID common.Hash, block *big.Int) (*big.Int, error) {
	slot := poolStateSlot(poolID)
	slot.Add(slot, big.NewInt(liquidityOffset))
	value, err := l.extsload(ctx, common.BigToHash(slot), block)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(value[16:32]), nil
}

// GetFeeGrowthGlobals reads the pool's global fee growth accumulators
// for currency0 and currency1.
func (l *PoolManagerLens) GetFeeGrowthGlobals(ctx context.Context, poolID common.Hash, block *big.Int) (*big.Int, *big.Int, error) {
	base := poolStateSlot(poolID)
	slot0 := new(big.Int).Add(base, big.NewInt(feeGrowthGlobal0Offset))
	value0, err := l.extsload(ctx, common.BigToHash(slot0), block)
	if err != nil {
		return nil, nil, err
	}
	slot1 := new(big.Int).Add(base, big.NewInt(feeGrowthGlobal1Offset))
	value1, err := l.extsload(ctx, common.BigToHash(slot1), block)
	if err != nil {
		return nil, nil, err
	}
	return new(big.Int).SetBytes(value0[:]), new(big.Int).SetBytes(value1[:]), nil
}

// GetTickBitmap reads one word of the pool's tick bitmap.
func (l *PoolManagerLens) GetTickBitmap(ctx context.Context, poolID common.Hash, wordPos int, block *big.Int) (*big.Int, error) {
	value, err := l.extsload(ctx, tickBitmapSlot(poolID, wordPos), block)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(value[:]), nil
}

// GetTickLiquidity reads the gross and net liquidity at a tick.
func (l *PoolManagerLens) GetTickLiquidity(ctx context.Context, poolID common.Hash, tick int, block *big.Int) (*big.Int, *big.Int, error) {
	value, err := l.extsload(ctx, tickInfoSlot(poolID, tick), block)
	if err != nil {
		return nil, nil, err
	}
	liquidityGross := new(big.Int).SetBytes(value[16:32])
	liquidityNet := new(big.Int).SetBytes(value[0:16])
	// liquidityNet is an int128 in the upper half of the slot
	if value[0]&0x80 != 0 {
		liquidityNet.Sub(liquidityNet, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return liquidityGross, liquidityNet, nil
}

// GetPositionLiquidity reads the liquidity of a position by its key.
func (l *PoolManagerLens) GetPositionLiquidity(ctx context.Context, poolID, positionKey common.Hash, block *big.Int) (*big.Int, error) {
	value, err := l.extsload(ctx, positionInfoSlot(poolID, positionKey), block)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(value[16:32]), nil
}
