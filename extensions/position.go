package extensions

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	v4abi "v4sdk/abi"
	"v4sdk/entities"
)

var (
	modifyLiquidityTopic = crypto.Keccak256Hash([]byte("ModifyLiquidity(bytes32,address,int24,int24,int256,bytes32)"))
	transferTopic        = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
)

// FetchPosition reads a position from the position manager by its
// token ID, resolving the underlying pool state at the given block
// (nil for latest).
func FetchPosition(ctx context.Context, chainID uint64, positionManager common.Address, tokenID *big.Int, caller ethereum.ContractCaller, log *zap.Logger, block *big.Int) (*entities.Position, error) {
	group, groupCtx := errgroup.WithContext(ctx)

	var poolManager common.Address
	var liquidity *big.Int
	var poolAndInfo struct {
		PoolKey struct {
			Currency0   common.Address
			Currency1   common.Address
			Fee         *big.Int
			TickSpacing *big.Int
			Hooks       common.Address
		}
		Info *big.Int
	}

	group.Go(func() error {
		return callPositionManager(groupCtx, caller, positionManager, "poolManager", nil, block, &poolManager)
	})
	group.Go(func() error {
		return callPositionManager(groupCtx, caller, positionManager, "getPositionLiquidity", []interface{}{tokenID}, block, &liquidity)
	})
	group.Go(func() error {
		return callPositionManager(groupCtx, caller, positionManager, "getPoolAndPositionInfo", []interface{}{tokenID}, block, &poolAndInfo)
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("position %s: %w", tokenID, err)
	}

	tickLower, tickUpper := DecodePositionInfo(poolAndInfo.Info)

	key := poolAndInfo.PoolKey
	fetcher := NewPoolFetcher(chainID, poolManager, caller, log)
	pool, err := fetcher.Fetch(ctx, key.Currency0, key.Currency1, uint32(key.Fee.Uint64()), int(key.TickSpacing.Int64()), key.Hooks, block)
	if err != nil {
		return nil, err
	}
	return entities.NewPosition(pool, liquidity, tickLower, tickUpper)
}

func callPositionManager(ctx context.Context, caller ethereum.ContractCaller, manager common.Address, method string, args []interface{}, block *big.Int, out interface{}) error {
	data, err := v4abi.PositionManager().Pack(method, args...)
	if err != nil {
		return err
	}
	raw, err := caller.CallContract(ctx, ethereum.CallMsg{To: &manager, Data: data}, block)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return v4abi.PositionManager().UnpackIntoInterface(out, method, raw)
}

// DecodePositionInfo unpacks the tick range from the position
// manager's packed PositionInfo word. From the least significant bit:
// 8 bits subscriber flag, 24 bits tickLower, 24 bits tickUpper, then
// the truncated pool ID.
func DecodePositionInfo(info *big.Int) (tickLower, tickUpper int) {
	mask := big.NewInt(0xFFFFFF)
	lower := int(new(big.Int).And(new(big.Int).Rsh(info, 8), mask).Int64())
	if lower >= 1<<23 {
		lower -= 1 << 24
	}
	upper := int(new(big.Int).And(new(big.Int).Rsh(info, 32), mask).Int64())
	if upper >= 1<<23 {
		upper -= 1 << 24
	}
	return lower, upper
}

// CalculatePositionKey derives the pool manager's position key:
// keccak256 of the packed owner, tick range and salt.
func CalculatePositionKey(owner common.Address, tickLower, tickUpper int, salt common.Hash) common.Hash {
	buf := make([]byte, 0, 20+3+3+32)
	buf = append(buf, owner.Bytes()...)
	buf = append(buf, packInt24(tickLower)...)
	buf = append(buf, packInt24(tickUpper)...)
	buf = append(buf, salt.Bytes()...)
	return crypto.Keccak256Hash(buf)
}

func packInt24(v int) []byte {
	return []byte{byte(v >> 16), byte(v >> 8), byte(v)}
}

// MintedToken is a position token minted in a transaction.
type MintedToken struct {
	Recipient common.Address
	TokenID   *big.Int
}

// PositionKeysFromReceipt extracts the position keys touched by the
// transaction's ModifyLiquidity events.
func PositionKeysFromReceipt(poolManager common.Address, receipt *types.Receipt) []common.Hash {
	var keys []common.Hash
	for _, log := range receipt.Logs {
		key, ok := positionKeyFromLog(poolManager, log)
		if ok {
			keys = append(keys, key)
		}
	}
	return keys
}

func positionKeyFromLog(poolManager common.Address, log *types.Log) (common.Hash, bool) {
	if log.Address != poolManager || len(log.Topics) < 3 || log.Topics[0] != modifyLiquidityTopic {
		return common.Hash{}, false
	}
	// data: tickLower int24, tickUpper int24, liquidityDelta int256,
	// salt bytes32
	if len(log.Data) < 128 {
		return common.Hash{}, false
	}
	sender := common.BytesToAddress(log.Topics[2].Bytes())
	tickLower := unpackSignedWord(log.Data[0:32])
	tickUpper := unpackSignedWord(log.Data[32:64])
	salt := common.BytesToHash(log.Data[96:128])
	return CalculatePositionKey(sender, tickLower, tickUpper, salt), true
}

func unpackSignedWord(word []byte) int {
	v := new(big.Int).SetBytes(word)
	if word[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 256))
	}
	return int(v.Int64())
}

// PositionKeysInRange queries ModifyLiquidity events for the pool
// over a block range and derives their position keys.
func PositionKeysInRange(ctx context.Context, filterer ethereum.LogFilterer, poolManager common.Address, poolID common.Hash, fromBlock, toBlock *big.Int) ([]common.Hash, error) {
	logs, err := filterer.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: fromBlock,
		ToBlock:   toBlock,
		Addresses: []common.Address{poolManager},
		Topics:    [][]common.Hash{{modifyLiquidityTopic}, {poolID}},
	})
	if err != nil {
		return nil, fmt.Errorf("filter modify liquidity: %w", err)
	}
	var keys []common.Hash
	for i := range logs {
		key, ok := positionKeyFromLog(poolManager, &logs[i])
		if ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// TokenIDsFromReceipt extracts the position tokens minted by the
// transaction: ERC721 transfers from the zero address.
func TokenIDsFromReceipt(positionManager common.Address, receipt *types.Receipt) []MintedToken {
	var minted []MintedToken
	for _, log := range receipt.Logs {
		if log.Address != positionManager || len(log.Topics) != 4 || log.Topics[0] != transferTopic {
			continue
		}
		from := common.BytesToAddress(log.Topics[1].Bytes())
		if from != (common.Address{}) {
			continue
		}
		minted = append(minted, MintedToken{
			Recipient: common.BytesToAddress(log.Topics[2].Bytes()),
			TokenID:   new(big.Int).SetBytes(log.Topics[3].Bytes()),
		})
	}
	return minted
}

// FirstTokenIDFromReceipt returns the first position token minted by
// the transaction, if any.
func FirstTokenIDFromReceipt(positionManager common.Address, receipt *types.Receipt) (*big.Int, bool) {
	minted := TokenIDsFromReceipt(positionManager, receipt)
	if len(minted) == 0 {
		return nil, false
	}
	return minted[0].TokenID, true
}
