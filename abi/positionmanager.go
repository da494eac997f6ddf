package abi

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// positionManagerJSON is the position manager interface, trimmed to
// the functions the SDK calls or encodes calldata for.
const positionManagerJSON = `[
  {"type":"function","name":"initializePool","stateMutability":"payable","inputs":[
    {"name":"key","type":"tuple","components":[
      {"name":"currency0","type":"address"},
      {"name":"currency1","type":"address"},
      {"name":"fee","type":"uint24"},
      {"name":"tickSpacing","type":"int24"},
      {"name":"hooks","type":"address"}]},
    {"name":"sqrtPriceX96","type":"uint160"}],
   "outputs":[{"name":"tick","type":"int24"}]},
  {"type":"function","name":"modifyLiquidities","stateMutability":"payable","inputs":[
    {"name":"unlockData","type":"bytes"},
    {"name":"deadline","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"multicall","stateMutability":"payable","inputs":[
    {"name":"data","type":"bytes[]"}],
   "outputs":[{"name":"results","type":"bytes[]"}]},
  {"type":"function","name":"permit","stateMutability":"payable","inputs":[
    {"name":"spender","type":"address"},
    {"name":"tokenId","type":"uint256"},
    {"name":"deadline","type":"uint256"},
    {"name":"nonce","type":"uint256"},
    {"name":"signature","type":"bytes"}],
   "outputs":[]},
  {"type":"function","name":"permitBatch","stateMutability":"payable","inputs":[
    {"name":"owner","type":"address"},
    {"name":"permitBatch","type":"tuple","components":[
      {"name":"details","type":"tuple[]","components":[
        {"name":"token","type":"address"},
        {"name":"amount","type":"uint160"},
        {"name":"expiration","type":"uint48"},
        {"name":"nonce","type":"uint48"}]},
      {"name":"spender","type":"address"},
      {"name":"sigDeadline","type":"uint256"}]},
    {"name":"signature","type":"bytes"}],
   "outputs":[{"name":"err","type":"bytes"}]},
  {"type":"function","name":"transferFrom","stateMutability":"payable","inputs":[
    {"name":"from","type":"address"},
    {"name":"to","type":"address"},
    {"name":"id","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"ownerOf","stateMutability":"view","inputs":[
    {"name":"id","type":"uint256"}],
   "outputs":[{"name":"owner","type":"address"}]},
  {"type":"function","name":"nextTokenId","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getPoolAndPositionInfo","stateMutability":"view","inputs":[
    {"name":"tokenId","type":"uint256"}],
   "outputs":[
    {"name":"poolKey","type":"tuple","components":[
      {"name":"currency0","type":"address"},
      {"name":"currency1","type":"address"},
      {"name":"fee","type":"uint24"},
      {"name":"tickSpacing","type":"int24"},
      {"name":"hooks","type":"address"}]},
    {"name":"info","type":"uint256"}]},
  {"type":"function","name":"getPositionLiquidity","stateMutability":"view","inputs":[
    {"name":"tokenId","type":"uint256"}],
   "outputs":[{"name":"liquidity","type":"uint128"}]},
  {"type":"function","name":"poolManager","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"address"}]}
]`

// erc20JSON covers the metadata getters the pool fetcher reads.
const erc20JSON = `[
  {"type":"function","name":"name","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"symbol","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"decimals","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"uint8"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[
    {"name":"account","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]}
]`

// extsloadJSON is the pool manager's raw storage read surface.
const extsloadJSON = `[
  {"type":"function","name":"extsload","stateMutability":"view","inputs":[
    {"name":"slot","type":"bytes32"}],
   "outputs":[{"name":"value","type":"bytes32"}]},
  {"type":"function","name":"extsload","stateMutability":"view","inputs":[
    {"name":"startSlot","type":"bytes32"},
    {"name":"nSlots","type":"uint256"}],
   "outputs":[{"name":"values","type":"bytes32[]"}]}
]`

var (
	parseOnce sync.Once

	positionManagerABI gethabi.ABI
	erc20ABI           gethabi.ABI
	extsloadABI        gethabi.ABI
)

func mustParse(src string) gethabi.ABI {
	parsed, err := gethabi.JSON(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("abi: parse interface: %v", err))
	}
	return parsed
}

func ensureParsed() {
	parseOnce.Do(func() {
		positionManagerABI = mustParse(positionManagerJSON)
		erc20ABI = mustParse(erc20JSON)
		extsloadABI = mustParse(extsloadJSON)
	})
}

// PositionManager returns the parsed position manager interface.
func PositionManager() gethabi.ABI {
	ensureParsed()
	return positionManagerABI
}

// ERC20 returns the parsed token metadata interface.
func ERC20() gethabi.ABI {
	ensureParsed()
	return erc20ABI
}

// Extsload returns the parsed raw storage read interface.
func Extsload() gethabi.ABI {
	ensureParsed()
	return extsloadABI
}

// PermitDetails is one token entry of a Permit2 batch approval.
type PermitDetails struct {
	Token      common.Address
	Amount     *big.Int
	Expiration *big.Int
	Nonce      *big.Int
}

// PermitSingle approves a single token through Permit2.
type PermitSingle struct {
	Details     PermitDetails
	Spender     common.Address
	SigDeadline *big.Int
}

// PermitBatch approves multiple tokens through Permit2 with one
// signature.
type PermitBatch struct {
	Details     []PermitDetails
	Spender     common.Address
	SigDeadline *big.Int
}

// PackInitializePool encodes an initializePool call.
func PackInitializePool(key PoolKey, sqrtPriceX96 *big.Int) ([]byte, error) {
	return PositionManager().Pack("initializePool", key, sqrtPriceX96)
}

// PackModifyLiquidities encodes a modifyLiquidities call.
func PackModifyLiquidities(unlockData []byte, deadline *big.Int) ([]byte, error) {
	return PositionManager().Pack("modifyLiquidities", unlockData, deadline)
}

// PackMulticall encodes a multicall over already-encoded calls.
func PackMulticall(calls [][]byte) ([]byte, error) {
	return PositionManager().Pack("multicall", calls)
}

// PackPermit encodes an ERC721 permit for one position token.
func PackPermit(spender common.Address, tokenID, deadline, nonce *big.Int, signature []byte) ([]byte, error) {
	return PositionManager().Pack("permit", spender, tokenID, deadline, nonce, signature)
}

// PackPermitBatch encodes a Permit2 batch approval forward.
func PackPermitBatch(owner common.Address, batch PermitBatch, signature []byte) ([]byte, error) {
	return PositionManager().Pack("permitBatch", owner, batch, signature)
}

// PackTransferFrom encodes an ERC721 transfer of a position token.
func PackTransferFrom(from, to common.Address, tokenID *big.Int) ([]byte, error) {
	return PositionManager().Pack("transferFrom", from, to, tokenID)
}
