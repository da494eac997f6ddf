package abi

import (
	"fmt"
	"math/big"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Action is a one-byte opcode of the position manager's unlock
// callback dispatcher.
type Action byte

// Action opcodes. Values carry the gaps of the deployed dispatch
// table.
const (
	ActionIncreaseLiquidity Action = 0x00
	ActionDecreaseLiquidity Action = 0x01
	ActionMintPosition      Action = 0x02
	ActionBurnPosition      Action = 0x03

	ActionSwapExactInSingle  Action = 0x04
	ActionSwapExactIn        Action = 0x05
	ActionSwapExactOutSingle Action = 0x06
	ActionSwapExactOut       Action = 0x07

	ActionSettle     Action = 0x09
	ActionSettleAll  Action = 0x10
	ActionSettlePair Action = 0x11

	ActionTake        Action = 0x12
	ActionTakeAll     Action = 0x13
	ActionTakePortion Action = 0x14
	ActionTakePair    Action = 0x15

	ActionSettleTakePair Action = 0x16
	ActionCloseCurrency  Action = 0x17
	ActionSweep          Action = 0x19
)

// String names the action for logs and errors.
func (a Action) String() string {
	switch a {
	case ActionIncreaseLiquidity:
		return "INCREASE_LIQUIDITY"
	case ActionDecreaseLiquidity:
		return "DECREASE_LIQUIDITY"
	case ActionMintPosition:
		return "MINT_POSITION"
	case ActionBurnPosition:
		return "BURN_POSITION"
	case ActionSwapExactInSingle:
		return "SWAP_EXACT_IN_SINGLE"
	case ActionSwapExactIn:
		return "SWAP_EXACT_IN"
	case ActionSwapExactOutSingle:
		return "SWAP_EXACT_OUT_SINGLE"
	case ActionSwapExactOut:
		return "SWAP_EXACT_OUT"
	case ActionSettle:
		return "SETTLE"
	case ActionSettleAll:
		return "SETTLE_ALL"
	case ActionSettlePair:
		return "SETTLE_PAIR"
	case ActionTake:
		return "TAKE"
	case ActionTakeAll:
		return "TAKE_ALL"
	case ActionTakePortion:
		return "TAKE_PORTION"
	case ActionTakePair:
		return "TAKE_PAIR"
	case ActionSettleTakePair:
		return "SETTLE_TAKE_PAIR"
	case ActionCloseCurrency:
		return "CLOSE_CURRENCY"
	case ActionSweep:
		return "SWEEP"
	default:
		return fmt.Sprintf("UNKNOWN_ACTION_0x%02x", byte(a))
	}
}

var pathKeyComponents = []gethabi.ArgumentMarshaling{
	{Name: "intermediateCurrency", Type: "address"},
	{Name: "fee", Type: "uint24"},
	{Name: "tickSpacing", Type: "int24"},
	{Name: "hooks", Type: "address"},
	{Name: "hookData", Type: "bytes"},
}

// PathKey is one hop of a multi-hop swap path.
type PathKey struct {
	IntermediateCurrency common.Address
	Fee                  *big.Int
	TickSpacing          *big.Int
	Hooks                common.Address
	HookData             []byte
}

var (
	addressType = mustType("address", nil)
	boolType    = mustType("bool", nil)
	bytesType   = mustType("bytes", nil)
	int24Type   = mustType("int24", nil)
	uint128Type = mustType("uint128", nil)
	uint256Type = mustType("uint256", nil)

	swapExactInSingleType = mustType("tuple", []gethabi.ArgumentMarshaling{
		{Name: "poolKey", Type: "tuple", Components: poolKeyComponents},
		{Name: "zeroForOne", Type: "bool"},
		{Name: "amountIn", Type: "uint128"},
		{Name: "amountOutMinimum", Type: "uint128"},
		{Name: "hookData", Type: "bytes"},
	})
	swapExactInType = mustType("tuple", []gethabi.ArgumentMarshaling{
		{Name: "currencyIn", Type: "address"},
		{Name: "path", Type: "tuple[]", Components: pathKeyComponents},
		{Name: "amountIn", Type: "uint128"},
		{Name: "amountOutMinimum", Type: "uint128"},
	})
	swapExactOutSingleType = mustType("tuple", []gethabi.ArgumentMarshaling{
		{Name: "poolKey", Type: "tuple", Components: poolKeyComponents},
		{Name: "zeroForOne", Type: "bool"},
		{Name: "amountOut", Type: "uint128"},
		{Name: "amountInMaximum", Type: "uint128"},
		{Name: "hookData", Type: "bytes"},
	})
	swapExactOutType = mustType("tuple", []gethabi.ArgumentMarshaling{
		{Name: "currencyOut", Type: "address"},
		{Name: "path", Type: "tuple[]", Components: pathKeyComponents},
		{Name: "amountOut", Type: "uint128"},
		{Name: "amountInMaximum", Type: "uint128"},
	})
)

// actionArguments maps each action to its parameter layout.
var actionArguments = map[Action]gethabi.Arguments{
	ActionIncreaseLiquidity: {
		{Name: "tokenId", Type: uint256Type},
		{Name: "liquidity", Type: uint256Type},
		{Name: "amount0Max", Type: uint128Type},
		{Name: "amount1Max", Type: uint128Type},
		{Name: "hookData", Type: bytesType},
	},
	ActionDecreaseLiquidity: {
		{Name: "tokenId", Type: uint256Type},
		{Name: "liquidity", Type: uint256Type},
		{Name: "amount0Min", Type: uint128Type},
		{Name: "amount1Min", Type: uint128Type},
		{Name: "hookData", Type: bytesType},
	},
	ActionMintPosition: {
		{Name: "poolKey", Type: poolKeyType},
		{Name: "tickLower", Type: int24Type},
		{Name: "tickUpper", Type: int24Type},
		{Name: "liquidity", Type: uint256Type},
		{Name: "amount0Max", Type: uint128Type},
		{Name: "amount1Max", Type: uint128Type},
		{Name: "owner", Type: addressType},
		{Name: "hookData", Type: bytesType},
	},
	ActionBurnPosition: {
		{Name: "tokenId", Type: uint256Type},
		{Name: "amount0Min", Type: uint128Type},
		{Name: "amount1Min", Type: uint128Type},
		{Name: "hookData", Type: bytesType},
	},
	ActionSwapExactInSingle:  {{Name: "params", Type: swapExactInSingleType}},
	ActionSwapExactIn:        {{Name: "params", Type: swapExactInType}},
	ActionSwapExactOutSingle: {{Name: "params", Type: swapExactOutSingleType}},
	ActionSwapExactOut:       {{Name: "params", Type: swapExactOutType}},
	ActionSettle: {
		{Name: "currency", Type: addressType},
		{Name: "amount", Type: uint256Type},
		{Name: "payerIsUser", Type: boolType},
	},
	ActionSettleAll: {
		{Name: "currency", Type: addressType},
		{Name: "maxAmount", Type: uint256Type},
	},
	ActionSettlePair: {
		{Name: "currency0", Type: addressType},
		{Name: "currency1", Type: addressType},
	},
	ActionTake: {
		{Name: "currency", Type: addressType},
		{Name: "recipient", Type: addressType},
		{Name: "amount", Type: uint256Type},
	},
	ActionTakeAll: {
		{Name: "currency", Type: addressType},
		{Name: "minAmount", Type: uint256Type},
	},
	ActionTakePortion: {
		{Name: "currency", Type: addressType},
		{Name: "recipient", Type: addressType},
		{Name: "bips", Type: uint256Type},
	},
	ActionTakePair: {
		{Name: "currency0", Type: addressType},
		{Name: "currency1", Type: addressType},
		{Name: "recipient", Type: addressType},
	},
	ActionSettleTakePair: {
		{Name: "settleCurrency", Type: addressType},
		{Name: "takeCurrency", Type: addressType},
	},
	ActionCloseCurrency: {
		{Name: "currency", Type: addressType},
	},
	ActionSweep: {
		{Name: "currency", Type: addressType},
		{Name: "recipient", Type: addressType},
	},
}

// EncodeAction packs the parameter values for an action.
func EncodeAction(action Action, values ...interface{}) ([]byte, error) {
	args, ok := actionArguments[action]
	if !ok {
		return nil, fmt.Errorf("abi: no parameter layout for action %s", action)
	}
	encoded, err := args.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("abi: encode %s: %w", action, err)
	}
	return encoded, nil
}

// DecodeAction unpacks the parameter values of an action.
func DecodeAction(action Action, data []byte) ([]interface{}, error) {
	args, ok := actionArguments[action]
	if !ok {
		return nil, fmt.Errorf("abi: no parameter layout for action %s", action)
	}
	values, err := args.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("abi: decode %s: %w", action, err)
	}
	return values, nil
}

// SwapExactInSingleParams is the single-hop exact-input swap tuple.
type SwapExactInSingleParams struct {
	PoolKey          PoolKey
	ZeroForOne       bool
	AmountIn         *big.Int
	AmountOutMinimum *big.Int
	HookData         []byte
}

// SwapExactInParams is the multi-hop exact-input swap tuple.
type SwapExactInParams struct {
	CurrencyIn       common.Address
	Path             []PathKey
	AmountIn         *big.Int
	AmountOutMinimum *big.Int
}

// SwapExactOutSingleParams is the single-hop exact-output swap tuple.
type SwapExactOutSingleParams struct {
	PoolKey         PoolKey
	ZeroForOne      bool
	AmountOut       *big.Int
	AmountInMaximum *big.Int
	HookData        []byte
}

// SwapExactOutParams is the multi-hop exact-output swap tuple.
type SwapExactOutParams struct {
	CurrencyOut     common.Address
	Path            []PathKey
	AmountOut       *big.Int
	AmountInMaximum *big.Int
}

var plannerArgs = gethabi.Arguments{
	{Name: "actions", Type: bytesType},
	{Name: "params", Type: mustType("bytes[]", nil)},
}

// EncodePlan packs the action byte string and parameter list the way
// modifyLiquidities expects its unlock data.
func EncodePlan(actions []byte, params [][]byte) ([]byte, error) {
	return plannerArgs.Pack(actions, params)
}

// DecodePlan splits unlock data back into the action byte string and
// parameter list.
func DecodePlan(data []byte) ([]byte, [][]byte, error) {
	values, err := plannerArgs.Unpack(data)
	if err != nil {
		return nil, nil, fmt.Errorf("abi: decode plan: %w", err)
	}
	actions, ok := values[0].([]byte)
	if !ok {
		return nil, nil, fmt.Errorf("abi: decode plan: unexpected actions type %T", values[0])
	}
	params, ok := values[1].([][]byte)
	if !ok {
		return nil, nil, fmt.Errorf("abi: decode plan: unexpected params type %T", values[1])
	}
	return actions, params, nil
}
