// Package v4sdk builds calldata for the v4 position manager:
// initializing pools, minting and modifying positions, collecting
// fees and transferring position tokens.
package v4sdk

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"v4sdk/abi"
	"v4sdk/entities"
	"v4sdk/planner"
)

var (
	ErrNoSqrtPrice       = errors.New("creating a pool requires an initial sqrt price")
	ErrPartialBurn       = errors.New("burning requires the full liquidity percentage")
	ErrNoNative          = errors.New("pool has no native currency to pay with")
	ErrZeroPercent       = errors.New("liquidity percentage must be positive")
	ErrMigrateWithPermit = errors.New("migration cannot be combined with a batch permit")
)

// MsgSender is the recipient sentinel the position manager replaces
// with the caller.
var MsgSender = common.HexToAddress("0x0000000000000000000000000000000000000001")

// MethodParameters is calldata ready to send to the position manager
// together with the native value to attach.
type MethodParameters struct {
	Calldata []byte
	Value    *big.Int
}

// BatchPermitOptions forwards a signed Permit2 batch approval ahead
// of the liquidity call.
type BatchPermitOptions struct {
	Owner       common.Address
	PermitBatch abi.PermitBatch
	Signature   []byte
}

// NFTPermitOptions forwards a signed ERC721 permit for a position
// token.
type NFTPermitOptions struct {
	Spender   common.Address
	TokenID   *big.Int
	Deadline  *big.Int
	Nonce     *big.Int
	Signature []byte
}

// AddLiquidityOptions configures AddCallParameters. A nil TokenID
// mints a new position to Recipient; otherwise liquidity is added to
// the existing token.
type AddLiquidityOptions struct {
	SlippageTolerance *entities.Percent
	Deadline          *big.Int
	HookData          []byte

	// UseNative pays the pool's native side with attached value.
	UseNative   bool
	BatchPermit *BatchPermitOptions

	// Mint options.
	Recipient    common.Address
	CreatePool   bool
	SqrtPriceX96 *big.Int
	// Migrate settles from funds already held by the position
	// manager instead of the caller.
	Migrate bool

	// Increase options.
	TokenID *big.Int
}

// RemoveLiquidityOptions configures RemoveCallParameters.
type RemoveLiquidityOptions struct {
	SlippageTolerance *entities.Percent
	Deadline          *big.Int
	HookData          []byte

	TokenID *big.Int
	// LiquidityPercentage is the share of the position to withdraw.
	LiquidityPercentage *entities.Percent
	// BurnToken burns the position token; the full percentage must
	// be withdrawn.
	BurnToken bool
	Permit    *NFTPermitOptions
}

// CollectOptions configures CollectCallParameters.
type CollectOptions struct {
	Deadline *big.Int
	HookData []byte

	TokenID   *big.Int
	Recipient common.Address
}

// TransferOptions configures TransferCallParameters.
type TransferOptions struct {
	Sender    common.Address
	Recipient common.Address
	TokenID   *big.Int
}

// CreateCallParameters builds the calldata to initialize a pool at
// the given starting price.
func CreateCallParameters(key abi.PoolKey, sqrtPriceX96 *big.Int) (MethodParameters, error) {
	calldata, err := abi.PackInitializePool(key, sqrtPriceX96)
	if err != nil {
		return MethodParameters{}, err
	}
	return MethodParameters{Calldata: calldata, Value: new(big.Int)}, nil
}

// AddCallParameters builds the calldata to mint the position or add
// its liquidity to an existing token.
func AddCallParameters(position *entities.Position, options AddLiquidityOptions) (MethodParameters, error) {
	if position.Liquidity == nil || position.Liquidity.Sign() <= 0 {
		return MethodParameters{}, entities.ErrZeroLiquidity
	}
	if options.Migrate && options.BatchPermit != nil {
		return MethodParameters{}, ErrMigrateWithPermit
	}

	var calldataList [][]byte
	plan := planner.NewV4PositionPlanner()
	isMint := options.TokenID == nil

	if isMint && options.CreatePool {
		if options.SqrtPriceX96 == nil {
			return MethodParameters{}, ErrNoSqrtPrice
		}
		initialize, err := abi.PackInitializePool(position.Pool.Key(), options.SqrtPriceX96)
		if err != nil {
			return MethodParameters{}, err
		}
		calldataList = append(calldataList, initialize)
	}

	maximums, err := position.MintAmountsWithSlippage(options.SlippageTolerance)
	if err != nil {
		return MethodParameters{}, err
	}

	if options.BatchPermit != nil {
		permit, err := abi.PackPermitBatch(options.BatchPermit.Owner, options.BatchPermit.PermitBatch, options.BatchPermit.Signature)
		if err != nil {
			return MethodParameters{}, err
		}
		calldataList = append(calldataList, permit)
	}

	if isMint {
		err = plan.AddMint(position.Pool, position.TickLower, position.TickUpper, position.Liquidity, maximums.Amount0, maximums.Amount1, options.Recipient, options.HookData)
	} else {
		err = plan.AddIncrease(options.TokenID, position.Liquidity, maximums.Amount0, maximums.Amount1, options.HookData)
	}
	if err != nil {
		return MethodParameters{}, err
	}

	value := new(big.Int)
	if options.UseNative && !position.Pool.Currency0.IsNative() {
		return MethodParameters{}, ErrNoNative
	}
	switch {
	case options.Migrate:
		// funds were moved to the position manager beforehand
		if err := plan.AddSettle(position.Pool.Currency0, false, planner.OpenDelta); err != nil {
			return MethodParameters{}, err
		}
		if err := plan.AddSettle(position.Pool.Currency1, false, planner.OpenDelta); err != nil {
			return MethodParameters{}, err
		}
		if options.UseNative {
			if err := plan.AddSweep(position.Pool.Currency0, MsgSender); err != nil {
				return MethodParameters{}, err
			}
		}
	case options.UseNative:
		value.Set(maximums.Amount0)
		if err := plan.AddSettlePair(position.Pool.Currency0, position.Pool.Currency1); err != nil {
			return MethodParameters{}, err
		}
		// sweeping must happen after settling
		if err := plan.AddSweep(position.Pool.Currency0, MsgSender); err != nil {
			return MethodParameters{}, err
		}
	default:
		if err := plan.AddSettlePair(position.Pool.Currency0, position.Pool.Currency1); err != nil {
			return MethodParameters{}, err
		}
	}

	modify, err := encodeModifyLiquidities(plan, options.Deadline)
	if err != nil {
		return MethodParameters{}, err
	}
	calldataList = append(calldataList, modify)

	calldata, err := encodeMulticall(calldataList)
	if err != nil {
		return MethodParameters{}, err
	}
	return MethodParameters{Calldata: calldata, Value: value}, nil
}

// RemoveCallParameters builds the calldata to withdraw some or all of
// the position's liquidity, burning the token when requested.
func RemoveCallParameters(position *entities.Position, options RemoveLiquidityOptions) (MethodParameters, error) {
	var calldataList [][]byte
	plan := planner.NewV4PositionPlanner()

	if options.LiquidityPercentage == nil || options.LiquidityPercentage.Fraction.Numerator.Sign() <= 0 {
		return MethodParameters{}, ErrZeroPercent
	}

	if options.BurnToken {
		if !options.LiquidityPercentage.Fraction.EqualTo(entities.NewFractionFromInt(1)) {
			return MethodParameters{}, ErrPartialBurn
		}
		if options.Permit != nil {
			permit, err := abi.PackPermit(options.Permit.Spender, options.Permit.TokenID, options.Permit.Deadline, options.Permit.Nonce, options.Permit.Signature)
			if err != nil {
				return MethodParameters{}, err
			}
			calldataList = append(calldataList, permit)
		}
		minimums, err := position.BurnAmountsWithSlippage(options.SlippageTolerance)
		if err != nil {
			return MethodParameters{}, err
		}
		if err := plan.AddBurn(options.TokenID, minimums.Amount0, minimums.Amount1, options.HookData); err != nil {
			return MethodParameters{}, err
		}
	} else {
		partialLiquidity := options.LiquidityPercentage.Fraction.Mul(entities.NewFraction(position.Liquidity, nil)).Quotient()
		partial, err := entities.NewPosition(position.Pool, partialLiquidity, position.TickLower, position.TickUpper)
		if err != nil {
			return MethodParameters{}, err
		}
		if partial.Liquidity.Sign() <= 0 {
			return MethodParameters{}, entities.ErrZeroLiquidity
		}
		minimums, err := partial.BurnAmountsWithSlippage(options.SlippageTolerance)
		if err != nil {
			return MethodParameters{}, err
		}
		if err := plan.AddDecrease(options.TokenID, partial.Liquidity, minimums.Amount0, minimums.Amount1, options.HookData); err != nil {
			return MethodParameters{}, err
		}
	}

	if err := plan.AddTakePair(position.Pool.Currency0, position.Pool.Currency1, MsgSender); err != nil {
		return MethodParameters{}, err
	}

	modify, err := encodeModifyLiquidities(plan, options.Deadline)
	if err != nil {
		return MethodParameters{}, err
	}
	calldataList = append(calldataList, modify)

	calldata, err := encodeMulticall(calldataList)
	if err != nil {
		return MethodParameters{}, err
	}
	return MethodParameters{Calldata: calldata, Value: new(big.Int)}, nil
}

// CollectCallParameters builds the calldata to collect the position's
// accrued fees: a zero-liquidity decrease followed by a take of both
// currencies.
func CollectCallParameters(position *entities.Position, options CollectOptions) (MethodParameters, error) {
	plan := planner.NewV4PositionPlanner()

	if err := plan.AddDecrease(options.TokenID, new(big.Int), new(big.Int), new(big.Int), options.HookData); err != nil {
		return MethodParameters{}, err
	}
	if err := plan.AddTakePair(position.Pool.Currency0, position.Pool.Currency1, options.Recipient); err != nil {
		return MethodParameters{}, err
	}

	calldata, err := encodeModifyLiquidities(plan, options.Deadline)
	if err != nil {
		return MethodParameters{}, err
	}
	return MethodParameters{Calldata: calldata, Value: new(big.Int)}, nil
}

// TransferCallParameters builds the calldata to transfer a position
// token.
func TransferCallParameters(options TransferOptions) (MethodParameters, error) {
	calldata, err := abi.PackTransferFrom(options.Sender, options.Recipient, options.TokenID)
	if err != nil {
		return MethodParameters{}, err
	}
	return MethodParameters{Calldata: calldata, Value: new(big.Int)}, nil
}

func encodeModifyLiquidities(plan *planner.V4PositionPlanner, deadline *big.Int) ([]byte, error) {
	unlockData, err := plan.Finalize()
	if err != nil {
		return nil, err
	}
	return abi.PackModifyLiquidities(unlockData, deadline)
}

// encodeMulticall wraps the calls in a multicall when there is more
// than one.
func encodeMulticall(calls [][]byte) ([]byte, error) {
	if len(calls) == 1 {
		return calls[0], nil
	}
	return abi.PackMulticall(calls)
}
