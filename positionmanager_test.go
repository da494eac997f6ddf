package v4sdk_test

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"v4sdk"
	"v4sdk/abi"
	"v4sdk/entities"
	"v4sdk/planner"
	"v4sdk/testutil"
)

var (
	testDeadline  = big.NewInt(1_700_000_000)
	testTolerance = entities.NewPercentFromInts(50, 10_000)
	testRecipient = common.HexToAddress("0x00000000000000000000000000000000000000AA")
)

func testPosition(t *testing.T, currencyA, currencyB entities.Currency) *entities.Position {
	t.Helper()
	pool := testutil.NewTestPool(currencyA, currencyB)
	position, err := entities.NewPosition(pool, big.NewInt(1_000_000_000), -testutil.TickSpacing, testutil.TickSpacing)
	if err != nil {
		t.Fatalf("new position: %v", err)
	}
	return position
}

// parseModifyLiquidities decodes modifyLiquidities calldata back into
// its planned actions.
func parseModifyLiquidities(t *testing.T, calldata []byte) []planner.PlannedAction {
	t.Helper()
	method := v4abiMethod(t, "modifyLiquidities")
	if !bytes.HasPrefix(calldata, method.ID) {
		t.Fatalf("selector: got %x, want %x", calldata[:4], method.ID)
	}
	values, err := method.Inputs.Unpack(calldata[4:])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	steps, err := planner.Parse(values[0].([]byte))
	if err != nil {
		t.Fatalf("parse plan: %v", err)
	}
	return steps
}

func v4abiMethod(t *testing.T, name string) gethabi.Method {
	t.Helper()
	method, ok := abi.PositionManager().Methods[name]
	if !ok {
		t.Fatalf("missing method %s", name)
	}
	return method
}

func assertActions(t *testing.T, steps []planner.PlannedAction, want ...abi.Action) {
	t.Helper()
	if len(steps) != len(want) {
		t.Fatalf("steps: got %d, want %d", len(steps), len(want))
	}
	for i, action := range want {
		if steps[i].Action != action {
			t.Fatalf("step %d: got %s, want %s", i, steps[i].Action, action)
		}
	}
}

func TestCreateCallParameters(t *testing.T) {
	key := abi.NewPoolKey(common.Address{}, testutil.USDC.Address(), 500, 10, common.Address{})
	params, err := v4sdk.CreateCallParameters(key, testutil.SqrtPriceOneToOne)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !bytes.HasPrefix(params.Calldata, v4abiMethod(t, "initializePool").ID) {
		t.Fatal("calldata should call initializePool")
	}
	if params.Value.Sign() != 0 {
		t.Fatalf("value: got %s, want 0", params.Value)
	}
}

func TestAddCallParameters_Mint(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)

	params, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
		Recipient:         testRecipient,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	steps := parseModifyLiquidities(t, params.Calldata)
	assertActions(t, steps, abi.ActionMintPosition, abi.ActionSettlePair)
	if params.Value.Sign() != 0 {
		t.Fatalf("value: got %s, want 0", params.Value)
	}

	// The mint carries the recipient as owner.
	values, err := abi.DecodeAction(abi.ActionMintPosition, steps[0].Params)
	if err != nil {
		t.Fatalf("decode mint: %v", err)
	}
	if got := values[6].(common.Address); got != testRecipient {
		t.Fatalf("owner: got %s, want %s", got.Hex(), testRecipient.Hex())
	}
}

func TestAddCallParameters_Increase(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)

	params, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
		TokenID:           big.NewInt(42),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	steps := parseModifyLiquidities(t, params.Calldata)
	assertActions(t, steps, abi.ActionIncreaseLiquidity, abi.ActionSettlePair)

	values, err := abi.DecodeAction(abi.ActionIncreaseLiquidity, steps[0].Params)
	if err != nil {
		t.Fatalf("decode increase: %v", err)
	}
	if got := values[0].(*big.Int); got.Int64() != 42 {
		t.Fatalf("token id: got %s, want 42", got)
	}
	if got := values[1].(*big.Int); got.Cmp(position.Liquidity) != 0 {
		t.Fatalf("liquidity: got %s, want %s", got, position.Liquidity)
	}
}

func TestAddCallParameters_Native(t *testing.T) {
	position := testPosition(t, testutil.Ether, testutil.USDC)

	params, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
		Recipient:         testRecipient,
		UseNative:         true,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	steps := parseModifyLiquidities(t, params.Calldata)
	assertActions(t, steps, abi.ActionMintPosition, abi.ActionSettlePair, abi.ActionSweep)

	maximums, err := position.MintAmountsWithSlippage(testTolerance)
	if err != nil {
		t.Fatalf("maximums: %v", err)
	}
	if params.Value.Cmp(maximums.Amount0) != 0 {
		t.Fatalf("value: got %s, want %s", params.Value, maximums.Amount0)
	}

	// The sweep returns leftover native funds to the caller.
	values, err := abi.DecodeAction(abi.ActionSweep, steps[2].Params)
	if err != nil {
		t.Fatalf("decode sweep: %v", err)
	}
	if got := values[0].(common.Address); got != (common.Address{}) {
		t.Fatalf("sweep currency: got %s, want native", got.Hex())
	}
	if got := values[1].(common.Address); got != v4sdk.MsgSender {
		t.Fatalf("sweep recipient: got %s, want msg sender sentinel", got.Hex())
	}
}

func TestAddCallParameters_NativeOnTokenPool(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)
	_, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
		UseNative:         true,
	})
	if !errors.Is(err, v4sdk.ErrNoNative) {
		t.Fatalf("got %v, want ErrNoNative", err)
	}
}

func TestAddCallParameters_Migrate(t *testing.T) {
	position := testPosition(t, testutil.Ether, testutil.USDC)

	params, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
		Recipient:         testRecipient,
		UseNative:         true,
		Migrate:           true,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	steps := parseModifyLiquidities(t, params.Calldata)
	assertActions(t, steps, abi.ActionMintPosition, abi.ActionSettle, abi.ActionSettle, abi.ActionSweep)
	if params.Value.Sign() != 0 {
		t.Fatal("migrating should not attach native value")
	}

	// Settles draw on funds already held by the position manager.
	values, err := abi.DecodeAction(abi.ActionSettle, steps[1].Params)
	if err != nil {
		t.Fatalf("decode settle: %v", err)
	}
	if got := values[2].(bool); got {
		t.Fatal("migrate settle should not pay from the user")
	}
}

func TestAddCallParameters_MigrateTokenPool(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)

	params, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
		Recipient:         testRecipient,
		Migrate:           true,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	steps := parseModifyLiquidities(t, params.Calldata)
	assertActions(t, steps, abi.ActionMintPosition, abi.ActionSettle, abi.ActionSettle)
	if params.Value.Sign() != 0 {
		t.Fatal("migrating should not attach native value")
	}

	for _, step := range steps[1:] {
		values, err := abi.DecodeAction(abi.ActionSettle, step.Params)
		if err != nil {
			t.Fatalf("decode settle: %v", err)
		}
		if got := values[2].(bool); got {
			t.Fatal("migrate settle should not pay from the user")
		}
	}
}

func TestAddCallParameters_MigrateWithBatchPermit(t *testing.T) {
	position := testPosition(t, testutil.Ether, testutil.USDC)

	_, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
		Recipient:         testRecipient,
		UseNative:         true,
		Migrate:           true,
		BatchPermit:       &v4sdk.BatchPermitOptions{},
	})
	if !errors.Is(err, v4sdk.ErrMigrateWithPermit) {
		t.Fatalf("got %v, want ErrMigrateWithPermit", err)
	}
}

func TestAddCallParameters_NoSlippageTolerance(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)

	_, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		Deadline:  testDeadline,
		Recipient: testRecipient,
	})
	if !errors.Is(err, entities.ErrNoSlippageTolerance) {
		t.Fatalf("got %v, want ErrNoSlippageTolerance", err)
	}
}

func TestAddCallParameters_CreatePool(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)

	if _, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
		CreatePool:        true,
	}); !errors.Is(err, v4sdk.ErrNoSqrtPrice) {
		t.Fatalf("got %v, want ErrNoSqrtPrice", err)
	}

	params, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
		CreatePool:        true,
		SqrtPriceX96:      testutil.SqrtPriceOneToOne,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	method := v4abiMethod(t, "multicall")
	if !bytes.HasPrefix(params.Calldata, method.ID) {
		t.Fatal("creating a pool should wrap calls in a multicall")
	}
	values, err := method.Inputs.Unpack(params.Calldata[4:])
	if err != nil {
		t.Fatalf("unpack multicall: %v", err)
	}
	calls := values[0].([][]byte)
	if len(calls) != 2 {
		t.Fatalf("calls: got %d, want 2", len(calls))
	}
	if !bytes.HasPrefix(calls[0], v4abiMethod(t, "initializePool").ID) {
		t.Fatal("first call should initialize the pool")
	}
	steps := parseModifyLiquidities(t, calls[1])
	assertActions(t, steps, abi.ActionMintPosition, abi.ActionSettlePair)
}

func TestAddCallParameters_BatchPermit(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)

	params, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
		Recipient:         testRecipient,
		BatchPermit: &v4sdk.BatchPermitOptions{
			Owner: testRecipient,
			PermitBatch: abi.PermitBatch{
				Details: []abi.PermitDetails{{
					Token:      testutil.Token0.Address(),
					Amount:     big.NewInt(1000),
					Expiration: testDeadline,
					Nonce:      new(big.Int),
				}},
				Spender:     testRecipient,
				SigDeadline: testDeadline,
			},
			Signature: make([]byte, 65),
		},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	method := v4abiMethod(t, "multicall")
	if !bytes.HasPrefix(params.Calldata, method.ID) {
		t.Fatal("a batch permit should wrap calls in a multicall")
	}
	values, err := method.Inputs.Unpack(params.Calldata[4:])
	if err != nil {
		t.Fatalf("unpack multicall: %v", err)
	}
	calls := values[0].([][]byte)
	if len(calls) != 2 {
		t.Fatalf("calls: got %d, want 2", len(calls))
	}
	if !bytes.HasPrefix(calls[0], v4abiMethod(t, "permitBatch").ID) {
		t.Fatal("first call should forward the permit")
	}
}

func TestAddCallParameters_ZeroLiquidity(t *testing.T) {
	pool := testutil.NewTestPool(testutil.Token0, testutil.Token1)
	position, err := entities.NewPosition(pool, new(big.Int), -testutil.TickSpacing, testutil.TickSpacing)
	if err != nil {
		t.Fatalf("new position: %v", err)
	}
	if _, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
	}); !errors.Is(err, entities.ErrZeroLiquidity) {
		t.Fatalf("got %v, want ErrZeroLiquidity", err)
	}
}

func TestRemoveCallParameters_Burn(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)

	params, err := v4sdk.RemoveCallParameters(position, v4sdk.RemoveLiquidityOptions{
		SlippageTolerance:   testTolerance,
		Deadline:            testDeadline,
		TokenID:             big.NewInt(7),
		LiquidityPercentage: entities.NewPercentFromInts(1, 1),
		BurnToken:           true,
	})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	steps := parseModifyLiquidities(t, params.Calldata)
	assertActions(t, steps, abi.ActionBurnPosition, abi.ActionTakePair)

	values, err := abi.DecodeAction(abi.ActionTakePair, steps[1].Params)
	if err != nil {
		t.Fatalf("decode take pair: %v", err)
	}
	if got := values[2].(common.Address); got != v4sdk.MsgSender {
		t.Fatalf("take recipient: got %s, want msg sender sentinel", got.Hex())
	}
}

func TestRemoveCallParameters_Partial(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)

	params, err := v4sdk.RemoveCallParameters(position, v4sdk.RemoveLiquidityOptions{
		SlippageTolerance:   testTolerance,
		Deadline:            testDeadline,
		TokenID:             big.NewInt(7),
		LiquidityPercentage: entities.NewPercentFromInts(1, 2),
	})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	steps := parseModifyLiquidities(t, params.Calldata)
	assertActions(t, steps, abi.ActionDecreaseLiquidity, abi.ActionTakePair)

	values, err := abi.DecodeAction(abi.ActionDecreaseLiquidity, steps[0].Params)
	if err != nil {
		t.Fatalf("decode decrease: %v", err)
	}
	half := new(big.Int).Rsh(position.Liquidity, 1)
	if got := values[1].(*big.Int); got.Cmp(half) != 0 {
		t.Fatalf("liquidity: got %s, want %s", got, half)
	}
}

func TestRemoveCallParameters_Validation(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)

	if _, err := v4sdk.RemoveCallParameters(position, v4sdk.RemoveLiquidityOptions{
		SlippageTolerance:   testTolerance,
		Deadline:            testDeadline,
		TokenID:             big.NewInt(7),
		LiquidityPercentage: entities.NewPercentFromInts(1, 2),
		BurnToken:           true,
	}); !errors.Is(err, v4sdk.ErrPartialBurn) {
		t.Fatalf("got %v, want ErrPartialBurn", err)
	}

	if _, err := v4sdk.RemoveCallParameters(position, v4sdk.RemoveLiquidityOptions{
		SlippageTolerance: testTolerance,
		Deadline:          testDeadline,
		TokenID:           big.NewInt(7),
	}); !errors.Is(err, v4sdk.ErrZeroPercent) {
		t.Fatalf("got %v, want ErrZeroPercent", err)
	}
}

func TestRemoveCallParameters_Permit(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)

	params, err := v4sdk.RemoveCallParameters(position, v4sdk.RemoveLiquidityOptions{
		SlippageTolerance:   testTolerance,
		Deadline:            testDeadline,
		TokenID:             big.NewInt(7),
		LiquidityPercentage: entities.NewPercentFromInts(1, 1),
		BurnToken:           true,
		Permit: &v4sdk.NFTPermitOptions{
			Spender:   testRecipient,
			TokenID:   big.NewInt(7),
			Deadline:  testDeadline,
			Nonce:     new(big.Int),
			Signature: make([]byte, 65),
		},
	})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	method := v4abiMethod(t, "multicall")
	if !bytes.HasPrefix(params.Calldata, method.ID) {
		t.Fatal("a permit should wrap calls in a multicall")
	}
}

func TestCollectCallParameters(t *testing.T) {
	position := testPosition(t, testutil.Token0, testutil.Token1)

	params, err := v4sdk.CollectCallParameters(position, v4sdk.CollectOptions{
		Deadline:  testDeadline,
		TokenID:   big.NewInt(7),
		Recipient: testRecipient,
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	steps := parseModifyLiquidities(t, params.Calldata)
	assertActions(t, steps, abi.ActionDecreaseLiquidity, abi.ActionTakePair)

	// Collecting decreases zero liquidity.
	values, err := abi.DecodeAction(abi.ActionDecreaseLiquidity, steps[0].Params)
	if err != nil {
		t.Fatalf("decode decrease: %v", err)
	}
	if got := values[1].(*big.Int); got.Sign() != 0 {
		t.Fatalf("liquidity: got %s, want 0", got)
	}
	take, err := abi.DecodeAction(abi.ActionTakePair, steps[1].Params)
	if err != nil {
		t.Fatalf("decode take pair: %v", err)
	}
	if got := take[2].(common.Address); got != testRecipient {
		t.Fatalf("take recipient: got %s, want %s", got.Hex(), testRecipient.Hex())
	}
}

func TestTransferCallParameters(t *testing.T) {
	params, err := v4sdk.TransferCallParameters(v4sdk.TransferOptions{
		Sender:    testRecipient,
		Recipient: common.HexToAddress("0xBB"),
		TokenID:   big.NewInt(7),
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !bytes.HasPrefix(params.Calldata, v4abiMethod(t, "transferFrom").ID) {
		t.Fatal("calldata should call transferFrom")
	}
}
