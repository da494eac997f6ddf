package planner_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"v4sdk/abi"
	"v4sdk/entities"
	"v4sdk/planner"
	"v4sdk/testutil"
)

func exactInTrade(t *testing.T, pools []*entities.Pool, input, output entities.Currency, amountIn int64) *entities.Trade {
	t.Helper()
	route, err := entities.NewRoute(pools, input, output)
	if err != nil {
		t.Fatalf("new route: %v", err)
	}
	amount, err := entities.FromRawAmount(input, big.NewInt(amountIn))
	if err != nil {
		t.Fatalf("from raw: %v", err)
	}
	trade, err := entities.ExactIn(context.Background(), route, amount)
	if err != nil {
		t.Fatalf("exact in: %v", err)
	}
	return trade
}

func TestAddAction_Appends(t *testing.T) {
	p := planner.NewV4Planner()
	if err := p.AddSettle(testutil.USDC, true, big.NewInt(100)); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if err := p.AddTake(testutil.USDC, common.HexToAddress("0x01"), nil); err != nil {
		t.Fatalf("take: %v", err)
	}

	if len(p.Actions) != 2 || len(p.Params) != 2 {
		t.Fatalf("plan length: %d actions, %d params", len(p.Actions), len(p.Params))
	}
	if abi.Action(p.Actions[0]) != abi.ActionSettle || abi.Action(p.Actions[1]) != abi.ActionTake {
		t.Fatalf("actions: got %x", p.Actions)
	}

	// The open-delta take encodes a zero amount.
	values, err := abi.DecodeAction(abi.ActionTake, p.Params[1])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := values[2].(*big.Int); got.Sign() != 0 {
		t.Fatalf("open delta amount: got %s, want 0", got)
	}
}

func TestAddTrade_SinglePool(t *testing.T) {
	pool := testutil.NewTestPoolWithLiquidity(testutil.Token0, testutil.Token1, 1_000_000_000_000_000_000)
	trade := exactInTrade(t, []*entities.Pool{pool}, testutil.Token0, testutil.Token1, 10_000)

	p := planner.NewV4Planner()
	if err := p.AddTrade(trade, entities.NewPercentFromInts(1, 100)); err != nil {
		t.Fatalf("add trade: %v", err)
	}
	if abi.Action(p.Actions[0]) != abi.ActionSwapExactInSingle {
		t.Fatalf("action: got %s", abi.Action(p.Actions[0]))
	}
	if _, err := abi.DecodeAction(abi.ActionSwapExactInSingle, p.Params[0]); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestAddTrade_MultiHop(t *testing.T) {
	pool01 := testutil.NewTestPoolWithLiquidity(testutil.Token0, testutil.Token1, 1_000_000_000_000_000_000)
	pool12 := testutil.NewTestPoolWithLiquidity(testutil.Token1, testutil.Token2, 1_000_000_000_000_000_000)
	trade := exactInTrade(t, []*entities.Pool{pool01, pool12}, testutil.Token0, testutil.Token2, 10_000)

	p := planner.NewV4Planner()
	if err := p.AddTrade(trade, nil); err != nil {
		t.Fatalf("add trade: %v", err)
	}
	if abi.Action(p.Actions[0]) != abi.ActionSwapExactIn {
		t.Fatalf("action: got %s", abi.Action(p.Actions[0]))
	}
}

func TestAddTrade_ExactOutRequiresSlippage(t *testing.T) {
	pool := testutil.NewTestPoolWithLiquidity(testutil.Token0, testutil.Token1, 1_000_000_000_000_000_000)
	route, err := entities.NewRoute([]*entities.Pool{pool}, testutil.Token0, testutil.Token1)
	if err != nil {
		t.Fatalf("new route: %v", err)
	}
	amount, _ := entities.FromRawAmount(testutil.Token1, big.NewInt(9_000))
	trade, err := entities.ExactOut(context.Background(), route, amount)
	if err != nil {
		t.Fatalf("exact out: %v", err)
	}

	p := planner.NewV4Planner()
	if err := p.AddTrade(trade, nil); !errors.Is(err, planner.ErrSlippageRequired) {
		t.Fatalf("got %v, want ErrSlippageRequired", err)
	}
	if err := p.AddTrade(trade, entities.NewPercentFromInts(1, 100)); err != nil {
		t.Fatalf("add trade: %v", err)
	}
	if abi.Action(p.Actions[0]) != abi.ActionSwapExactOutSingle {
		t.Fatalf("action: got %s", abi.Action(p.Actions[0]))
	}
}

func TestAddTrade_RejectsMultipleRoutes(t *testing.T) {
	pool01 := testutil.NewTestPool(testutil.Token0, testutil.Token1)
	pool021 := testutil.NewTestPool(testutil.Token0, testutil.Token2)
	pool21 := testutil.NewTestPool(testutil.Token2, testutil.Token1)

	direct, err := entities.NewRoute([]*entities.Pool{pool01}, testutil.Token0, testutil.Token1)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	indirect, err := entities.NewRoute([]*entities.Pool{pool021, pool21}, testutil.Token0, testutil.Token1)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	in0, _ := entities.FromRawAmount(testutil.Token0, big.NewInt(100))
	out0, _ := entities.FromRawAmount(testutil.Token1, big.NewInt(98))
	trade, err := entities.CreateUncheckedTradeWithMultipleRoutes([]*entities.Swap{
		{Route: direct, InputAmount: in0, OutputAmount: out0},
		{Route: indirect, InputAmount: in0, OutputAmount: out0},
	}, entities.ExactInput)
	if err != nil {
		t.Fatalf("trade: %v", err)
	}

	p := planner.NewV4Planner()
	if err := p.AddTrade(trade, nil); !errors.Is(err, planner.ErrMultipleSwaps) {
		t.Fatalf("got %v, want ErrMultipleSwaps", err)
	}
}

func TestEncodeRouteToPath(t *testing.T) {
	pool01 := testutil.NewTestPool(testutil.Token0, testutil.Token1)
	pool12 := testutil.NewTestPool(testutil.Token1, testutil.Token2)
	route, err := entities.NewRoute([]*entities.Pool{pool01, pool12}, testutil.Token0, testutil.Token2)
	if err != nil {
		t.Fatalf("route: %v", err)
	}

	path := planner.EncodeRouteToPath(route, false)
	if len(path) != 2 {
		t.Fatalf("path length: got %d, want 2", len(path))
	}
	if path[0].IntermediateCurrency != testutil.Token1.Address() {
		t.Fatalf("first hop: got %s", path[0].IntermediateCurrency.Hex())
	}
	if path[1].IntermediateCurrency != testutil.Token2.Address() {
		t.Fatalf("second hop: got %s", path[1].IntermediateCurrency.Hex())
	}

	// Exact output walks the path backwards.
	reverse := planner.EncodeRouteToPath(route, true)
	if reverse[0].IntermediateCurrency != testutil.Token1.Address() {
		t.Fatalf("first reverse hop: got %s", reverse[0].IntermediateCurrency.Hex())
	}
	if reverse[1].IntermediateCurrency != testutil.Token0.Address() {
		t.Fatalf("second reverse hop: got %s", reverse[1].IntermediateCurrency.Hex())
	}
}

func TestFinalizeParse_RoundTrip(t *testing.T) {
	p := planner.NewV4Planner()
	if err := p.AddSettle(testutil.Ether, true, nil); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if err := p.AddTake(testutil.USDC, common.HexToAddress("0x01"), big.NewInt(5)); err != nil {
		t.Fatalf("take: %v", err)
	}

	data, err := p.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	steps, err := planner.Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("steps: got %d, want 2", len(steps))
	}
	if steps[0].Action != abi.ActionSettle || steps[1].Action != abi.ActionTake {
		t.Fatalf("actions: got %s, %s", steps[0].Action, steps[1].Action)
	}
}

func TestPositionPlanner(t *testing.T) {
	pool := testutil.NewTestPool(testutil.Ether, testutil.USDC)
	p := planner.NewV4PositionPlanner()

	if err := p.AddMint(pool, -60, 60, big.NewInt(1_000_000), big.NewInt(100), big.NewInt(200), common.HexToAddress("0x01"), nil); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := p.AddSettlePair(pool.Currency0, pool.Currency1); err != nil {
		t.Fatalf("settle pair: %v", err)
	}
	if err := p.AddSweep(pool.Currency0, common.HexToAddress("0x01")); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	want := []abi.Action{abi.ActionMintPosition, abi.ActionSettlePair, abi.ActionSweep}
	for i, action := range want {
		if abi.Action(p.Actions[i]) != action {
			t.Fatalf("step %d: got %s, want %s", i, abi.Action(p.Actions[i]), action)
		}
	}

	// The native currency settles as the zero address.
	values, err := abi.DecodeAction(abi.ActionSettlePair, p.Params[1])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := values[0].(common.Address); got != (common.Address{}) {
		t.Fatalf("currency0: got %s, want zero address", got.Hex())
	}
}

func TestPositionPlanner_DecreaseAndBurn(t *testing.T) {
	p := planner.NewV4PositionPlanner()
	if err := p.AddDecrease(big.NewInt(42), big.NewInt(500), new(big.Int), new(big.Int), nil); err != nil {
		t.Fatalf("decrease: %v", err)
	}
	if err := p.AddBurn(big.NewInt(42), new(big.Int), new(big.Int), nil); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if err := p.AddTakePair(testutil.Token0, testutil.Token1, common.HexToAddress("0x02")); err != nil {
		t.Fatalf("take pair: %v", err)
	}

	values, err := abi.DecodeAction(abi.ActionDecreaseLiquidity, p.Params[0])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := values[0].(*big.Int); got.Int64() != 42 {
		t.Fatalf("token id: got %s, want 42", got)
	}
	if got := values[1].(*big.Int); got.Int64() != 500 {
		t.Fatalf("liquidity: got %s, want 500", got)
	}
}
