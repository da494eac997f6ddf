package abi_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"v4sdk/abi"
)

func TestPoolKeyEncode(t *testing.T) {
	key := abi.NewPoolKey(common.Address{}, common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 500, 10, common.Address{})

	data, err := key.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Five static fields, one word each.
	if len(data) != 160 {
		t.Fatalf("length: got %d, want 160", len(data))
	}
}

func TestPoolKeyID_Mainnet(t *testing.T) {
	// The mainnet ETH/USDC 0.05% pool.
	key := abi.NewPoolKey(common.Address{}, common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 500, 10, common.Address{})

	id, err := key.ID()
	if err != nil {
		t.Fatalf("id: %v", err)
	}
	want := common.HexToHash("0x21c67e77068de97969ba93d4aab21826d33ca12bb9f565d8496e8fda8a82ca27")
	if id != want {
		t.Fatalf("id: got %s, want %s", id.Hex(), want.Hex())
	}
}

func TestPoolKeyID_Distinct(t *testing.T) {
	a := abi.NewPoolKey(common.Address{}, common.HexToAddress("0x02"), 500, 10, common.Address{})
	b := abi.NewPoolKey(common.Address{}, common.HexToAddress("0x02"), 3000, 60, common.Address{})

	idA, err := a.ID()
	if err != nil {
		t.Fatalf("id: %v", err)
	}
	idB, err := b.ID()
	if err != nil {
		t.Fatalf("id: %v", err)
	}
	if idA == idB {
		t.Fatal("different fee tiers should hash differently")
	}
}

func TestNewPoolKey_Fields(t *testing.T) {
	key := abi.NewPoolKey(common.HexToAddress("0x01"), common.HexToAddress("0x02"), 3000, 60, common.HexToAddress("0x03"))
	if key.Fee.Cmp(big.NewInt(3000)) != 0 {
		t.Fatalf("fee: got %s", key.Fee)
	}
	if key.TickSpacing.Cmp(big.NewInt(60)) != 0 {
		t.Fatalf("tick spacing: got %s", key.TickSpacing)
	}
}
