package extensions

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestUnpackSlot0(t *testing.T) {
	var value common.Hash
	// lpFee 3000
	value[3], value[4], value[5] = 0x00, 0x0B, 0xB8
	// protocolFee 0
	// tick -202045 (0xFCEAC3 as int24)
	value[9], value[10], value[11] = 0xFC, 0xEA, 0xC3
	// sqrtPriceX96 2^96
	value[12] = 0x10

	slot0 := unpackSlot0(value)
	if slot0.LpFee != 3000 {
		t.Fatalf("lp fee: got %d, want 3000", slot0.LpFee)
	}
	if slot0.ProtocolFee != 0 {
		t.Fatalf("protocol fee: got %d, want 0", slot0.ProtocolFee)
	}
	if slot0.Tick != -202045 {
		t.Fatalf("tick: got %d, want -202045", slot0.Tick)
	}
	want := new(big.Int).Lsh(big.NewInt(1), 156)
	if slot0.SqrtPriceX96.Cmp(want) != 0 {
		t.Fatalf("sqrt price: got %s, want %s", slot0.SqrtPriceX96, want)
	}
}

func TestUnpackSlot0_PositiveTick(t *testing.T) {
	var value common.Hash
	value[9], value[10], value[11] = 0x00, 0x00, 0x64
	slot0 := unpackSlot0(value)
	if slot0.Tick != 100 {
		t.Fatalf("tick: got %d, want 100", slot0.Tick)
	}
}

func TestSignedWord(t *testing.T) {
	if got := signedWord(-1); got != common.MaxHash {
		t.Fatalf("signed word -1: got %s", got.Hex())
	}
	if got := signedWord(255); got != common.BigToHash(big.NewInt(255)) {
		t.Fatalf("signed word 255: got %s", got.Hex())
	}
}

func TestStorageSlots_Distinct(t *testing.T) {
	poolID := common.HexToHash("0x01")
	otherPool := common.HexToHash("0x02")

	if common.BigToHash(poolStateSlot(poolID)) == common.BigToHash(poolStateSlot(otherPool)) {
		t.Fatal("pools should occupy different state slots")
	}
	if tickInfoSlot(poolID, -60) == tickInfoSlot(poolID, 60) {
		t.Fatal("ticks should occupy different slots")
	}
	if tickBitmapSlot(poolID, -1) == tickBitmapSlot(poolID, 0) {
		t.Fatal("bitmap words should occupy different slots")
	}
	key := common.HexToHash("0x03")
	if positionInfoSlot(poolID, key) == positionInfoSlot(otherPool, key) {
		t.Fatal("position slots should depend on the pool")
	}
}
