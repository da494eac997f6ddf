package utils

import "math/big"

// Tick bounds and price limits of the v4 core contracts.
const (
	MinTick = -887272
	MaxTick = 887272
)

var (
	// MinSqrtRatio is the sqrt price at MinTick.
	MinSqrtRatio = big.NewInt(4295128739)
	// MaxSqrtRatio is the sqrt price at MaxTick.
	MaxSqrtRatio, _ = new(big.Int).SetString("1461446703485210103287273052203988822378723970342", 10)

	Q96  = new(big.Int).Lsh(big.NewInt(1), 96)
	Q192 = new(big.Int).Lsh(big.NewInt(1), 192)

	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	MaxUint160 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 160), big.NewInt(1))
	MaxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// MaxFee is the denominator of fee amounts: one hundred percent in
// hundredths of a bip.
var MaxFee = big.NewInt(1_000_000)

// DynamicFeeFlag marks a pool whose fee is controlled by its hook.
const DynamicFeeFlag = 0x800000
