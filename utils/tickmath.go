package utils

import (
	"errors"
	"math/big"
)

var (
	ErrInvalidTick      = errors.New("tick outside valid range")
	ErrInvalidSqrtRatio = errors.New("sqrt ratio outside valid range")
)

var tickMagic = [20]*big.Int{
	hexBig("fffcb933bd6fad37aa2d162d1a594001"),
	hexBig("fff97272373d413259a46990580e213a"),
	hexBig("fff2e50f5f656932ef12357cf3c7fdcc"),
	hexBig("ffe5caca7e10e4e61c3624eaa0941cd0"),
	hexBig("ffcb9843d60f6159c9db58835c926644"),
	hexBig("ff973b41fa98c081472e6896dfb254c0"),
	hexBig("ff2ea16466c96a3843ec78b326b52861"),
	hexBig("fe5dee046a99a2a811c461f1969c3053"),
	hexBig("fcbe86c7900a88aedcffc83b479aa3a4"),
	hexBig("f987a7253ac413176f2b074cf7815e54"),
	hexBig("f3392b0822b70005940c7a398e4b70f3"),
	hexBig("e7159475a2c29b7443b29c7fa6e889d9"),
	hexBig("d097f3bdfd2022b8845ad8f792aa5825"),
	hexBig("a9f746462d870fdf8a65dc1f90e061e5"),
	hexBig("70d869a156d2a1b890bb3df62baf32f7"),
	hexBig("31be135f97d08fd981231505542fcfa6"),
	hexBig("9aa508b5b7a84e1c677de54f3e99bc9"),
	hexBig("5d6af8dedb81196699c329225ee604"),
	hexBig("2216e584f5fa1ea926041bedfe98"),
	hexBig("48a170391f7dc42444e8fa2"),
}

var (
	logSqrt10001Multiplier = decBig("255738958999603826347141")
	tickLowSubtrahend      = decBig("3402992956809132418596140100660247210")
	tickHighAddend         = decBig("291339464771989622907027621153398088495")
)

func hexBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("utils: bad hex constant " + s)
	}
	return v
}

func decBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("utils: bad decimal constant " + s)
	}
	return v
}

// GetSqrtRatioAtTick returns the Q64.96 sqrt price for the given tick,
// sqrt(1.0001^tick) * 2^96.
func GetSqrtRatioAtTick(tick int) (*big.Int, error) {
	if tick < MinTick || tick > MaxTick {
		return nil, ErrInvalidTick
	}
	absTick := tick
	if absTick < 0 {
		absTick = -absTick
	}

	var ratio *big.Int
	if absTick&1 != 0 {
		ratio = new(big.Int).Set(tickMagic[0])
	} else {
		ratio = new(big.Int).Lsh(one, 128)
	}
	for i := 1; i < len(tickMagic); i++ {
		if absTick&(1<<uint(i)) != 0 {
			ratio.Mul(ratio, tickMagic[i])
			ratio.Rsh(ratio, 128)
		}
	}
	if tick > 0 {
		ratio.Quo(MaxUint256, ratio)
	}

	// Round up while converting from Q128.128 to Q64.96.
	sqrtRatio := new(big.Int).Rsh(ratio, 32)
	if new(big.Int).And(ratio, new(big.Int).Sub(new(big.Int).Lsh(one, 32), one)).Sign() != 0 {
		sqrtRatio.Add(sqrtRatio, one)
	}
	return sqrtRatio, nil
}

// GetTickAtSqrtRatio returns the greatest tick whose sqrt price is
// less than or equal to the given Q64.96 sqrt price.
func GetTickAtSqrtRatio(sqrtRatioX96 *big.Int) (int, error) {
	if sqrtRatioX96.Cmp(MinSqrtRatio) < 0 || sqrtRatioX96.Cmp(MaxSqrtRatio) >= 0 {
		return 0, ErrInvalidSqrtRatio
	}

	ratio := new(big.Int).Lsh(sqrtRatioX96, 32)
	msb := ratio.BitLen() - 1

	var r *big.Int
	if msb >= 128 {
		r = new(big.Int).Rsh(ratio, uint(msb-127))
	} else {
		r = new(big.Int).Lsh(ratio, uint(127-msb))
	}

	log2 := new(big.Int).Lsh(big.NewInt(int64(msb-128)), 64)
	for i := 0; i < 14; i++ {
		r.Mul(r, r)
		r.Rsh(r, 127)
		f := new(big.Int).Rsh(r, 128)
		log2.Or(log2, new(big.Int).Lsh(f, uint(63-i)))
		r.Rsh(r, uint(f.Uint64()))
	}

	logSqrt10001 := new(big.Int).Mul(log2, logSqrt10001Multiplier)
	tickLow := new(big.Int).Rsh(new(big.Int).Sub(logSqrt10001, tickLowSubtrahend), 128)
	tickHigh := new(big.Int).Rsh(new(big.Int).Add(logSqrt10001, tickHighAddend), 128)

	low, high := int(tickLow.Int64()), int(tickHigh.Int64())
	if low == high {
		return low, nil
	}
	ratioAtHigh, err := GetSqrtRatioAtTick(high)
	if err != nil {
		return 0, err
	}
	if ratioAtHigh.Cmp(sqrtRatioX96) <= 0 {
		return high, nil
	}
	return low, nil
}

// NearestUsableTick returns the closest tick that is a multiple of the
// tick spacing, clamped to the usable range.
func NearestUsableTick(tick, tickSpacing int) int {
	if tickSpacing <= 0 {
		panic("utils: tick spacing must be positive")
	}
	if tick < MinTick || tick > MaxTick {
		panic("utils: tick outside valid range")
	}
	rounded := divRound(tick, tickSpacing) * tickSpacing
	if rounded < MinTick {
		return rounded + tickSpacing
	}
	if rounded > MaxTick {
		return rounded - tickSpacing
	}
	return rounded
}

// divRound divides and rounds half away from the floor, matching the
// reference rounding for usable ticks.
func divRound(x, y int) int {
	quotient := FloorDiv(x, y)
	remainder := x - quotient*y
	if 2*remainder >= y {
		quotient++
	}
	return quotient
}

// FloorDiv is integer division rounding toward negative infinity.
func FloorDiv(x, y int) int {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}
