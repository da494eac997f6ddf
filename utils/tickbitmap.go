package utils

import (
	"errors"
	"math/big"
)

// ErrTickNotInitialized is returned when a bit scan runs on an empty
// word.
var ErrTickNotInitialized = errors.New("no initialized tick in word")

// TickPosition returns the bitmap word index and bit index for a
// compressed tick.
func TickPosition(compressed int) (wordPos int, bitPos uint) {
	return compressed >> 8, uint(compressed & 255)
}

// MostSignificantBit returns the index of the highest set bit.
func MostSignificantBit(x *big.Int) (uint, error) {
	if x.Sign() <= 0 {
		return 0, ErrTickNotInitialized
	}
	return uint(x.BitLen() - 1), nil
}

// LeastSignificantBit returns the index of the lowest set bit.
func LeastSignificantBit(x *big.Int) (uint, error) {
	if x.Sign() <= 0 {
		return 0, ErrTickNotInitialized
	}
	for i := 0; i < x.BitLen(); i++ {
		if x.Bit(i) == 1 {
			return uint(i), nil
		}
	}
	return 0, ErrTickNotInitialized
}

// NextInitializedTickWithinWord scans a single bitmap word for the
// next initialized tick. For lte scans the word must belong to the
// compressed tick itself; otherwise to compressed+1, which is the
// value callers pass as compressed here.
func NextInitializedTickWithinWord(word *big.Int, compressed int, bitPos uint, lte bool, tickSpacing int) (int, bool) {
	if lte {
		mask := new(big.Int).Sub(new(big.Int).Lsh(one, bitPos+1), one)
		masked := new(big.Int).And(word, mask)
		if masked.Sign() != 0 {
			msb, _ := MostSignificantBit(masked)
			return (compressed - int(bitPos-msb)) * tickSpacing, true
		}
		return (compressed - int(bitPos)) * tickSpacing, false
	}
	mask := new(big.Int).Sub(new(big.Int).Lsh(one, bitPos), one)
	mask.Not(mask)
	mask.And(mask, MaxUint256)
	masked := new(big.Int).And(word, mask)
	if masked.Sign() != 0 {
		lsb, _ := LeastSignificantBit(masked)
		return (compressed + int(lsb-bitPos)) * tickSpacing, true
	}
	return (compressed + int(255-bitPos)) * tickSpacing, false
}
