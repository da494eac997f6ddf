// Package utils holds the fixed-point arithmetic of the v4 core
// contracts: tick and sqrt-price math, swap stepping, liquidity math
// and hook address flag decoding. Everything here is pure big.Int
// computation with the exact rounding of the Solidity sources.
package utils
