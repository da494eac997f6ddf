// Package abi holds the ABI codecs of the v4 periphery surface: the
// PoolKey tuple, the per-action parameter layouts consumed by the
// position manager's unlock callback, the Permit2 permit structs and
// the position manager call encoding.
package abi
