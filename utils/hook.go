package utils

import "github.com/ethereum/go-ethereum/common"

// HookOption identifies one permission bit in the low 14 bits of a
// hook contract address.
type HookOption uint

const (
	HookAfterRemoveLiquidityReturnsDelta HookOption = iota
	HookAfterAddLiquidityReturnsDelta
	HookAfterSwapReturnsDelta
	HookBeforeSwapReturnsDelta
	HookAfterDonate
	HookBeforeDonate
	HookAfterSwap
	HookBeforeSwap
	HookAfterRemoveLiquidity
	HookBeforeRemoveLiquidity
	HookAfterAddLiquidity
	HookBeforeAddLiquidity
	HookAfterInitialize
	HookBeforeInitialize
)

// HookPermissions is the decoded permission set of a hook address.
type HookPermissions struct {
	BeforeInitialize                 bool
	AfterInitialize                  bool
	BeforeAddLiquidity               bool
	AfterAddLiquidity                bool
	BeforeRemoveLiquidity            bool
	AfterRemoveLiquidity             bool
	BeforeSwap                       bool
	AfterSwap                        bool
	BeforeDonate                     bool
	AfterDonate                      bool
	BeforeSwapReturnsDelta           bool
	AfterSwapReturnsDelta            bool
	AfterAddLiquidityReturnsDelta    bool
	AfterRemoveLiquidityReturnsDelta bool
}

// HasPermission reports whether the hook address has the given
// permission bit set.
func HasPermission(address common.Address, option HookOption) bool {
	mask := uint(address[18])<<8 | uint(address[19])
	return mask&(1<<option) != 0
}

// Permissions decodes every permission bit of the hook address.
func Permissions(address common.Address) HookPermissions {
	return HookPermissions{
		BeforeInitialize:                 HasPermission(address, HookBeforeInitialize),
		AfterInitialize:                  HasPermission(address, HookAfterInitialize),
		BeforeAddLiquidity:               HasPermission(address, HookBeforeAddLiquidity),
		AfterAddLiquidity:                HasPermission(address, HookAfterAddLiquidity),
		BeforeRemoveLiquidity:            HasPermission(address, HookBeforeRemoveLiquidity),
		AfterRemoveLiquidity:             HasPermission(address, HookAfterRemoveLiquidity),
		BeforeSwap:                       HasPermission(address, HookBeforeSwap),
		AfterSwap:                        HasPermission(address, HookAfterSwap),
		BeforeDonate:                     HasPermission(address, HookBeforeDonate),
		AfterDonate:                      HasPermission(address, HookAfterDonate),
		BeforeSwapReturnsDelta:           HasPermission(address, HookBeforeSwapReturnsDelta),
		AfterSwapReturnsDelta:            HasPermission(address, HookAfterSwapReturnsDelta),
		AfterAddLiquidityReturnsDelta:    HasPermission(address, HookAfterAddLiquidityReturnsDelta),
		AfterRemoveLiquidityReturnsDelta: HasPermission(address, HookAfterRemoveLiquidityReturnsDelta),
	}
}

// HasInitializePermissions reports whether the hook is called around
// pool initialization.
func HasInitializePermissions(address common.Address) bool {
	return HasPermission(address, HookBeforeInitialize) || HasPermission(address, HookAfterInitialize)
}

// HasLiquidityPermissions reports whether the hook is called around
// liquidity modification.
func HasLiquidityPermissions(address common.Address) bool {
	return HasPermission(address, HookBeforeAddLiquidity) ||
		HasPermission(address, HookAfterAddLiquidity) ||
		HasPermission(address, HookBeforeRemoveLiquidity) ||
		HasPermission(address, HookAfterRemoveLiquidity)
}

// HasSwapPermissions reports whether the hook is called around swaps.
// Swap delta permissions are implied by the swap hooks.
func HasSwapPermissions(address common.Address) bool {
	return HasPermission(address, HookBeforeSwap) || HasPermission(address, HookAfterSwap)
}

// HasDonatePermissions reports whether the hook is called around
// donations.
func HasDonatePermissions(address common.Address) bool {
	return HasPermission(address, HookBeforeDonate) || HasPermission(address, HookAfterDonate)
}
