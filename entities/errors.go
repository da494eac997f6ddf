package entities

import "errors"

var (
	ErrDifferentChain        = errors.New("currencies on different chains")
	ErrEqualCurrencies       = errors.New("currencies must differ")
	ErrDifferentCurrency     = errors.New("amounts of different currencies")
	ErrCurrencyNotInvolved   = errors.New("currency not involved in pool")
	ErrInvalidFee            = errors.New("fee exceeds maximum")
	ErrInvalidDynamicFee     = errors.New("dynamic fee pool requires a hook")
	ErrInvalidTickRange      = errors.New("invalid tick range")
	ErrPriceTickMismatch     = errors.New("sqrt price does not lie within current tick")
	ErrZeroLiquidity         = errors.New("position has zero liquidity")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity for requested amount")
	ErrUnsupportedHook       = errors.New("pool hook impacts swap behavior")
	ErrInvalidSqrtPriceLimit = errors.New("sqrt price limit out of bounds")
	ErrEmptyRoute            = errors.New("route requires at least one pool")
	ErrRouteMismatch         = errors.New("pools in route do not connect")
	ErrDuplicatePools        = errors.New("trade reuses a pool across routes")
	ErrNegativeSlippage      = errors.New("slippage tolerance must not be negative")
	ErrNoSlippageTolerance   = errors.New("slippage tolerance required")
	ErrNoTicks               = errors.New("no tick data available")
	ErrAmountOverflow        = errors.New("amount exceeds uint256")
	ErrUnsortedTicks         = errors.New("ticks not sorted by index")
	ErrTickOffGrid           = errors.New("tick index not a multiple of spacing")
	ErrUnbalancedTicks       = errors.New("tick net liquidity does not sum to zero")
)
