package utils

import "math/big"

// SwapStep is the outcome of swapping within a single tick range.
type SwapStep struct {
	SqrtRatioNextX96 *big.Int
	AmountIn         *big.Int
	AmountOut        *big.Int
	FeeAmount        *big.Int
}

// ComputeSwapStep computes the result of swapping some amount in or
// out, given the current and target sqrt prices, the in-range
// liquidity and the fee in hundredths of a bip. A non-negative
// amountRemaining means exact input.
func ComputeSwapStep(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, amountRemaining *big.Int, feePips int64) (SwapStep, error) {
	var step SwapStep
	fee := big.NewInt(feePips)
	zeroForOne := sqrtRatioCurrentX96.Cmp(sqrtRatioTargetX96) >= 0
	exactIn := amountRemaining.Sign() >= 0

	if exactIn {
		amountRemainingLessFee := MulDiv(amountRemaining, new(big.Int).Sub(MaxFee, fee), MaxFee)
		if zeroForOne {
			step.AmountIn = GetAmount0Delta(sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, true)
		} else {
			step.AmountIn = GetAmount1Delta(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, true)
		}
		if amountRemainingLessFee.Cmp(step.AmountIn) >= 0 {
			step.SqrtRatioNextX96 = new(big.Int).Set(sqrtRatioTargetX96)
		} else {
			next, err := GetNextSqrtPriceFromInput(sqrtRatioCurrentX96, liquidity, amountRemainingLessFee, zeroForOne)
			if err != nil {
				return step, err
			}
			step.SqrtRatioNextX96 = next
		}
	} else {
		amountOutRequested := new(big.Int).Neg(amountRemaining)
		if zeroForOne {
			step.AmountOut = GetAmount1Delta(sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, false)
		} else {
			step.AmountOut = GetAmount0Delta(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, false)
		}
		if amountOutRequested.Cmp(step.AmountOut) >= 0 {
			step.SqrtRatioNextX96 = new(big.Int).Set(sqrtRatioTargetX96)
		} else {
			next, err := GetNextSqrtPriceFromOutput(sqrtRatioCurrentX96, liquidity, amountOutRequested, zeroForOne)
			if err != nil {
				return step, err
			}
			step.SqrtRatioNextX96 = next
		}
	}

	max := sqrtRatioTargetX96.Cmp(step.SqrtRatioNextX96) == 0

	if zeroForOne {
		if !(max && exactIn) {
			step.AmountIn = GetAmount0Delta(step.SqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, true)
		}
		if !(max && !exactIn) {
			step.AmountOut = GetAmount1Delta(step.SqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, false)
		}
	} else {
		if !(max && exactIn) {
			step.AmountIn = GetAmount1Delta(sqrtRatioCurrentX96, step.SqrtRatioNextX96, liquidity, true)
		}
		if !(max && !exactIn) {
			step.AmountOut = GetAmount0Delta(sqrtRatioCurrentX96, step.SqrtRatioNextX96, liquidity, false)
		}
	}

	if !exactIn {
		requested := new(big.Int).Neg(amountRemaining)
		if step.AmountOut.Cmp(requested) > 0 {
			step.AmountOut = requested
		}
	}

	if exactIn && !max {
		// The entire remaining input is consumed; whatever was not
		// swapped is the fee.
		step.FeeAmount = new(big.Int).Sub(amountRemaining, step.AmountIn)
	} else {
		step.FeeAmount = MulDivRoundingUp(step.AmountIn, fee, new(big.Int).Sub(MaxFee, fee))
	}
	return step, nil
}
