package commands

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"v4sdk"
	"v4sdk/entities"
	"v4sdk/extensions"
)

// increase-liquidity <token-id>: add liquidity to an existing
// position, sized from the amount flags over the position's range.
func increaseLiquidityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "increase-liquidity <token-id>",
		Short: "Build calldata adding liquidity to an existing position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenID, ok := new(big.Int).SetString(args[0], 10)
			if !ok {
				return fmt.Errorf("bad token id %q", args[0])
			}

			position, err := extensions.FetchPosition(cmd.Context(), chainID, positionManagerAddr, tokenID, client, logger, queryBlock())
			if err != nil {
				return err
			}

			amount0, ok := new(big.Int).SetString(amount0Str, 10)
			if !ok {
				return fmt.Errorf("bad --amount0 %q", amount0Str)
			}
			amount1, ok := new(big.Int).SetString(amount1Str, 10)
			if !ok {
				return fmt.Errorf("bad --amount1 %q", amount1Str)
			}
			delta, err := entities.FromAmounts(position.Pool, position.TickLower, position.TickUpper, amount0, amount1, true)
			if err != nil {
				return err
			}

			params, err := v4sdk.AddCallParameters(delta, v4sdk.AddLiquidityOptions{
				SlippageTolerance: entities.NewPercentFromInts(slippageBps, 10_000),
				Deadline:          deadlineIn(deadlineMin),
				TokenID:           tokenID,
				UseNative:         position.Pool.Currency0.IsNative(),
			})
			if err != nil {
				return err
			}
			printMethodParameters(params)

			if send {
				key, err := crypto.HexToECDSA(privateKey)
				if err != nil {
					return fmt.Errorf("bad private key: %w", err)
				}
				return sendTransaction(cmd.Context(), key, params)
			}
			return nil
		},
	}
	addPositionFlags(cmd)
	return cmd
}
