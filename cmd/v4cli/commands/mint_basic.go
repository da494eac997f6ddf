package commands

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"v4sdk"
	"v4sdk/entities"
	"v4sdk/extensions"
	"v4sdk/utils"
)

var (
	recipient   string
	amount0Str  string
	amount1Str  string
	rangeWidth  int
	slippageBps int64
	deadlineMin int64
	privateKey  string
	send        bool
)

// mint-position-basic: mint a new ETH/USDC position funded from the
// caller's balances.
func mintBasicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint-position-basic",
		Short: "Build calldata minting an ETH/USDC position",
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := buildPosition(cmd)
			if err != nil {
				return err
			}

			params, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
				SlippageTolerance: entities.NewPercentFromInts(slippageBps, 10_000),
				Deadline:          deadlineIn(deadlineMin),
				Recipient:         common.HexToAddress(recipient),
				UseNative:         true,
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
	cmd.Flags().StringVar(&recipient, "recipient", "", "position owner")
	_ = cmd.MarkFlagRequired("recipient")
	return cmd
}

func addPositionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&amount0Str, "amount0", "0", "max ETH to spend, in wei")
	cmd.Flags().StringVar(&amount1Str, "amount1", "0", "max USDC to spend, in base units")
	cmd.Flags().IntVar(&rangeWidth, "width", 100, "half range width, in tick spacings")
	cmd.Flags().Int64Var(&slippageBps, "slippage-bps", 50, "slippage tolerance in basis points")
	cmd.Flags().Int64Var(&deadlineMin, "deadline-min", 20, "deadline, minutes from now")
	cmd.Flags().StringVar(&privateKey, "private-key", "", "hex private key for signing")
	cmd.Flags().BoolVar(&send, "send", false, "sign and submit the transaction")
}

// buildPosition fetches the live ETH/USDC 0.05% pool and sizes a
// position around the current tick from the amount flags.
func buildPosition(cmd *cobra.Command) (*entities.Position, error) {
	fetcher := extensions.NewPoolFetcher(chainID, poolManagerAddr, client, logger)
	pool, err := fetcher.Fetch(cmd.Context(), common.Address{}, usdcAddr, 500, 10, common.Address{}, queryBlock())
	if err != nil {
		return nil, err
	}

	amount0, ok := new(big.Int).SetString(amount0Str, 10)
	if !ok {
		return nil, fmt.Errorf("bad --amount0 %q", amount0Str)
	}
	amount1, ok := new(big.Int).SetString(amount1Str, 10)
	if !ok {
		return nil, fmt.Errorf("bad --amount1 %q", amount1Str)
	}

	center := utils.NearestUsableTick(pool.TickCurrent, pool.TickSpacing)
	tickLower := center - rangeWidth*pool.TickSpacing
	tickUpper := center + rangeWidth*pool.TickSpacing

	return entities.FromAmounts(pool, tickLower, tickUpper, amount0, amount1, true)
}
