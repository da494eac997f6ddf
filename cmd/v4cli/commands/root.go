package commands

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"v4sdk"
)

// Mainnet deployment addresses.
var (
	poolManagerAddr     = common.HexToAddress("0x000000000004444c5dc75cB358380D2e3dE08A90")
	positionManagerAddr = common.HexToAddress("0xbD216513d74C8cf14cf4747E6AaA6420FF64ee9e")
	permit2Addr         = common.HexToAddress("0x000000000022D473030F116dDEE9F6B43aC78BA3")
	usdcAddr            = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
)

var (
	rpcURL      string
	blockNumber int64
	chainID     uint64
	verbose     bool

	client *ethclient.Client
	logger *zap.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:   "v4cli",
		Short: "Worked examples against the v4 position manager",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if rpcURL == "" {
				rpcURL = os.Getenv("MAINNET_RPC_URL")
			}
			if rpcURL == "" {
				return fmt.Errorf("no RPC endpoint. use --rpc-url or MAINNET_RPC_URL")
			}
			var err error
			client, err = ethclient.DialContext(cmd.Context(), rpcURL)
			if err != nil {
				return fmt.Errorf("dial %s: %w", rpcURL, err)
			}

			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if client != nil {
				client.Close()
			}
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&rpcURL, "rpc-url", "", "RPC endpoint (default $MAINNET_RPC_URL)")
	root.PersistentFlags().Int64Var(&blockNumber, "block", 0, "block number to query (default latest)")
	root.PersistentFlags().Uint64Var(&chainID, "chain-id", 1, "chain id")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(mintBasicCmd(), mintPermit2Cmd(), increaseLiquidityCmd())
	return root.Execute()
}

// queryBlock returns the pinned block, or nil for latest.
func queryBlock() *big.Int {
	if blockNumber == 0 {
		return nil
	}
	return big.NewInt(blockNumber)
}

func deadlineIn(minutes int64) *big.Int {
	return big.NewInt(time.Now().Unix() + minutes*60)
}

// printMethodParameters writes the built calldata for inspection.
func printMethodParameters(params v4sdk.MethodParameters) {
	fmt.Printf("to:       %s\n", positionManagerAddr)
	fmt.Printf("calldata: 0x%x\n", params.Calldata)
	fmt.Printf("value:    %s\n", params.Value)
}

// sendTransaction signs and submits the calldata to the position
// manager.
func sendTransaction(ctx context.Context, key *ecdsa.PrivateKey, params v4sdk.MethodParameters) error {
	sender := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := client.PendingNonceAt(ctx, sender)
	if err != nil {
		return err
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return err
	}
	gas, err := client.EstimateGas(ctx, ethereumCallMsg(sender, params))
	if err != nil {
		return fmt.Errorf("estimate gas: %w", err)
	}

	tx := types.NewTransaction(nonce, positionManagerAddr, params.Value, gas, gasPrice, params.Calldata)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(new(big.Int).SetUint64(chainID)), key)
	if err != nil {
		return err
	}
	if err := client.SendTransaction(ctx, signed); err != nil {
		return err
	}
	logger.Info("transaction sent", zap.String("hash", signed.Hash().Hex()))
	fmt.Printf("tx: %s\n", signed.Hash())
	return nil
}

func ethereumCallMsg(from common.Address, params v4sdk.MethodParameters) ethereum.CallMsg {
	return ethereum.CallMsg{
		From:  from,
		To:    &positionManagerAddr,
		Value: params.Value,
		Data:  params.Calldata,
	}
}
