package commands

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/spf13/cobra"

	"v4sdk"
	"v4sdk/abi"
	"v4sdk/entities"
)

var (
	permitNonce     uint64
	permitExpiryMin int64
	sigDeadlineMin  int64
)

// mint-position-permit2: mint a new ETH/USDC position, approving the
// USDC side with a signed Permit2 batch permit in the same multicall.
func mintPermit2Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint-position-permit2",
		Short: "Build calldata minting an ETH/USDC position with a Permit2 approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			if privateKey == "" {
				return fmt.Errorf("permit signing requires --private-key")
			}
			key, err := crypto.HexToECDSA(privateKey)
			if err != nil {
				return fmt.Errorf("bad private key: %w", err)
			}
			owner := crypto.PubkeyToAddress(key.PublicKey)

			position, err := buildPosition(cmd)
			if err != nil {
				return err
			}
			maximums, err := position.MintAmountsWithSlippage(entities.NewPercentFromInts(slippageBps, 10_000))
			if err != nil {
				return err
			}

			batch := abi.PermitBatch{
				Details: []abi.PermitDetails{{
					Token:      usdcAddr,
					Amount:     maximums.Amount1,
					Expiration: deadlineIn(permitExpiryMin),
					Nonce:      new(big.Int).SetUint64(permitNonce),
				}},
				Spender:     positionManagerAddr,
				SigDeadline: deadlineIn(sigDeadlineMin),
			}
			signature, err := signPermitBatch(key, batch)
			if err != nil {
				return err
			}

			params, err := v4sdk.AddCallParameters(position, v4sdk.AddLiquidityOptions{
				SlippageTolerance: entities.NewPercentFromInts(slippageBps, 10_000),
				Deadline:          deadlineIn(deadlineMin),
				Recipient:         owner,
				UseNative:         true,
				BatchPermit: &v4sdk.BatchPermitOptions{
					Owner:       owner,
					PermitBatch: batch,
					Signature:   signature,
				},
			})
			if err != nil {
				return err
			}
			printMethodParameters(params)

			if send {
				return sendTransaction(cmd.Context(), key, params)
			}
			return nil
		},
	}
	addPositionFlags(cmd)
	cmd.Flags().Uint64Var(&permitNonce, "permit-nonce", 0, "current Permit2 nonce for the token")
	cmd.Flags().Int64Var(&permitExpiryMin, "permit-expiry-min", 30*24*60, "permit expiration, minutes from now")
	cmd.Flags().Int64Var(&sigDeadlineMin, "sig-deadline-min", 30, "signature deadline, minutes from now")
	return cmd
}

// signPermitBatch signs the Permit2 PermitBatch struct under the
// canonical Permit2 EIP-712 domain.
func signPermitBatch(key *ecdsa.PrivateKey, batch abi.PermitBatch) ([]byte, error) {
	details := make([]interface{}, len(batch.Details))
	for i, d := range batch.Details {
		details[i] = map[string]interface{}{
			"token":      d.Token.Hex(),
			"amount":     d.Amount.String(),
			"expiration": d.Expiration.String(),
			"nonce":      d.Nonce.String(),
		}
	}

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"PermitDetails": {
				{Name: "token", Type: "address"},
				{Name: "amount", Type: "uint160"},
				{Name: "expiration", Type: "uint48"},
				{Name: "nonce", Type: "uint48"},
			},
			"PermitBatch": {
				{Name: "details", Type: "PermitDetails[]"},
				{Name: "spender", Type: "address"},
				{Name: "sigDeadline", Type: "uint256"},
			},
		},
		PrimaryType: "PermitBatch",
		Domain: apitypes.TypedDataDomain{
			Name:              "Permit2",
			ChainId:           math.NewHexOrDecimal256(int64(chainID)),
			VerifyingContract: permit2Addr.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"details":     details,
			"spender":     batch.Spender.Hex(),
			"sigDeadline": batch.SigDeadline.String(),
		},
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, fmt.Errorf("hash permit: %w", err)
	}
	signature, err := crypto.Sign(hash, key)
	if err != nil {
		return nil, err
	}
	// contracts expect the legacy 27/28 recovery id
	signature[64] += 27
	return signature, nil
}
