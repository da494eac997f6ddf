package abi

import (
	"fmt"
	"math/big"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PoolKey identifies a v4 pool. Field layout matches the core
// contract struct; currency addresses use the zero address for the
// native currency.
type PoolKey struct {
	Currency0   common.Address
	Currency1   common.Address
	Fee         *big.Int
	TickSpacing *big.Int
	Hooks       common.Address
}

// NewPoolKey builds a PoolKey from plain ints.
func NewPoolKey(currency0, currency1 common.Address, fee uint32, tickSpacing int, hooks common.Address) PoolKey {
	return PoolKey{
		Currency0:   currency0,
		Currency1:   currency1,
		Fee:         big.NewInt(int64(fee)),
		TickSpacing: big.NewInt(int64(tickSpacing)),
		Hooks:       hooks,
	}
}

var poolKeyComponents = []gethabi.ArgumentMarshaling{
	{Name: "currency0", Type: "address"},
	{Name: "currency1", Type: "address"},
	{Name: "fee", Type: "uint24"},
	{Name: "tickSpacing", Type: "int24"},
	{Name: "hooks", Type: "address"},
}

func mustType(solType string, components []gethabi.ArgumentMarshaling) gethabi.Type {
	t, err := gethabi.NewType(solType, "", components)
	if err != nil {
		panic(fmt.Sprintf("abi: bad type %s: %v", solType, err))
	}
	return t
}

var (
	poolKeyType = mustType("tuple", poolKeyComponents)
	poolKeyArgs = gethabi.Arguments{{Type: poolKeyType}}
)

// Encode returns the ABI encoding of the pool key.
func (k PoolKey) Encode() ([]byte, error) {
	return poolKeyArgs.Pack(k)
}

// ID returns the pool ID, the keccak256 hash of the encoded key.
func (k PoolKey) ID() (common.Hash, error) {
	encoded, err := k.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(crypto.Keccak256(encoded)), nil
}
