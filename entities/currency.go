package entities

import (
	"github.com/ethereum/go-ethereum/common"
)

// Currency is any asset a v4 pool can hold: the chain's native
// currency or an ERC-20 token.
type Currency interface {
	// ChainID of the chain the currency lives on.
	ChainID() uint64
	// Decimals of the currency.
	Decimals() uint8
	// Symbol of the currency, possibly empty.
	Symbol() string
	// Name of the currency, possibly empty.
	Name() string
	// IsNative reports whether this is the chain's native currency.
	IsNative() bool
	// Address is the identifier used in pool keys: the zero address
	// for the native currency, the contract address for tokens.
	Address() common.Address
	// Equal reports whether two currencies are the same asset.
	Equal(Currency) bool
}

// Token is an ERC-20 token on a specific chain.
type Token struct {
	chainID  uint64
	address  common.Address
	decimals uint8
	symbol   string
	name     string
}

// NewToken constructs a Token.
func NewToken(chainID uint64, address common.Address, decimals uint8, symbol, name string) *Token {
	return &Token{
		chainID:  chainID,
		address:  address,
		decimals: decimals,
		symbol:   symbol,
		name:     name,
	}
}

func (t *Token) ChainID() uint64         { return t.chainID }
func (t *Token) Decimals() uint8         { return t.decimals }
func (t *Token) Symbol() string          { return t.symbol }
func (t *Token) Name() string            { return t.name }
func (t *Token) IsNative() bool          { return false }
func (t *Token) Address() common.Address { return t.address }

// Equal reports whether the other currency is a token with the same
// chain and address.
func (t *Token) Equal(other Currency) bool {
	o, ok := other.(*Token)
	return ok && o.chainID == t.chainID && o.address == t.address
}

// Ether is the native currency of an EVM chain.
type Ether struct {
	chainID uint64
}

// NewEther constructs the native currency for a chain.
func NewEther(chainID uint64) *Ether { return &Ether{chainID: chainID} }

func (e *Ether) ChainID() uint64         { return e.chainID }
func (e *Ether) Decimals() uint8         { return 18 }
func (e *Ether) Symbol() string          { return "ETH" }
func (e *Ether) Name() string            { return "Ether" }
func (e *Ether) IsNative() bool          { return true }
func (e *Ether) Address() common.Address { return common.Address{} }

// Equal reports whether the other currency is the native currency of
// the same chain.
func (e *Ether) Equal(other Currency) bool {
	o, ok := other.(*Ether)
	return ok && o.chainID == e.chainID
}

// SortsBefore reports whether a belongs in the currency0 slot of a
// pool holding a and b. The native currency always sorts first;
// tokens sort by address.
func SortsBefore(a, b Currency) (bool, error) {
	if a.ChainID() != b.ChainID() {
		return false, ErrDifferentChain
	}
	if a.Equal(b) {
		return false, ErrEqualCurrencies
	}
	if a.IsNative() {
		return true, nil
	}
	if b.IsNative() {
		return false, nil
	}
	return a.Address().Cmp(b.Address()) < 0, nil
}
