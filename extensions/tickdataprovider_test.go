package extensions

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// wordCaller serves every storage read with the same word and counts
// the calls.
type wordCaller struct {
	word  *big.Int
	calls int
}

func (c *wordCaller) CodeAt(ctx context.Context, contract common.Address, block *big.Int) ([]byte, error) {
	return nil, nil
}

func (c *wordCaller) CallContract(ctx context.Context, call ethereum.CallMsg, block *big.Int) ([]byte, error) {
	c.calls++
	var out [32]byte
	c.word.FillBytes(out[:])
	return out[:], nil
}

func TestSimpleTickDataProvider_CachesBitmapWords(t *testing.T) {
	caller := &wordCaller{word: new(big.Int).Lsh(big.NewInt(1), 10)}
	lens := NewPoolManagerLens(common.HexToAddress("0x01"), caller)
	provider := NewSimpleTickDataProvider(lens, common.Hash{}, nil)

	ctx := context.Background()
	next, initialized, err := provider.NextInitializedTickWithinOneWord(ctx, 20, true, 1)
	if err != nil {
		t.Fatalf("next initialized tick: %v", err)
	}
	if next != 10 || !initialized {
		t.Fatalf("got tick %d initialized %v, want 10 true", next, initialized)
	}

	// A second scan within the same word must not hit the chain again.
	next, initialized, err = provider.NextInitializedTickWithinOneWord(ctx, 15, true, 1)
	if err != nil {
		t.Fatalf("cached scan: %v", err)
	}
	if next != 10 || !initialized {
		t.Fatalf("cached scan: got tick %d initialized %v, want 10 true", next, initialized)
	}
	if caller.calls != 1 {
		t.Fatalf("storage reads: got %d, want 1", caller.calls)
	}
}
