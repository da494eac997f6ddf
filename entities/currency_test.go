package entities_test

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"v4sdk/entities"
	"v4sdk/testutil"
)

func TestTokenEqual(t *testing.T) {
	a := entities.NewToken(1, common.HexToAddress("0x01"), 18, "A", "token a")
	sameAddr := entities.NewToken(1, common.HexToAddress("0x01"), 6, "B", "token b")
	otherChain := entities.NewToken(10, common.HexToAddress("0x01"), 18, "A", "token a")

	if !a.Equal(sameAddr) {
		t.Fatal("tokens with same chain and address should be equal")
	}
	if a.Equal(otherChain) {
		t.Fatal("tokens on different chains should not be equal")
	}
	if a.Equal(testutil.Ether) {
		t.Fatal("token should not equal native currency")
	}
}

func TestEtherEqual(t *testing.T) {
	if !testutil.Ether.Equal(entities.NewEther(1)) {
		t.Fatal("ether on the same chain should be equal")
	}
	if testutil.Ether.Equal(entities.NewEther(10)) {
		t.Fatal("ether on different chains should not be equal")
	}
}

func TestSortsBefore(t *testing.T) {
	got, err := entities.SortsBefore(testutil.Token0, testutil.Token1)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if !got {
		t.Fatal("lower address should sort first")
	}

	got, err = entities.SortsBefore(testutil.Ether, testutil.Token1)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if !got {
		t.Fatal("native currency should sort first")
	}

	got, err = entities.SortsBefore(testutil.USDC, testutil.Ether)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if got {
		t.Fatal("token should not sort before native currency")
	}
}

func TestSortsBefore_Errors(t *testing.T) {
	other := entities.NewToken(10, testutil.USDC.Address(), 6, "USDC", "USD Coin")
	if _, err := entities.SortsBefore(testutil.USDC, other); !errors.Is(err, entities.ErrDifferentChain) {
		t.Fatalf("got %v, want ErrDifferentChain", err)
	}
	if _, err := entities.SortsBefore(testutil.USDC, testutil.USDC); !errors.Is(err, entities.ErrEqualCurrencies) {
		t.Fatalf("got %v, want ErrEqualCurrencies", err)
	}
}
