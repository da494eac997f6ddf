package entities_test

import (
	"math/big"
	"testing"

	"v4sdk/entities"
)

func TestFractionArithmetic(t *testing.T) {
	half := entities.NewFraction(big.NewInt(1), big.NewInt(2))
	third := entities.NewFraction(big.NewInt(1), big.NewInt(3))

	sum := half.Add(third)
	if !sum.EqualTo(entities.NewFraction(big.NewInt(5), big.NewInt(6))) {
		t.Fatalf("add: got %s/%s", sum.Numerator, sum.Denominator)
	}

	diff := half.Sub(third)
	if !diff.EqualTo(entities.NewFraction(big.NewInt(1), big.NewInt(6))) {
		t.Fatalf("sub: got %s/%s", diff.Numerator, diff.Denominator)
	}

	product := half.Mul(third)
	if !product.EqualTo(entities.NewFraction(big.NewInt(1), big.NewInt(6))) {
		t.Fatalf("mul: got %s/%s", product.Numerator, product.Denominator)
	}

	quotient := half.Div(third)
	if !quotient.EqualTo(entities.NewFraction(big.NewInt(3), big.NewInt(2))) {
		t.Fatalf("div: got %s/%s", quotient.Numerator, quotient.Denominator)
	}
}

func TestFractionQuotientRemainder(t *testing.T) {
	f := entities.NewFraction(big.NewInt(7), big.NewInt(3))
	if got := f.Quotient(); got.Int64() != 2 {
		t.Fatalf("quotient: got %s, want 2", got)
	}
	rem := f.Remainder()
	if !rem.EqualTo(entities.NewFraction(big.NewInt(1), big.NewInt(3))) {
		t.Fatalf("remainder: got %s/%s", rem.Numerator, rem.Denominator)
	}
	inv := f.Invert()
	if !inv.EqualTo(entities.NewFraction(big.NewInt(3), big.NewInt(7))) {
		t.Fatalf("invert: got %s/%s", inv.Numerator, inv.Denominator)
	}
}

func TestFractionCmp(t *testing.T) {
	half := entities.NewFraction(big.NewInt(1), big.NewInt(2))
	third := entities.NewFraction(big.NewInt(1), big.NewInt(3))
	alsoHalf := entities.NewFraction(big.NewInt(2), big.NewInt(4))

	if half.Cmp(third) != 1 {
		t.Fatal("1/2 should compare greater than 1/3")
	}
	if third.Cmp(half) != -1 {
		t.Fatal("1/3 should compare less than 1/2")
	}
	if !half.EqualTo(alsoHalf) {
		t.Fatal("1/2 should equal 2/4")
	}
}

func TestFractionToSignificant(t *testing.T) {
	cases := []struct {
		num, den int64
		digits   int32
		want     string
	}{
		{1, 2, 5, "0.5"},
		{1, 3, 5, "0.33333"},
		{100, 3, 3, "33.3"},
		{12345, 1, 3, "12345"},
		{1, 1000, 2, "0.001"},
		{0, 1, 5, "0"},
	}
	for _, tc := range cases {
		f := entities.NewFraction(big.NewInt(tc.num), big.NewInt(tc.den))
		if got := f.ToSignificant(tc.digits); got != tc.want {
			t.Fatalf("%d/%d @%d: got %q, want %q", tc.num, tc.den, tc.digits, got, tc.want)
		}
	}
}

func TestFractionToFixed(t *testing.T) {
	f := entities.NewFraction(big.NewInt(1), big.NewInt(3))
	if got := f.ToFixed(4); got != "0.3333" {
		t.Fatalf("got %q, want 0.3333", got)
	}
	f = entities.NewFraction(big.NewInt(5), big.NewInt(2))
	if got := f.ToFixed(1); got != "2.5" {
		t.Fatalf("got %q, want 2.5", got)
	}
}

func TestPercentToSignificant(t *testing.T) {
	p := entities.NewPercentFromInts(5, 100)
	if got := p.ToSignificant(5); got != "5" {
		t.Fatalf("got %q, want 5", got)
	}
	p = entities.NewPercentFromInts(1, 10000)
	if got := p.ToSignificant(5); got != "0.01" {
		t.Fatalf("got %q, want 0.01", got)
	}
}
