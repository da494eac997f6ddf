package entities

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Fraction is an arbitrary-precision rational number.
type Fraction struct {
	Numerator   *big.Int
	Denominator *big.Int
}

// NewFraction constructs a fraction; a nil denominator means one.
func NewFraction(numerator, denominator *big.Int) *Fraction {
	if denominator == nil {
		denominator = big.NewInt(1)
	}
	if denominator.Sign() == 0 {
		panic("entities: zero denominator")
	}
	return &Fraction{Numerator: numerator, Denominator: denominator}
}

// NewFractionFromInt constructs a whole-number fraction.
func NewFractionFromInt(numerator int64) *Fraction {
	return NewFraction(big.NewInt(numerator), nil)
}

// Quotient is the integer part of the fraction.
func (f *Fraction) Quotient() *big.Int {
	return new(big.Int).Quo(f.Numerator, f.Denominator)
}

// Remainder is the fraction left after subtracting the quotient.
func (f *Fraction) Remainder() *Fraction {
	return NewFraction(new(big.Int).Rem(f.Numerator, f.Denominator), f.Denominator)
}

// Invert swaps numerator and denominator.
func (f *Fraction) Invert() *Fraction {
	return NewFraction(f.Denominator, f.Numerator)
}

// Add returns f + other.
func (f *Fraction) Add(other *Fraction) *Fraction {
	if f.Denominator.Cmp(other.Denominator) == 0 {
		return NewFraction(new(big.Int).Add(f.Numerator, other.Numerator), f.Denominator)
	}
	num := new(big.Int).Add(
		new(big.Int).Mul(f.Numerator, other.Denominator),
		new(big.Int).Mul(other.Numerator, f.Denominator),
	)
	return NewFraction(num, new(big.Int).Mul(f.Denominator, other.Denominator))
}

// Sub returns f - other.
func (f *Fraction) Sub(other *Fraction) *Fraction {
	if f.Denominator.Cmp(other.Denominator) == 0 {
		return NewFraction(new(big.Int).Sub(f.Numerator, other.Numerator), f.Denominator)
	}
	num := new(big.Int).Sub(
		new(big.Int).Mul(f.Numerator, other.Denominator),
		new(big.Int).Mul(other.Numerator, f.Denominator),
	)
	return NewFraction(num, new(big.Int).Mul(f.Denominator, other.Denominator))
}

// Mul returns f * other.
func (f *Fraction) Mul(other *Fraction) *Fraction {
	return NewFraction(
		new(big.Int).Mul(f.Numerator, other.Numerator),
		new(big.Int).Mul(f.Denominator, other.Denominator),
	)
}

// Div returns f / other.
func (f *Fraction) Div(other *Fraction) *Fraction {
	return NewFraction(
		new(big.Int).Mul(f.Numerator, other.Denominator),
		new(big.Int).Mul(f.Denominator, other.Numerator),
	)
}

// Cmp compares two fractions, returning -1, 0 or 1.
func (f *Fraction) Cmp(other *Fraction) int {
	left := new(big.Int).Mul(f.Numerator, other.Denominator)
	right := new(big.Int).Mul(other.Numerator, f.Denominator)
	// Cross-multiplication flips the ordering for negative
	// denominators; fractions here always carry positive ones.
	if f.Denominator.Sign() < 0 != (other.Denominator.Sign() < 0) {
		return -left.Cmp(right)
	}
	return left.Cmp(right)
}

// EqualTo reports whether two fractions represent the same value.
func (f *Fraction) EqualTo(other *Fraction) bool { return f.Cmp(other) == 0 }

// Decimal converts the fraction to a shopspring decimal.
func (f *Fraction) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(f.Numerator, 0).DivRound(decimal.NewFromBigInt(f.Denominator, 0), 38)
}

// ToSignificant formats the fraction with the given number of
// significant digits.
func (f *Fraction) ToSignificant(significantDigits int32) string {
	d := f.Decimal()
	if d.IsZero() {
		return "0"
	}
	abs := d.Abs()
	var places int32
	if abs.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		intDigits := int32(len(abs.Truncate(0).String()))
		places = significantDigits - intDigits
	} else {
		// Count leading zeros between the point and the first digit.
		tenth := decimal.New(1, -1)
		for v := abs; v.LessThan(tenth); v = v.Shift(1) {
			places++
		}
		places += significantDigits
	}
	if places < 0 {
		places = 0
	}
	return d.Round(places).String()
}

// ToFixed formats the fraction with a fixed number of decimal places.
func (f *Fraction) ToFixed(decimalPlaces int32) string {
	return f.Decimal().StringFixed(decimalPlaces)
}

// Percent is a fraction interpreted as a percentage.
type Percent struct {
	Fraction
}

// NewPercent constructs a percent from a numerator and denominator.
func NewPercent(numerator, denominator *big.Int) *Percent {
	return &Percent{Fraction: *NewFraction(numerator, denominator)}
}

// NewPercentFromInts constructs a percent from int64 parts.
func NewPercentFromInts(numerator, denominator int64) *Percent {
	return NewPercent(big.NewInt(numerator), big.NewInt(denominator))
}

// ToSignificant formats the percent scaled by 100.
func (p *Percent) ToSignificant(significantDigits int32) string {
	return p.Fraction.Mul(NewFractionFromInt(100)).ToSignificant(significantDigits)
}
