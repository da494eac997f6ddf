package entities

import (
	"math/big"

	"github.com/shopspring/decimal"

	"v4sdk/utils"
)

// CurrencyAmount is an exact amount of a currency, kept as a fraction
// of the currency's raw (smallest) unit.
type CurrencyAmount struct {
	Currency Currency
	Fraction
	decimalScale *big.Int
}

func newCurrencyAmount(currency Currency, numerator, denominator *big.Int) (*CurrencyAmount, error) {
	f := NewFraction(numerator, denominator)
	if f.Quotient().Cmp(utils.MaxUint256) > 0 {
		return nil, ErrAmountOverflow
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(currency.Decimals())), nil)
	return &CurrencyAmount{Currency: currency, Fraction: *f, decimalScale: scale}, nil
}

// FromRawAmount constructs an amount from the raw unit count.
func FromRawAmount(currency Currency, rawAmount *big.Int) (*CurrencyAmount, error) {
	return newCurrencyAmount(currency, rawAmount, big.NewInt(1))
}

// FromFractionalAmount constructs an amount from a fractional raw
// value.
func FromFractionalAmount(currency Currency, numerator, denominator *big.Int) (*CurrencyAmount, error) {
	return newCurrencyAmount(currency, numerator, denominator)
}

// Add returns the sum of two amounts of the same currency.
func (a *CurrencyAmount) Add(other *CurrencyAmount) (*CurrencyAmount, error) {
	if !a.Currency.Equal(other.Currency) {
		return nil, ErrDifferentCurrency
	}
	sum := a.Fraction.Add(&other.Fraction)
	return newCurrencyAmount(a.Currency, sum.Numerator, sum.Denominator)
}

// Sub returns the difference of two amounts of the same currency.
func (a *CurrencyAmount) Sub(other *CurrencyAmount) (*CurrencyAmount, error) {
	if !a.Currency.Equal(other.Currency) {
		return nil, ErrDifferentCurrency
	}
	diff := a.Fraction.Sub(&other.Fraction)
	return newCurrencyAmount(a.Currency, diff.Numerator, diff.Denominator)
}

// MulFraction scales the amount by a fraction.
func (a *CurrencyAmount) MulFraction(other *Fraction) (*CurrencyAmount, error) {
	product := a.Fraction.Mul(other)
	return newCurrencyAmount(a.Currency, product.Numerator, product.Denominator)
}

// DivFraction divides the amount by a fraction.
func (a *CurrencyAmount) DivFraction(other *Fraction) (*CurrencyAmount, error) {
	quotient := a.Fraction.Div(other)
	return newCurrencyAmount(a.Currency, quotient.Numerator, quotient.Denominator)
}

// ToExact renders the amount in whole currency units at full
// precision.
func (a *CurrencyAmount) ToExact() string {
	return decimal.NewFromBigInt(a.Quotient(), 0).
		Div(decimal.NewFromBigInt(a.decimalScale, 0)).
		String()
}

// ToFixed renders the amount in whole currency units with a fixed
// number of decimal places.
func (a *CurrencyAmount) ToFixed(decimalPlaces int32) string {
	return decimal.NewFromBigInt(a.Quotient(), 0).
		Div(decimal.NewFromBigInt(a.decimalScale, 0)).
		StringFixed(decimalPlaces)
}
