package entities

import "math/big"

// Price is an exchange rate between two currencies, expressed as
// quote units per base unit of the raw amounts.
type Price struct {
	BaseCurrency  Currency
	QuoteCurrency Currency
	Fraction
}

// NewPrice constructs a price from raw denominator (base) and
// numerator (quote) amounts.
func NewPrice(base, quote Currency, denominator, numerator *big.Int) *Price {
	return &Price{
		BaseCurrency:  base,
		QuoteCurrency: quote,
		Fraction:      *NewFraction(numerator, denominator),
	}
}

// PriceFromAmounts constructs the price implied by a pair of currency
// amounts.
func PriceFromAmounts(base, quote *CurrencyAmount) *Price {
	result := quote.Fraction.Div(&base.Fraction)
	return NewPrice(base.Currency, quote.Currency, result.Denominator, result.Numerator)
}

// Invert flips base and quote.
func (p *Price) Invert() *Price {
	return NewPrice(p.QuoteCurrency, p.BaseCurrency, p.Numerator, p.Denominator)
}

// Mul chains two prices; the other price's base must be this price's
// quote.
func (p *Price) Mul(other *Price) (*Price, error) {
	if !p.QuoteCurrency.Equal(other.BaseCurrency) {
		return nil, ErrDifferentCurrency
	}
	f := p.Fraction.Mul(&other.Fraction)
	return NewPrice(p.BaseCurrency, other.QuoteCurrency, f.Denominator, f.Numerator), nil
}

// Quote converts an amount of the base currency into the quote
// currency at this price.
func (p *Price) Quote(amount *CurrencyAmount) (*CurrencyAmount, error) {
	if !amount.Currency.Equal(p.BaseCurrency) {
		return nil, ErrDifferentCurrency
	}
	result := p.Fraction.Mul(&amount.Fraction)
	return FromFractionalAmount(p.QuoteCurrency, result.Numerator, result.Denominator)
}

// adjustedForDecimals scales the raw ratio by the currencies' decimal
// difference so it reads in whole units.
func (p *Price) adjustedForDecimals() *Fraction {
	baseScale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(p.BaseCurrency.Decimals())), nil)
	quoteScale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(p.QuoteCurrency.Decimals())), nil)
	return p.Fraction.Mul(NewFraction(baseScale, quoteScale))
}

// ToSignificant formats the decimal-adjusted price with the given
// significant digits.
func (p *Price) ToSignificant(significantDigits int32) string {
	return p.adjustedForDecimals().ToSignificant(significantDigits)
}

// ToFixed formats the decimal-adjusted price with fixed decimal
// places.
func (p *Price) ToFixed(decimalPlaces int32) string {
	return p.adjustedForDecimals().ToFixed(decimalPlaces)
}
