// Package currency defines the currency codes accepted by the marketplace and
// their minor-unit metadata.
//
// Amounts everywhere in the system are integers in the smallest currency unit,
// so the number of decimals per currency is the only arithmetic-relevant fact
// recorded here.
package currency

// Code represents an ISO 4217 currency code (e.g., "XOF", "EUR").
type Code string

// Currency codes supported by the marketplace.
const (
	XOF Code = "XOF"
	EUR Code = "EUR"
	USD Code = "USD"
	GBP Code = "GBP"
	MAD Code = "MAD"
	NGN Code = "NGN"
	GHS Code = "GHS"
	JPY Code = "JPY"
)

// DefaultCode is the marketplace default currency (West African CFA franc).
const DefaultCode = XOF

// Meta holds currency-specific metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

var supported = map[Code]Meta{
	XOF: {Decimals: 0, Symbol: "CFA"},
	EUR: {Decimals: 2, Symbol: "€"},
	USD: {Decimals: 2, Symbol: "$"},
	GBP: {Decimals: 2, Symbol: "£"},
	MAD: {Decimals: 2, Symbol: "DH"},
	NGN: {Decimals: 2, Symbol: "₦"},
	GHS: {Decimals: 2, Symbol: "₵"},
	JPY: {Decimals: 0, Symbol: "¥"},
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// IsValid checks that the code is well-formed ISO 4217 (3 uppercase letters).
func (c Code) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	return c[0] >= 'A' && c[0] <= 'Z' &&
		c[1] >= 'A' && c[1] <= 'Z' &&
		c[2] >= 'A' && c[2] <= 'Z'
}

// IsSupported reports whether the code is one the marketplace accepts.
func (c Code) IsSupported() bool {
	_, ok := supported[c]
	return ok
}

// Decimals returns the number of decimal places for the currency.
// Unknown but well-formed codes fall back to 2.
func (c Code) Decimals() int {
	if m, ok := supported[c]; ok {
		return m.Decimals
	}
	return 2
}

// Symbol returns the display symbol for the currency, or the code itself when
// no symbol is registered.
func (c Code) Symbol() string {
	if m, ok := supported[c]; ok {
		return m.Symbol
	}
	return string(c)
}
