// Package units converts token amounts between raw on-chain integers and
// human-readable decimal strings. All arithmetic is exact.
package units

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount cannot be represented exactly
// as a non-negative number of raw units.
var ErrInvalidAmount = errors.New("invalid amount")

// maxRawDigits is the number of decimal digits in 2^256-1.
const maxRawDigits = 78

// Amount is a token value held both as raw units and as a formatted string.
type Amount struct {
	Raw       *big.Int
	Formatted string
}

// NewAmount builds an Amount from raw units at the given precision.
func NewAmount(raw *big.Int, precision uint8) Amount {
	if raw == nil {
		raw = new(big.Int)
	}
	return Amount{
		Raw:       new(big.Int).Set(raw),
		Formatted: FromRawUnits(raw, precision),
	}
}

// String returns the formatted value.
func (a Amount) String() string { return a.Formatted }

type amountJSON struct {
	Raw       string `json:"raw"`
	Formatted string `json:"formatted"`
}

// MarshalJSON encodes the raw value as a string so that large amounts
// survive JSON consumers that parse numbers as doubles.
func (a Amount) MarshalJSON() ([]byte, error) {
	raw := "0"
	if a.Raw != nil {
		raw = a.Raw.String()
	}
	return json.Marshal(amountJSON{Raw: raw, Formatted: a.Formatted})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var v amountJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	raw, ok := new(big.Int).SetString(v.Raw, 10)
	if !ok {
		return fmt.Errorf("%w: raw %q", ErrInvalidAmount, v.Raw)
	}
	a.Raw = raw
	a.Formatted = v.Formatted
	return nil
}

// FromRawUnits renders raw / 10^precision with exactly precision fractional
// digits, e.g. FromRawUnits(123456789, 6) == "123.456789".
func FromRawUnits(raw *big.Int, precision uint8) string {
	if raw == nil {
		raw = new(big.Int)
	}
	p := int32(precision)
	return decimal.NewFromBigInt(raw, -p).StringFixed(p)
}

// ToRawUnits parses a decimal string and scales it by 10^precision.
// The result must be a non-negative integer; amounts carrying more
// fractional digits than precision are rejected rather than truncated.
func ToRawUnits(s string, precision uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d, precision)
}

// FromDecimal scales an already parsed decimal by 10^precision. The result
// must fit in a uint256.
func FromDecimal(d decimal.Decimal, precision uint8) (*big.Int, error) {
	switch d.Sign() {
	case -1:
		return nil, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, display(d))
	case 0:
		return new(big.Int), nil
	}

	// Bound the exponent before shifting so that huge exponent forms
	// like 1e300000000 are rejected without being expanded.
	digits := int64(d.NumDigits())
	exp := int64(d.Exponent()) + int64(precision)
	if digits+exp > maxRawDigits {
		return nil, fmt.Errorf("%w: %s exceeds uint256", ErrInvalidAmount, display(d))
	}
	if -exp > digits {
		return nil, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, display(d), precision)
	}

	scaled := d.Shift(int32(precision))
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, display(d), precision)
	}
	raw := scaled.BigInt()
	if raw.Cmp(math.MaxBig256) > 0 {
		return nil, fmt.Errorf("%w: %s exceeds uint256", ErrInvalidAmount, display(d))
	}
	return raw, nil
}

// display formats d for error messages without expanding large exponents.
func display(d decimal.Decimal) string {
	if e := d.Exponent(); e > maxRawDigits || e < -maxRawDigits {
		return fmt.Sprintf("%se%d", d.Coefficient(), e)
	}
	return d.String()
}
