package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is one approved, immutable ledger entry.
type Transfer struct {
	ID        string
	ClientID  string
	ChainID   string
	Amount    Amount
	Rates     Rates
	CreatedAt time.Time
}

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is an arbitrary-precision integer. Zero and negative values are
// valid. The zero value of Amount is "unset", not 0.
type Amount struct {
	i *big.Int
}

// NewAmount returns an Amount holding v.
func NewAmount(v int64) Amount {
	return Amount{i: big.NewInt(v)}
}

// AmountFromBig copies b into an Amount.
func AmountFromBig(b *big.Int) Amount {
	if b == nil {
		return Amount{}
	}
	return Amount{i: new(big.Int).Set(b)}
}

// ParseAmount parses a base-10 integer such as "-42". Leading "+" is
// accepted; fractions, exponents and whitespace are not.
func ParseAmount(s string) (Amount, error) {
	if s == "" || strings.TrimSpace(s) != s {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Amount{i: i}, nil
}

// MustParseAmount is ParseAmount for literals known to be valid.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsSet reports whether a holds a value.
func (a Amount) IsSet() bool { return a.i != nil }

// Big returns a copy of the value, or nil when unset.
func (a Amount) Big() *big.Int {
	if a.i == nil {
		return nil
	}
	return new(big.Int).Set(a.i)
}

// String is the exact base-10 form; it's what gets stored.
func (a Amount) String() string {
	if a.i == nil {
		return ""
	}
	return a.i.String()
}

// Equal compares values. Two unset amounts are equal.
func (a Amount) Equal(b Amount) bool {
	if a.i == nil || b.i == nil {
		return a.i == nil && b.i == nil
	}
	return a.i.Cmp(b.i) == 0
}

// MarshalJSON writes the amount as a JSON string so no consumer reads it
// into a float.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.i == nil {
		return []byte("null"), nil
	}
	return json.Marshal(a.i.String())
}

// UnmarshalJSON accepts a JSON string or a bare integer literal. The bytes
// are parsed directly; nothing passes through float64.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}

	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
	}

	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Rates maps a currency code (e.g. "fiat:USD") to a conversion rate. A nil
// value is an explicit null and stays null through storage.
type Rates map[string]*decimal.Decimal

// Validate rejects empty currency codes.
func (r Rates) Validate() error {
	for code := range r {
		if strings.TrimSpace(code) == "" {
			return errors.New("rates: empty currency code")
		}
	}
	return nil
}

// Equal compares rates by value; "1.50" equals "1.5".
func (r Rates) Equal(o Rates) bool {
	if len(r) != len(o) {
		return false
	}
	for k, v := range r {
		w, ok := o[k]
		if !ok {
			return false
		}
		if v == nil || w == nil {
			if v != w {
				return false
			}
			continue
		}
		if !v.Equal(*w) {
			return false
		}
	}
	return true
}

// EncodeRates renders rates as a JSON object of decimal strings, keeping
// nulls. A nil map encodes as "{}". Values are kept exactly but their scale
// is not: "1.50" is stored as "1.5".
func EncodeRates(r Rates) (string, error) {
	if r == nil {
		return "{}", nil
	}
	out := make(map[string]*string, len(r))
	for k, v := range r {
		if v == nil {
			out[k] = nil
			continue
		}
		s := v.String()
		out[k] = &s
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeRates is the inverse of EncodeRates.
func DecodeRates(s string) (Rates, error) {
	var raw map[string]*string
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("rates: %w", err)
	}

	r := make(Rates, len(raw))
	for k, v := range raw {
		if v == nil {
			r[k] = nil
			continue
		}
		d, err := decimal.NewFromString(*v)
		if err != nil {
			return nil, fmt.Errorf("rates[%s]: %w", k, err)
		}
		r[k] = &d
	}
	return r, nil
}
