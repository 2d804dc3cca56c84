package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Money is an amount in cents. The restaurant API speaks decimal numbers
// (16.99); holding cents keeps cart arithmetic exact.
type Money int64

// NewMoney converts a decimal amount to Money, rounding to the nearest cent.
func NewMoney(amount float64) Money {
	return Money(math.Round(amount * 100))
}

// Times returns m multiplied by a quantity.
func (m Money) Times(qty int) Money { return m * Money(qty) }

// Float returns the decimal amount.
func (m Money) Float() float64 { return float64(m) / 100 }

// String formats m with two decimals ("38.98").
func (m Money) String() string {
	sign := ""
	c := int64(m)
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// MarshalJSON writes m as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string or null (zero).
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("models: invalid amount %q", data)
	}
	*m = NewMoney(f)
	return nil
}
