package tron

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SunPerTRX is the number of SUN in one TRX.
const SunPerTRX = 1_000_000

// FromSun converts a SUN amount into its TRX decimal value.
func FromSun(sun int64) decimal.Decimal {
	return decimal.New(sun, -6)
}

// ToSun converts a TRX amount into SUN. Amounts with more than six
// fractional digits have no exact SUN representation and are rejected.
func ToSun(trx decimal.Decimal) (int64, error) {
	sun := trx.Shift(6)
	if !sun.IsInteger() {
		return 0, fmt.Errorf("tron: %s TRX is not a whole number of SUN", trx)
	}
	bi := sun.BigInt()
	if !bi.IsInt64() {
		return 0, fmt.Errorf("tron: %s TRX overflows the SUN range", trx)
	}
	return bi.Int64(), nil
}

// ParseTRX parses a decimal TRX string into SUN.
func ParseTRX(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("tron: invalid TRX amount %q: %w", s, err)
	}
	return ToSun(d)
}
