package utils

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Int64ToStr converts an int64 to its string representation.
func Int64ToStr(num int64) string {
	return strconv.FormatInt(num, 10)
}

// DecimalToFloat converts a NUMERIC value read from the database to float64.
// Amounts are whole dinars, well inside float64's exact integer range.
func DecimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// NullDecimalToFloat is DecimalToFloat with NULL read as 0.
func NullDecimalToFloat(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	return DecimalToFloat(d.Decimal)
}

// FloatToDecimal rounds an amount to two places for writing to a NUMERIC column.
func FloatToDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
