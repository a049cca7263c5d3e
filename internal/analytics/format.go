package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency is appended to every amount in alerts and reports.
const Currency = "IQD"

// formatAmount renders a rounded amount with thousands separators: 1234567.8 -> "1,234,568".
func formatAmount(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatMoney(v float64) string {
	return formatAmount(v) + " " + Currency
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
