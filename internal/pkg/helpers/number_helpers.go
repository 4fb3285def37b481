package helpers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Round2 rounds half away from zero to two decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WeightedAverage returns weighted/total, or 0 when total is 0
func WeightedAverage(weighted, total float64) float64 {
	if total == 0 {
		return 0
	}
	return weighted / total
}

// FormatGPA renders a grade point average with two decimals
func FormatGPA(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatRupiah renders an amount as "Rp 1.500.000"
func FormatRupiah(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return sign + "Rp " + b.String()
}
