package domain

import (
	"strconv"
	"strings"
)

// FormatVND renders an amount in dong with dot thousands separators,
// rounded to the unit: 1.250.000đ.
func FormatVND(v float64) string {
	s := strconv.FormatInt(int64(v+0.5), 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String() + "đ"
}

// ParsePrice reads the decimal strings some endpoints use for prices.
// A malformed price reads as zero.
func ParsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
