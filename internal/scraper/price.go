package scraper

import (
	"strconv"
	"strings"
)

// ParsePrice reads the amount out of a display price such as "1,299.50 €".
// Everything except digits and dots is dropped; when several dots remain
// only the last one is kept as the decimal point. A string without a
// readable amount yields 0.
func ParsePrice(display string) float64 {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	numeric := b.String()
	if last := strings.LastIndex(numeric, "."); last > 0 {
		numeric = strings.ReplaceAll(numeric[:last], ".", "") + numeric[last:]
	}

	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0
	}
	return value
}
