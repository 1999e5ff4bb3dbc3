package utils

import (
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatAmount renders a monetary amount with exactly two decimals, e.g. 2.2 -> "2.20".
func FormatAmount(f float64) string {
	return strconv.FormatFloat(RoundWithTwoDecimalPlace(f), 'f', 2, 64)
}

func ParseAmount(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
