package source

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCurrency converts a currency-formatted cell into a float64. The
// exports are inconsistent: "$1,234.56", bare "1234.56", accounting-style
// parenthesized negatives "(1,234.56)", and dash placeholders "$-" / "-" /
// "" for zero all appear.
func ParseCurrency(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, nil
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "-") {
		neg = !neg
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		// "$-123.45" puts the sign after the symbol
		neg = !neg
		s = strings.TrimSpace(s[1:])
	}

	// Dash placeholder means zero
	if s == "" || s == "-" || s == "–" {
		return 0, nil
	}

	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("currency value %q: %w", cell, err)
	}
	if neg {
		v = -v
	}
	return v, nil
}
