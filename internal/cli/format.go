// Package cli provides formatting and rendering utilities for report output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCurrency formats a dollar amount with comma grouping.
// With cents=false the amount is rounded to the nearest whole dollar.
// e.g., 1234.5 -> "$1,235" or "$1,234.50"; -1234.5 -> "-$1,235".
func FormatCurrency(v float64, cents bool) string {
	abs := math.Abs(v)

	var s string
	if cents {
		total := int64(math.Round(abs * 100))
		s = fmt.Sprintf("$%s.%02d", FormatNumber(total/100), total%100)
		if total == 0 {
			return s // avoid "-$0.00"
		}
	} else {
		dollars := int64(math.Round(abs))
		s = "$" + FormatNumber(dollars)
		if dollars == 0 {
			return s
		}
	}

	if v < 0 {
		return "-" + s
	}
	return s
}

// FormatDelta formats a currency change with an explicit sign. Negative
// amounts that round to zero take the "+" prefix like positive ones, so
// diff tables never show a bare "$0".
func FormatDelta(v float64, cents bool) string {
	s := FormatCurrency(v, cents)
	if strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// EscapeDollars escapes $ for Markdown output so renderers do not treat the
// amounts as inline LaTeX.
func EscapeDollars(s string) string {
	return strings.ReplaceAll(s, "$", `\$`)
}
