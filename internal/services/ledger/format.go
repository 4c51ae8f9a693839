package ledger

import (
	"math"
	"strconv"
	"strings"
)

// FormatAmount renders amount as the currency symbol followed by a grouped,
// two-decimal number, e.g. "$1,234.56" or "$-5.00". Rounding is half-to-even
// on the exact binary value, so 2.675 (stored as 2.67499...) renders "$2.67".
// NaN and infinities render as the symbol followed by "NaN", "+Inf" or "-Inf".
func (l *Ledger) FormatAmount(amount float64) string {
	return FormatAmount(l.cfg.CurrencySymbol, amount)
}

func FormatAmount(symbol string, amount float64) string {
	switch {
	case math.IsNaN(amount):
		return symbol + "NaN"
	case math.IsInf(amount, 1):
		return symbol + "+Inf"
	case math.IsInf(amount, -1):
		return symbol + "-Inf"
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)

	sign := ""
	if rest, neg := strings.CutPrefix(s, "-"); neg {
		s = rest
		// -0.001 rounds to zero and must not keep its sign.
		if s != "0.00" {
			sign = "-"
		}
	}

	intPart, frac, _ := strings.Cut(s, ".")

	return symbol + sign + groupThousands(intPart) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}

	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
