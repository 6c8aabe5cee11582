package assemble

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/dealdocs/termsheet/pkg/validate"
)

// outputDateLayout renders dates day/month/year with two-digit day and
// month, e.g. 15/12/2025.
const outputDateLayout = "02/01/2006"

var enAU = message.NewPrinter(language.MustParse("en-AU"))

// Currency renders a captured amount as Australian dollars with
// grouping and two decimals: "1500000" becomes "A$1,500,000.00".
// Empty or unparseable input renders as the empty string, never a
// placeholder.
func Currency(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return ""
	}
	return "A$" + enAU.Sprintf("%v", number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// Date re-renders a captured YYYY-MM-DD value as DD/MM/YYYY. Empty or
// unparseable input renders as the empty string.
func Date(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	parsed, err := time.Parse(validate.DateLayout, trimmed)
	if err != nil {
		return ""
	}
	return parsed.Format(outputDateLayout)
}
