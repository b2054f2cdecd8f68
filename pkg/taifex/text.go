package taifex

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/guregu/null/v5"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Zs}\x{feff}]+`)
	monthToken    = regexp.MustCompile(`^\d{6}$`)
	slashDate     = regexp.MustCompile(`^(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})$`)
)

// NormText converts non-breaking spaces, collapses whitespace runs and trims.
func NormText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// ParseNumber parses a locale formatted number such as "17,500" or "12.5".
// Empty input, dash placeholders and anything that is not a finite number
// yield an invalid null.Float.
func ParseNumber(s string) null.Float {
	t := strings.ReplaceAll(NormText(s), ",", "")
	switch t {
	case "", "-", "--", "—":
		return null.Float{}
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return null.Float{}
	}
	return null.FloatFrom(f)
}

// NormalizeDate rewrites "2025/1/2" or "2025-01-02" as "2025-01-02".
// Values in any other shape are returned trimmed.
func NormalizeDate(s string) string {
	t := strings.TrimSpace(s)
	m := slashDate.FindStringSubmatch(t)
	if m == nil {
		return t
	}
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return m[1] + "-" + pad2(month) + "-" + pad2(day)
}

// IsMonthToken reports whether s is a plain YYYYMM contract month.
// Spread months such as "202512/202601" do not qualify.
func IsMonthToken(s string) bool {
	return monthToken.MatchString(s)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func isInteger(f float64) bool {
	return f == math.Trunc(f)
}
