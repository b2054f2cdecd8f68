package taifex

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

const spreadSectionMarker = "價差行情表"

var (
	lineBreak    = regexp.MustCompile(`\r?\n`)
	leadingDigit = regexp.MustCompile(`^\d`)
)

// Quote is the close and volume read from one report quote line.
type Quote struct {
	Close  float64
	Volume int64
}

// ExtractFromText reads the main contract for symbol from the report's plain
// text. It is the fallback for reports whose tables cannot be interpreted.
func ExtractFromText(markup []byte, symbol string) *MainContract {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil
	}
	return mainFromLines(reportLines(textContent(doc)), symbol)
}

// reportLines splits text into normalized non-blank lines, dropping the
// spread section and everything after it.
func reportLines(text string) []string {
	var lines []string
	for _, raw := range lineBreak.Split(text, -1) {
		line := NormText(raw)
		if line == "" {
			continue
		}
		if strings.Contains(line, spreadSectionMarker) {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

func mainFromLines(lines []string, symbol string) *MainContract {
	var candidates []MainContract
	for i, line := range lines {
		if line != symbol {
			continue
		}
		j := i + 1
		for j < len(lines) && !IsMonthToken(lines[j]) {
			j++
		}
		if j >= len(lines) {
			continue
		}
		k := j + 1
		for k < len(lines) && !leadingDigit.MatchString(lines[k]) {
			k++
		}
		if k >= len(lines) {
			continue
		}
		quote := ParseQuoteLine(lines[k])
		if quote == nil {
			continue
		}
		candidates = append(candidates, MainContract{
			Contract:      symbol,
			ContractMonth: lines[j],
			Close:         quote.Close,
			Volume:        quote.Volume,
		})
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Volume > candidates[b].Volume
	})
	best := candidates[0]
	return &best
}

// ParseQuoteLine reads a whitespace separated quote line. The first four
// numeric tokens are open, high, low and last; the last is the close. Volume
// columns follow the first percent token as after-hours, regular and total.
// Lines with fewer than four numbers return nil.
func ParseQuoteLine(line string) *Quote {
	tokens := strings.Fields(NormText(line))

	nums := make([]float64, 0, 4)
	for _, t := range tokens {
		if n := ParseNumber(t); n.Valid {
			nums = append(nums, n.Float64)
			if len(nums) == 4 {
				break
			}
		}
	}
	if len(nums) < 4 {
		return nil
	}
	quote := &Quote{Close: nums[3]}

	pct := -1
	for i, t := range tokens {
		if strings.Contains(t, "%") {
			pct = i
			break
		}
	}
	if pct >= 0 {
		for _, offset := range []int{3, 2, 1} {
			if idx := pct + offset; idx < len(tokens) {
				if v := ParseNumber(tokens[idx]); v.Valid {
					quote.Volume = int64(v.Float64)
					break
				}
			}
		}
		return quote
	}

	found := false
	var maxInt float64
	for _, t := range tokens {
		n := ParseNumber(t)
		if !n.Valid || !isInteger(n.Float64) {
			continue
		}
		if !found || n.Float64 > maxInt {
			maxInt = n.Float64
			found = true
		}
	}
	if found {
		quote.Volume = int64(maxInt)
	}
	return quote
}
