package taifex

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	contractKeys = []string{"契約"}
	monthKeys    = []string{"到期月份"}
	lastKeys     = []string{"最後成交價", "最後成交"}
	// Volume columns in priority order: total, regular session, after-hours.
	volumeKeys = [][]string{
		{"合計成交量"},
		{"一般交易時段成交量"},
		{"盤後交易時段成交量"},
	}
	headerMarkers = []string{"契約", "最後", "成交", "成交量"}
)

// ExtractFromTables reads the main contract for symbol out of the report's
// HTML tables. Every table with a recognisable header row is scanned and the
// highest-volume outright row wins; the first one seen is kept on ties.
func ExtractFromTables(markup []byte, symbol string) *MainContract {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil
	}
	var best *MainContract
	for _, table := range findAll(doc, atom.Table) {
		candidate := scanTable(table, symbol)
		if candidate != nil && (best == nil || candidate.Volume > best.Volume) {
			best = candidate
		}
	}
	return best
}

func scanTable(table *html.Node, symbol string) *MainContract {
	rows := findAll(table, atom.Tr)
	headerRow := -1
	var headers []string
	for i, tr := range rows {
		texts := nonEmpty(cellTexts(tr))
		if isHeaderRow(strings.Join(texts, " ")) {
			headerRow = i
			headers = texts
			break
		}
	}
	if headerRow < 0 {
		return nil
	}

	idxContract := headerIndex(headers, contractKeys)
	idxMonth := headerIndex(headers, monthKeys)
	idxLast := headerIndex(headers, lastKeys)
	if idxContract < 0 || idxMonth < 0 || idxLast < 0 {
		return nil
	}
	volumeIdx := make([]int, 0, len(volumeKeys))
	for _, keys := range volumeKeys {
		volumeIdx = append(volumeIdx, headerIndex(headers, keys))
	}

	var best *MainContract
	for _, tr := range rows[headerRow+1:] {
		texts := cellTexts(tr)
		if len(texts) == 0 {
			continue
		}
		if at(texts, idxContract) != symbol {
			continue
		}
		month := at(texts, idxMonth)
		if !IsMonthToken(month) {
			continue
		}
		last := ParseNumber(at(texts, idxLast))
		if !last.Valid {
			continue
		}
		var volume int64
		for _, idx := range volumeIdx {
			if idx < 0 {
				continue
			}
			if v := ParseNumber(at(texts, idx)); v.Valid {
				volume = int64(v.Float64)
				break
			}
		}
		if best == nil || volume > best.Volume {
			best = &MainContract{Contract: symbol, ContractMonth: month, Close: last.Float64, Volume: volume}
		}
	}
	return best
}

func isHeaderRow(joined string) bool {
	for _, marker := range headerMarkers {
		if !strings.Contains(joined, marker) {
			return false
		}
	}
	return true
}

// headerIndex returns the first header position containing any key once all
// whitespace is removed from both sides.
func headerIndex(headers []string, keys []string) int {
	for i, h := range headers {
		compact := stripSpace(h)
		for _, key := range keys {
			if strings.Contains(compact, stripSpace(key)) {
				return i
			}
		}
	}
	return -1
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(NormText(s)), "")
}

func cellTexts(tr *html.Node) []string {
	cells := findAll(tr, atom.Th, atom.Td)
	texts := make([]string, len(cells))
	for i, c := range cells {
		texts[i] = NormText(textContent(c))
	}
	return texts
}

func nonEmpty(texts []string) []string {
	out := texts[:0:0]
	for _, t := range texts {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func at(texts []string, idx int) string {
	if idx < 0 || idx >= len(texts) {
		return ""
	}
	return texts[idx]
}

// findAll returns descendants of n matching any of atoms, in document order.
func findAll(n *html.Node, atoms ...atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				for _, a := range atoms {
					if c.DataAtom == a {
						out = append(out, c)
						break
					}
				}
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// textContent concatenates the text below n, skipping script and style.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			return
		}
		if node.Type == html.ElementNode && (node.DataAtom == atom.Script || node.DataAtom == atom.Style) {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
