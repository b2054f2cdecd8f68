package taifex

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableMarkup(rows ...[]string) string {
	return "<html><body>" + tableFragment(rows...) + "</body></html>"
}

func tableFragment(rows ...[]string) string {
	var sb strings.Builder
	sb.WriteString("<table>")
	for i, row := range rows {
		sb.WriteString("<tr>")
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		for _, c := range row {
			fmt.Fprintf(&sb, "<%s>%s</%s>", tag, c, tag)
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table>")
	return sb.String()
}

var simpleHeader = []string{"契約", "到期月份", "最後成交價", "合計成交量"}

func TestExtractFromTablesSimple(t *testing.T) {
	markup := tableMarkup(simpleHeader, []string{"TX", "202501", "17500", "12345"})

	got := ExtractFromTables([]byte(markup), "TX")
	require.NotNil(t, got)
	assert.Equal(t, "TX", got.Contract)
	assert.Equal(t, "202501", got.ContractMonth)
	assert.InDelta(t, 17500, got.Close, 1e-9)
	assert.Equal(t, int64(12345), got.Volume)
}

func TestExtractFromTablesPicksHighestVolume(t *testing.T) {
	low := []string{"TX", "202502", "17520", "100"}
	high := []string{"TX", "202501", "17500", "500"}

	for _, order := range [][][]string{{low, high}, {high, low}} {
		markup := tableMarkup(simpleHeader, order[0], order[1])
		got := ExtractFromTables([]byte(markup), "TX")
		require.NotNil(t, got)
		assert.Equal(t, int64(500), got.Volume)
		assert.Equal(t, "202501", got.ContractMonth)
	}
}

func TestExtractFromTablesFirstWinsOnTie(t *testing.T) {
	markup := tableMarkup(simpleHeader,
		[]string{"TX", "202501", "17500", "300"},
		[]string{"TX", "202502", "17600", "300"},
	)
	got := ExtractFromTables([]byte(markup), "TX")
	require.NotNil(t, got)
	assert.Equal(t, "202501", got.ContractMonth)
}

func TestExtractFromTablesSkipsSpreadsAndOtherSymbols(t *testing.T) {
	markup := tableMarkup(simpleHeader,
		[]string{"TX", "202501/202502", "20", "99999"},
		[]string{"MTX", "202501", "17500", "88888"},
		[]string{"TX", "202501", "-", "77777"},
		[]string{"TX", "202503", "17800", "10"},
	)
	got := ExtractFromTables([]byte(markup), "TX")
	require.NotNil(t, got)
	assert.Equal(t, "202503", got.ContractMonth)
	assert.Equal(t, int64(10), got.Volume)
}

func TestExtractFromTablesVolumeFallback(t *testing.T) {
	header := []string{"契約", "到期 月份", "最後 成交價", "一般交易時段成交量", "盤後交易時段成交量", "合計成交量"}
	markup := tableMarkup(header,
		[]string{"TX", "202501", "17500", "400", "200", "-"},
		[]string{"TX", "202502", "17600", "-", "-", "-"},
	)
	got := ExtractFromTables([]byte(markup), "TX")
	require.NotNil(t, got)
	assert.Equal(t, "202501", got.ContractMonth)
	assert.Equal(t, int64(400), got.Volume)
}

func TestExtractFromTablesAcrossTables(t *testing.T) {
	first := tableFragment(simpleHeader, []string{"TX", "202501", "17500", "100"})
	second := tableFragment(simpleHeader, []string{"TX", "202502", "17600", "900"})
	got := ExtractFromTables([]byte("<html><body>"+first+"<p>夜盤</p>"+second+"</body></html>"), "TX")
	require.NotNil(t, got)
	assert.Equal(t, "202502", got.ContractMonth)
}

func TestExtractFromTablesNoHeader(t *testing.T) {
	markup := tableMarkup([]string{"商品", "價格"}, []string{"TX", "17500"})
	assert.Nil(t, ExtractFromTables([]byte(markup), "TX"))
	assert.Nil(t, ExtractFromTables([]byte("<p>no tables</p>"), "TX"))
}

func TestHeaderIndexFirstPositionWins(t *testing.T) {
	headers := []string{"契約", "最後 成交", "最後成交價"}
	assert.Equal(t, 1, headerIndex(headers, lastKeys))
	assert.Equal(t, -1, headerIndex(headers, monthKeys))
}
