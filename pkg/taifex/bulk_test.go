package taifex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/traditionalchinese"
)

const sampleFeed = "交易日期,契約,到期月份(週別),開盤價,最後成交價,合計成交量,交易時段\n" +
	"2025/01/03,TX,202501,17400,17500,90000,一般\n" +
	"2025/01/03,TX,202502,17450,17520,1200,一般\n" +
	"2025/01/03,TX,202501,17480,17490,30000,盤後\n" +
	"2025/01/03,MTX,202501,17400,17501,50000,一般\n" +
	"\n" +
	"2025/01/02,TX,202501,17300,17350,80000,一般\n"

func encodeBig5(t *testing.T, s string) []byte {
	t.Helper()
	out, err := traditionalchinese.Big5.NewEncoder().String(s)
	require.NoError(t, err)
	return []byte(out)
}

func TestDecodeFeedBig5(t *testing.T) {
	raw := encodeBig5(t, sampleFeed)
	assert.Equal(t, sampleFeed, DecodeFeed(raw))
}

func TestDecodeFeedShortFallsBackToUTF8(t *testing.T) {
	assert.Equal(t, "契約", DecodeFeed([]byte("契約")))
}

func TestDecodeFeedStripsBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\n1,2")...)
	assert.Equal(t, "a,b\n1,2", DecodeFeed(raw))
}

func TestGuessDelimiter(t *testing.T) {
	assert.Equal(t, ';', GuessDelimiter("a;b,c"))
	assert.Equal(t, ',', GuessDelimiter("a,b"))
	assert.Equal(t, ';', GuessDelimiter("ab"))
}

func TestParseFeed(t *testing.T) {
	feed, err := ParseFeed("\n契約;價格\n\nTX;1\nMTX\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"契約", "價格"}, feed.Header)
	require.Len(t, feed.Records, 2)
	assert.Equal(t, []string{"TX", "1"}, feed.Records[0])
	assert.Equal(t, []string{"MTX", ""}, feed.Records[1])
}

func TestParseFeedQuotedNumbers(t *testing.T) {
	feed, err := ParseFeed("契約,價格\nTX,\"17,500\"\n")
	require.NoError(t, err)
	require.Len(t, feed.Records, 1)
	assert.Equal(t, "17,500", feed.Records[0][1])
}

func TestParseFeedEmpty(t *testing.T) {
	_, err := ParseFeed("\n \n")
	require.Error(t, err)
}

func TestResolveFields(t *testing.T) {
	feed, err := ParseFeed(sampleFeed)
	require.NoError(t, err)

	fields, err := ResolveFields(feed.Header, BulkFieldSpecs)
	require.NoError(t, err)
	assert.Equal(t, 0, fields.Index(FieldDate))
	assert.Equal(t, 1, fields.Index(FieldContract))
	assert.Equal(t, 2, fields.Index(FieldMonth))
	assert.Equal(t, 4, fields.Index(FieldClose))
	assert.Equal(t, 5, fields.Index(FieldVolume))
	assert.Equal(t, 6, fields.Index(FieldSession))
}

func TestResolveFieldsOptionalSession(t *testing.T) {
	fields, err := ResolveFields([]string{"日期", "契約", "到期月份", "最後成交價", "合計成交量"}, BulkFieldSpecs)
	require.NoError(t, err)
	assert.Equal(t, -1, fields.Index(FieldSession))
}

func TestResolveFieldsSchemaMismatch(t *testing.T) {
	_, err := ResolveFields([]string{"日期", "契約"}, BulkFieldSpecs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))

	var mismatch *SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []string{FieldMonth, FieldClose, FieldVolume}, mismatch.Missing)
}

func TestResolveFieldsCandidatePriority(t *testing.T) {
	specs := []FieldSpec{{Name: "last", Candidates: []string{"最後成交價", "最後"}, Required: true}}
	fields, err := ResolveFields([]string{"最後報價", "最後成交價"}, specs)
	require.NoError(t, err)
	assert.Equal(t, 1, fields.Index("last"))
}

func TestSessionMatches(t *testing.T) {
	assert.True(t, SessionMatches("", false))
	assert.True(t, SessionMatches("  ", true))
	assert.True(t, SessionMatches("一般", false))
	assert.False(t, SessionMatches("一般", true))
	assert.True(t, SessionMatches("盤後", true))
	assert.True(t, SessionMatches("夜盤", true))
	assert.False(t, SessionMatches("盤後", false))
}

func TestFeedRows(t *testing.T) {
	feed, err := ParseFeed(sampleFeed)
	require.NoError(t, err)
	fields, err := ResolveFields(feed.Header, BulkFieldSpecs)
	require.NoError(t, err)

	rows := feed.Rows("TX", false, fields)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-01-03", rows[0].Date)
	assert.Equal(t, "202501", rows[0].ContractMonth)
	assert.InDelta(t, 17500, rows[0].Close.Float64, 1e-9)
	assert.InDelta(t, 90000, rows[0].Volume.Float64, 1e-9)
	assert.Equal(t, "2025-01-02", rows[2].Date)

	night := feed.Rows("TX", true, fields)
	require.Len(t, night, 1)
	assert.InDelta(t, 17490, night[0].Close.Float64, 1e-9)

	assert.Empty(t, feed.Rows("TMF", false, fields))
}
