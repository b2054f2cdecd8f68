package taifex

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/dnaeon/go-vcr/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Replays a recorded DailyMarketReportFut download.
// Skips when the cassette is absent and RECORD_CASSETTES != 1.
func TestClient_FetchBulk_Recorded(t *testing.T) {
	cassette := filepath.Join("testdata", "cassettes", "taifex_bulk")
	if _, err := os.Stat(cassette + ".yaml"); os.IsNotExist(err) {
		if os.Getenv("RECORD_CASSETTES") != "1" {
			t.Skipf("cassette missing; set RECORD_CASSETTES=1 to record: %s.yaml", cassette)
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(cassette), 0o755))
	}

	r, err := recorder.New(cassette)
	require.NoError(t, err)
	defer func() { _ = r.Stop() }()

	client := NewClient(WithHTTPClient(&http.Client{Transport: r}))
	text, err := client.FetchBulk(context.Background())
	require.NoError(t, err)

	feed, err := ParseFeed(text)
	require.NoError(t, err)
	fields, err := ResolveFields(feed.Header, BulkFieldSpecs)
	require.NoError(t, err)

	regular := feed.Rows("TX", false, fields)
	require.NotEmpty(t, regular, "recorded feed should carry TX rows")
	assert.Equal(t, "2025-01-10", regular[0].Date)
	assert.Equal(t, "202501", regular[0].ContractMonth)
	assert.InDelta(t, 23000, regular[0].Close.Float64, 1e-9)
	assert.InDelta(t, 88231, regular[0].Volume.Float64, 1e-9)

	for _, row := range feed.Rows("TX", true, fields) {
		assert.Equal(t, "盤後", row.Session)
	}
}
