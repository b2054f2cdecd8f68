package taifex

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/traditionalchinese"
)

// minDecodedRunes is the shortest Big5 decode accepted before the payload
// is retried as UTF-8.
const minDecodedRunes = 10

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Feed is a parsed bulk daily report: a header row plus data records.
type Feed struct {
	Header  []string
	Records [][]string
}

// DecodeFeed turns the raw open-data payload into text. The feed is published
// in Big5; a decode that yields almost nothing falls back to UTF-8.
func DecodeFeed(raw []byte) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	decoded, err := traditionalchinese.Big5.NewDecoder().Bytes(raw)
	text := string(decoded)
	if err != nil || utf8.RuneCountInString(text) < minDecodedRunes {
		text = string(raw)
	}
	return strings.TrimPrefix(text, "\ufeff")
}

// GuessDelimiter picks the record separator from the first line of the feed.
func GuessDelimiter(firstLine string) rune {
	switch {
	case strings.Contains(firstLine, ";"):
		return ';'
	case strings.Contains(firstLine, ","):
		return ','
	default:
		return ';'
	}
}

// ParseFeed splits decoded feed text into a header and records. Blank
// records are skipped and short records are padded to the header width.
func ParseFeed(text string) (*Feed, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = GuessDelimiter(firstNonBlankLine(text))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	feed := &Feed{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("taifex: parse feed: %w", err)
		}
		if isBlankRecord(record) {
			continue
		}
		if feed.Header == nil {
			feed.Header = trimAll(record)
			continue
		}
		feed.Records = append(feed.Records, padRecord(record, len(feed.Header)))
	}
	if feed.Header == nil {
		return nil, fmt.Errorf("taifex: parse feed: missing header row")
	}
	return feed, nil
}

func firstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func trimAll(record []string) []string {
	out := make([]string, len(record))
	for i, field := range record {
		out[i] = strings.TrimSpace(field)
	}
	return out
}

func padRecord(record []string, width int) []string {
	if len(record) >= width {
		return record
	}
	padded := make([]string, width)
	copy(padded, record)
	return padded
}
