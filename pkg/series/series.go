package series

import (
	"fmt"
	"strings"
	"time"

	"github.com/guregu/null/v5"
)

// Taipei is the exchange timezone. Taiwan has no daylight saving.
var Taipei = time.FixedZone("Asia/Taipei", 8*60*60)

const (
	// DefaultCount is the number of trading days returned when none is requested.
	DefaultCount = 30
	// MaxCount caps a single request.
	MaxCount = 60
	// DateLayout is the ISO calendar date used for point dates and anchors.
	DateLayout = "2006-01-02"
	// FetchedAtLayout renders fetch times as ISO-8601 with milliseconds.
	FetchedAtLayout = "2006-01-02T15:04:05.000-07:00"
)

// Session identifies a TAIFEX trading session. It marshals as the numeric
// marketCode used by the exchange.
type Session int

const (
	SessionRegular    Session = 0
	SessionAfterHours Session = 1
)

// Sessions lists every session in marketCode order.
var Sessions = []Session{SessionRegular, SessionAfterHours}

// ParseSession accepts "0", "1" or blank, which means the regular session.
func ParseSession(s string) (Session, error) {
	switch strings.TrimSpace(s) {
	case "", "0":
		return SessionRegular, nil
	case "1":
		return SessionAfterHours, nil
	default:
		return 0, fmt.Errorf("series: unknown session %q", s)
	}
}

// AfterHours reports whether s is the after-hours session.
func (s Session) AfterHours() bool { return s == SessionAfterHours }

// String returns the marketCode form.
func (s Session) String() string {
	if s == SessionAfterHours {
		return "1"
	}
	return "0"
}

// ClosePoint is one trading day's close for the main contract.
type ClosePoint struct {
	Date          string  `json:"date"`
	Close         float64 `json:"close"`
	ContractMonth string  `json:"contractMonth"`
	Volume        int64   `json:"volume"`
}

// Request describes a close series query.
type Request struct {
	Symbol  string
	Session Session
	Count   int
	// Anchor is the newest calendar day to consider. Zero means today in Taipei.
	Anchor time.Time
}

// Result is a close series, newest first, with its rolling averages.
type Result struct {
	Symbol    string       `json:"symbol"`
	Session   Session      `json:"marketCode"`
	FetchedAt string       `json:"fetchedAtTaipei"`
	AvgPrev4  null.Float   `json:"avgPrev4"`
	AvgNext4  null.Float   `json:"avgNext4"`
	Points    []ClosePoint `json:"data"`
}

// NewResult builds a Result and derives its averages from points.
func NewResult(symbol string, session Session, fetchedAt time.Time, points []ClosePoint) *Result {
	if points == nil {
		points = []ClosePoint{}
	}
	return &Result{
		Symbol:    symbol,
		Session:   session,
		FetchedAt: FormatFetchedAt(fetchedAt),
		AvgPrev4:  AvgPrev4(points),
		AvgNext4:  AvgNext4(points),
		Points:    points,
	}
}

// FormatFetchedAt renders t in Taipei with millisecond precision.
func FormatFetchedAt(t time.Time) string {
	return t.In(Taipei).Format(FetchedAtLayout)
}

// ClampCount maps an unset count to DefaultCount and bounds the rest to
// 1..MaxCount.
func ClampCount(n int) int {
	if n == 0 {
		return DefaultCount
	}
	if n < 1 {
		return 1
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// ParseAnchor reads a YYYY-MM-DD anchor as midnight in Taipei. Blank input
// returns the zero time.
func ParseAnchor(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, Taipei)
	if err != nil {
		return time.Time{}, fmt.Errorf("series: invalid anchor %q: %w", s, err)
	}
	return t, nil
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
