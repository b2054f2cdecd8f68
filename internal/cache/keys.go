package cache

import (
	"strings"
	"time"

	"fiveday-api/internal/config"
	"fiveday-api/pkg/series"
)

// Namespace is the Redis key prefix for futures payloads.
const Namespace = "FUT"

// DefaultSeriesTTL is how long a cached close series lives.
const DefaultSeriesTTL = config.DefaultSeriesTTLSeconds * time.Second

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Series time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Series: durationOrDefault(cfg.Series, DefaultSeriesTTL),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// CloseSeriesKey holds the serialized series for a symbol and session,
// e.g. FUT:CLOSES:TX:1.
func CloseSeriesKey(symbol string, session series.Session) string {
	return formatKey("CLOSES", strings.ToUpper(symbol), session.String())
}

// CloseSeriesTTL returns the TTL for cached close series.
func CloseSeriesTTL(ttl TTLSet) time.Duration {
	return ttl.Series
}
