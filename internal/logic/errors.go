package logic

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"fiveday-api/internal/config"
	"fiveday-api/pkg/series"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrArchiveDisabled = errors.New("archive not configured")
)

// BadRequestError marks input the caller must fix.
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string { return e.Reason }

func badRequest(format string, args ...any) error {
	return &BadRequestError{Reason: fmt.Sprintf(format, args...)}
}

var symbolPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// parseSymbol upper-cases raw and checks it against the allowlist.
func parseSymbol(cfg *config.Config, raw string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if !symbolPattern.MatchString(symbol) {
		return "", badRequest("bad symbol")
	}
	if !cfg.AllowsSymbol(symbol) {
		return "", badRequest("unsupported symbol %s", symbol)
	}
	return symbol, nil
}

func parseMarketCode(raw string) (series.Session, error) {
	session, err := series.ParseSession(raw)
	if err != nil {
		return 0, badRequest("bad marketCode")
	}
	return session, nil
}
