package closespersist

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/syncx"

	cachekeys "fiveday-api/internal/cache"
	"fiveday-api/pkg/series"
	"fiveday-api/pkg/source"
)

// Config enumerates the dependencies of a Service.
type Config struct {
	Store    Store
	Provider source.Provider
	// Archiver is optional; nil skips the Postgres mirror.
	Archiver *Archiver
	TTL      cachekeys.TTLSet
	// Count is the number of trading days computed per series.
	Count int
	// Coalesce shares one computation between concurrent callers of a key.
	// The shared computation is detached from the caller that started it,
	// so one cancelled request does not fail the others waiting on it.
	Coalesce bool
	// FlightTimeout bounds a shared computation. Zero leaves it to the
	// provider's own timeouts.
	FlightTimeout time.Duration
}

// Service is the get-or-compute-and-store facade over cached close series.
type Service struct {
	store    Store
	provider source.Provider
	archiver *Archiver
	ttl      time.Duration
	count    int
	flight   syncx.SingleFlight
	flightTO time.Duration
}

func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("closespersist: store is required")
	}
	if cfg.Provider == nil {
		return nil, errors.New("closespersist: provider is required")
	}
	s := &Service{
		store:    cfg.Store,
		provider: cfg.Provider,
		archiver: cfg.Archiver,
		ttl:      cachekeys.CloseSeriesTTL(cfg.TTL),
		count:    series.ClampCount(cfg.Count),
		flightTO: cfg.FlightTimeout,
	}
	if cfg.Coalesce {
		s.flight = syncx.NewSingleFlight()
	}
	return s, nil
}

// GetOrWarm returns the cached series for symbol and session, computing and
// storing it on a miss. A failing cache read is logged and treated as a miss.
func (s *Service) GetOrWarm(ctx context.Context, symbol string, session series.Session) (*series.Result, error) {
	key := cachekeys.CloseSeriesKey(symbol, session)
	cached, err := s.store.Get(ctx, key)
	if err != nil {
		logx.WithContext(ctx).Errorf("closespersist: cache get key=%s err=%v", key, err)
	}
	if cached != nil {
		return cached, nil
	}
	return s.compute(ctx, key, symbol, session)
}

// Refresh recomputes the series and overwrites the cached value.
func (s *Service) Refresh(ctx context.Context, symbol string, session series.Session) (*series.Result, error) {
	return s.compute(ctx, cachekeys.CloseSeriesKey(symbol, session), symbol, session)
}

// Recent reads archived points. It returns nil when no archive is configured.
func (s *Service) Recent(ctx context.Context, symbol string, session series.Session, limit int) ([]series.ClosePoint, error) {
	return s.archiver.Recent(ctx, symbol, session, limit)
}

// Archived reports whether computed series are mirrored to Postgres.
func (s *Service) Archived() bool {
	return s.archiver != nil
}

func (s *Service) compute(ctx context.Context, key, symbol string, session series.Session) (*series.Result, error) {
	if s.flight == nil {
		return s.computeAndStore(ctx, key, symbol, session)
	}
	v, err := s.flight.Do(key, func() (any, error) {
		shared := context.WithoutCancel(ctx)
		if s.flightTO > 0 {
			var cancel context.CancelFunc
			shared, cancel = context.WithTimeout(shared, s.flightTO)
			defer cancel()
		}
		return s.computeAndStore(shared, key, symbol, session)
	})
	if err != nil {
		return nil, err
	}
	return v.(*series.Result), nil
}

func (s *Service) computeAndStore(ctx context.Context, key, symbol string, session series.Session) (*series.Result, error) {
	res, err := s.provider.Closes(ctx, series.Request{Symbol: symbol, Session: session, Count: s.count})
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 {
		if err := s.store.Put(ctx, key, res, s.ttl); err != nil {
			logx.WithContext(ctx).Errorf("closespersist: cache put key=%s err=%v", key, err)
		}
	}
	if err := s.archiver.Archive(ctx, res); err != nil {
		logx.WithContext(ctx).Errorf("closespersist: archive symbol=%s session=%s err=%v", symbol, session, err)
	}
	return res, nil
}

// Outcome is the per-symbol result of RefreshAll.
type Outcome struct {
	Symbol  string
	Session series.Session
	Result  *series.Result
	Err     error
}

// RefreshAll refreshes each symbol in turn. A failing symbol is logged and
// does not stop the rest.
func (s *Service) RefreshAll(ctx context.Context, symbols []string, session series.Session) []Outcome {
	outcomes := make([]Outcome, 0, len(symbols))
	for _, symbol := range symbols {
		res, err := s.Refresh(ctx, symbol, session)
		if err != nil {
			logx.WithContext(ctx).Errorf("closespersist: refresh symbol=%s session=%s err=%v", symbol, session, err)
		} else {
			logx.WithContext(ctx).Infof("closespersist: refreshed symbol=%s session=%s points=%d", symbol, session, len(res.Points))
		}
		outcomes = append(outcomes, Outcome{Symbol: symbol, Session: session, Result: res, Err: err})
	}
	return outcomes
}
