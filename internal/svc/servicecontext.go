package svc

import (
	"log"
	"sort"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	gocache "github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/syncx"

	cachekeys "fiveday-api/internal/cache"
	"fiveday-api/internal/config"
	"fiveday-api/internal/model"
	closespersist "fiveday-api/internal/persistence/closes"
	sourcepkg "fiveday-api/pkg/source"
	taifexsource "fiveday-api/pkg/source/taifex"
)

type ServiceContext struct {
	Config config.Config

	SourceConfig    *sourcepkg.Config
	SourceProviders map[string]sourcepkg.Provider
	// LiveProvider serves uncached per-request walks.
	LiveProvider sourcepkg.Provider
	// CacheProvider computes the series behind the cache.
	CacheProvider sourcepkg.Provider

	Cache  gocache.Cache
	Closes *closespersist.Service

	// Optional DB models, injected when a DSN is provided.
	DBConn           sqlx.SqlConn
	ClosePointsModel model.FuturesClosePointsModel
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{Config: c}

	providers, err := buildProviders(&c)
	if err != nil {
		log.Fatalf("failed to build source providers: %v", err)
	}
	svc.SourceConfig = c.Source.Value
	svc.SourceProviders = providers
	svc.LiveProvider = pickProvider(providers, c.LiveProvider, firstOfType(&c, taifexsource.TypeDaily), sourceDefault(&c))
	svc.CacheProvider = pickProvider(providers, c.CacheProvider, sourceDefault(&c), firstOfType(&c, taifexsource.TypeBulk))
	if svc.LiveProvider == nil || svc.CacheProvider == nil {
		log.Fatalf("source providers unresolved: live=%q cache=%q", c.LiveProvider, c.CacheProvider)
	}

	ttl := cachekeys.NewTTLSet(c.TTL)
	var store closespersist.Store
	if c.RedisEnabled() {
		svc.Cache = gocache.New(gocache.CacheConf{{RedisConf: c.Redis, Weight: 100}},
			syncx.NewSingleFlight(), gocache.NewStat("closes"), model.ErrNotFound)
		store = closespersist.NewRedisStore(svc.Cache)
	} else {
		mem, err := closespersist.NewMemoryStore(ttl.Series)
		if err != nil {
			log.Fatalf("failed to init memory store: %v", err)
		}
		store = mem
	}

	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		if db, err := conn.RawDB(); err == nil {
			db.SetMaxOpenConns(c.Postgres.MaxOpen)
			db.SetMaxIdleConns(c.Postgres.MaxIdle)
			db.SetConnMaxLifetime(time.Hour)
		}
		svc.DBConn = conn
		svc.ClosePointsModel = model.NewFuturesClosePointsModel(conn)
	}

	closes, err := closespersist.NewService(closespersist.Config{
		Store:         store,
		Provider:      svc.CacheProvider,
		Archiver:      closespersist.NewArchiver(svc.ClosePointsModel),
		TTL:           ttl,
		Count:         c.Count,
		Coalesce:      c.Coalesce,
		FlightTimeout: c.CoalesceTimeout,
	})
	if err != nil {
		log.Fatalf("failed to init closes service: %v", err)
	}
	svc.Closes = closes
	return svc
}

// buildProviders builds the configured providers, or one provider per
// registered TAIFEX type when no source config is loaded.
func buildProviders(c *config.Config) (map[string]sourcepkg.Provider, error) {
	if c.Source.Loaded() {
		return c.Source.Value.BuildProviders()
	}
	return map[string]sourcepkg.Provider{
		taifexsource.TypeBulk:  taifexsource.NewBulkProvider(taifexsource.TypeBulk),
		taifexsource.TypeDaily: taifexsource.NewDailyProvider(taifexsource.TypeDaily),
	}, nil
}

func sourceDefault(c *config.Config) string {
	if c.Source.Loaded() {
		return c.Source.Value.DefaultName()
	}
	return ""
}

// firstOfType returns the alphabetically first provider name of typ.
func firstOfType(c *config.Config, typ string) string {
	if !c.Source.Loaded() {
		return typ
	}
	var names []string
	for name, p := range c.Source.Value.Providers {
		if p != nil && strings.EqualFold(p.Type, typ) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

func pickProvider(providers map[string]sourcepkg.Provider, names ...string) sourcepkg.Provider {
	for _, name := range names {
		if name == "" {
			continue
		}
		if p, ok := providers[name]; ok {
			return p
		}
	}
	return nil
}
