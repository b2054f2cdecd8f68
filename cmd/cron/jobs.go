package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zeromicro/go-zero/core/logx"

	"fiveday-api/internal/config"
	"fiveday-api/internal/logic"
	closespersist "fiveday-api/internal/persistence/closes"
	"fiveday-api/pkg/series"
)

// job refreshes one session for every symbol on a cron schedule.
type job struct {
	name    string
	spec    string
	session series.Session
}

type refresher interface {
	RefreshAll(ctx context.Context, symbols []string, session series.Session) []closespersist.Outcome
}

func jobsFromConfig(cfg *config.Config) []job {
	return []job{
		{name: "night", spec: cfg.Cron.Night, session: series.SessionAfterHours},
		{name: "day", spec: cfg.Cron.Day, session: series.SessionRegular},
	}
}

// scheduleJobs registers every job with a non-blank spec and returns how
// many were added.
func scheduleJobs(ctx context.Context, sched *cron.Cron, r refresher, symbols []string, jobs []job) (int, error) {
	added := 0
	for _, j := range jobs {
		if strings.TrimSpace(j.spec) == "" {
			continue
		}
		if _, err := sched.AddFunc(j.spec, func() { runJob(ctx, r, symbols, j) }); err != nil {
			return added, fmt.Errorf("job %s spec %q: %w", j.name, j.spec, err)
		}
		logx.Infof("cron: job=%s spec=%q session=%s", j.name, j.spec, j.session)
		added++
	}
	return added, nil
}

func runJob(ctx context.Context, r refresher, symbols []string, j job) int {
	if ctx.Err() != nil {
		return 0
	}
	start := time.Now()
	report := logic.RefreshReport(j.name, r.RefreshAll(ctx, symbols, j.session))
	failed := 0
	for _, res := range report.Results {
		if !res.Ok {
			failed++
		}
	}
	logx.WithContext(ctx).Infof("cron: job=%s symbols=%d failed=%d took=%dms",
		j.name, len(report.Results), failed, time.Since(start).Milliseconds())
	return failed
}

// cronLogger routes robfig/cron logs through logx.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logx.Infof("cron: %s %v", msg, keysAndValues)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logx.Errorf("cron: %s err=%v %v", msg, err, keysAndValues)
}
