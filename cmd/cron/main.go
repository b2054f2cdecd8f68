package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zeromicro/go-zero/core/logx"

	"fiveday-api/internal/cli"
	"fiveday-api/internal/config"
	"fiveday-api/internal/svc"
	"fiveday-api/pkg/series"
)

const shutdownTimeout = 10 * time.Second // Grace period for a running refresh

var (
	configFile = flag.String("f", "etc/fiveday.yaml", "the config file")
	runOnce    = flag.Bool("once", false, "run every refresh job once and exit")
)

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)
	logx.MustSetup(cfg.Log)
	defer logx.Close()
	cli.LogConfigSummary(cfg)

	svcCtx := svc.NewServiceContext(*cfg)
	jobs := jobsFromConfig(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *runOnce {
		for _, j := range jobs {
			runJob(ctx, svcCtx.Closes, cfg.Symbols, j)
		}
		return
	}

	sched := cron.New(
		cron.WithLocation(series.Taipei),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
	)
	n, err := scheduleJobs(ctx, sched, svcCtx.Closes, cfg.Symbols, jobs)
	if err != nil {
		logx.Errorf("cron: schedule err=%v", err)
		os.Exit(1)
	}
	if n == 0 {
		logx.Error("cron: no schedules configured, nothing to do")
		return
	}

	sched.Start()
	logx.Infof("cron: scheduler started with %d jobs in %s", n, series.Taipei)

	<-ctx.Done()
	logx.Info("cron: shutdown signal received, waiting for running jobs")

	select {
	case <-sched.Stop().Done():
		logx.Info("cron: all jobs stopped cleanly")
	case <-time.After(shutdownTimeout):
		logx.Info("cron: shutdown timeout exceeded, forcing exit")
	}
}
