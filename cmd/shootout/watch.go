package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/shootout-odds/internal/health"
	"github.com/yourusername/shootout-odds/internal/logger"
	"github.com/yourusername/shootout-odds/internal/metrics"
	"github.com/yourusername/shootout-odds/internal/probability"
	"github.com/yourusername/shootout-odds/internal/scheduler"
	"github.com/yourusername/shootout-odds/internal/simulation"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Refresh the odds on a schedule and serve them over HTTP and websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx)
		},
	}
}

func runWatch(ctx context.Context) error {
	model, err := probability.ParseModel(cfg.Simulation.Model)
	if err != nil {
		return err
	}

	eng, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	metrics.InitRegistry()

	hub := health.NewOddsHub(log)
	go hub.Run(ctx)

	serverCfg := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        strconv.Itoa(cfg.Schedule.ListenPort),
		Logger:      log,
		Hub:         hub,
	}
	if eng.db != nil {
		serverCfg.DB = eng.db
	}
	if cfg.Metrics.Enabled {
		if cfg.Metrics.Port == 0 || cfg.Metrics.Port == cfg.Schedule.ListenPort {
			serverCfg.Metrics = metrics.Handler()
			serverCfg.MetricsPath = cfg.Metrics.Path
		} else {
			go serveMetrics(ctx, cfg.Metrics.Port, cfg.Metrics.Path)
		}
	}

	server := health.NewServer(serverCfg)
	if err := server.Start(ctx); err != nil {
		return err
	}

	simLogger := logger.NewSimulationLogger(log)
	refresher := &scheduler.OddsRefresher{
		Directory: eng.directory,
		Builder: &simulation.FieldBuilder{
			Resolver:           eng.factory,
			Model:              model,
			SkipMissingResults: cfg.Simulation.SkipMissingResults,
			Logger:             simLogger,
		},
		Aggregator: &simulation.Aggregator{
			Layout:  eng.layout,
			Workers: cfg.Simulation.Workers,
			Seed:    cfg.Simulation.Seed,
			Model:   string(model),
			Logger:  simLogger,
		},
		Trials:    cfg.Simulation.Trials,
		Warmer:    eng.stats,
		Publisher: hub,
		Logger:    log.WithField("component", "refresher"),
	}

	sched := scheduler.NewScheduler(refresher, log)
	if _, err := sched.RunNow(ctx); err != nil {
		log.WithError(err).Warn("Initial odds refresh failed")
	}

	// with the schedule disabled the first refresh is served until shutdown
	if cfg.Schedule.Enabled {
		if err := sched.ScheduleOddsRefresh(cfg.Schedule.Cron, 0); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		log.WithField("next_run", sched.GetNextRun()).Info("Watching contest odds")
	}
	server.SetReady(true)
	<-ctx.Done()

	server.SetReady(false)
	sched.Stop()
	return nil
}

func serveMetrics(ctx context.Context, port int, path string) {
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("port", port).Info("Metrics server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("Metrics server error")
	}
}
