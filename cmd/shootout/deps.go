package main

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/database"
	"github.com/yourusername/shootout-odds/internal/datasource"
	"github.com/yourusername/shootout-odds/internal/ml"
	"github.com/yourusername/shootout-odds/internal/models"
	"github.com/yourusername/shootout-odds/internal/probability"
	"github.com/yourusername/shootout-odds/internal/repository"
	"github.com/yourusername/shootout-odds/internal/service"
)

// engine bundles the collaborators every command needs
type engine struct {
	layout    contest.Layout
	stats     *service.StatsService
	directory models.ParticipantDirectory
	factory   *probability.Factory
	db        *database.DB
	closers   []func() error
}

func (e *engine) Close() {
	for _, c := range e.closers {
		if err := c(); err != nil {
			log.WithError(err).Warn("Failed to release resource")
		}
	}
	if e.db != nil {
		e.db.Close()
	}
}

func buildEngine(ctx context.Context) (*engine, error) {
	layout, err := cfg.Layout()
	if err != nil {
		return nil, fmt.Errorf("invalid ball layout: %w", err)
	}

	remote, err := datasource.NewStatsClientFromConfig(cfg.StatsProvider, log)
	if err != nil {
		return nil, err
	}

	e := &engine{layout: layout}
	e.closers = append(e.closers, remote.Close)

	var repos *repository.Repositories
	if cfg.Database.Enabled {
		e.db, err = database.Initialize(ctx, cfg)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repos, err = repository.NewRepositories(e.db)
		if err != nil {
			e.Close()
			return nil, err
		}
	} else {
		repos = repository.NewMemoryRepositories(time.Duration(cfg.StatsProvider.CacheTTLMinutes) * time.Minute)
	}

	validator := service.NewDataValidator(log)
	e.stats = service.NewStatsService(remote, repos, validator, log)
	e.directory = service.NewDirectory(cfg.ParticipantList(), remote, validator)

	e.factory = &probability.Factory{
		Stats:            e.stats,
		Prior:            cfg.PriorEstimator(),
		LeagueCorrection: cfg.LocationModel.LeagueCorrection,
		Layout:           layout,
	}
	if cfg.LocationModel.URL != "" {
		classifier := ml.NewCachedModelFromConfig(cfg.LocationModel, log)
		e.factory.Classifier = classifier
		e.closers = append(e.closers, classifier.Close)
	}

	return e, nil
}
