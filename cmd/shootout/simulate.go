package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/logger"
	"github.com/yourusername/shootout-odds/internal/probability"
	"github.com/yourusername/shootout-odds/internal/simulation"
)

type simulateOptions struct {
	model   string
	trials  int
	seed    uint64
	workers int
	format  string
	output  string
	verbose bool
}

func newSimulateCmd() *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Estimate win odds for the contest field",
		RunE: func(cmd *cobra.Command, args []string) error {
			applySimulateDefaults(cmd, opts)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSimulate(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.model, "model", "", "Player model: bayesian or location")
	cmd.Flags().IntVar(&opts.trials, "trials", 0, "Number of simulated contests")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Parallel workers (0 uses every CPU)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Report format: console, csv or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Trace one contest shot by shot before aggregating")

	return cmd
}

// applySimulateDefaults fills unset flags from configuration
func applySimulateDefaults(cmd *cobra.Command, opts *simulateOptions) {
	if !cmd.Flags().Changed("model") {
		opts.model = cfg.Simulation.Model
	}
	if !cmd.Flags().Changed("trials") {
		opts.trials = cfg.Simulation.Trials
	}
	if !cmd.Flags().Changed("seed") {
		opts.seed = cfg.Simulation.Seed
	}
	if !cmd.Flags().Changed("workers") {
		opts.workers = cfg.Simulation.Workers
	}
	if !cmd.Flags().Changed("format") {
		opts.format = cfg.Simulation.Format
	}
	if !cmd.Flags().Changed("output") {
		opts.output = cfg.Simulation.OutputPath
	}
	if !cmd.Flags().Changed("verbose") {
		opts.verbose = cfg.Simulation.Verbose
	}
}

func runSimulate(ctx context.Context, opts *simulateOptions) error {
	model, err := probability.ParseModel(opts.model)
	if err != nil {
		return err
	}

	eng, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	participants, err := eng.directory.Participants(ctx)
	if err != nil {
		return err
	}

	simLogger := logger.NewSimulationLogger(log)
	builder := &simulation.FieldBuilder{
		Resolver:           eng.factory,
		Model:              model,
		SkipMissingResults: cfg.Simulation.SkipMissingResults,
		Logger:             simLogger,
	}
	field, err := builder.Build(ctx, participants)
	if err != nil {
		return err
	}

	opts.seed = resolveSeed(opts.seed)
	if opts.verbose {
		if err := traceContest(ctx, eng.layout, field, opts.seed); err != nil {
			return err
		}
	}

	agg := &simulation.Aggregator{
		Layout:  eng.layout,
		Workers: opts.workers,
		Seed:    opts.seed,
		Model:   string(model),
		Logger:  simLogger,
	}
	result, err := agg.Run(ctx, field.Participants, field.SourceFor, opts.trials)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := simulation.WriteReportFile(opts.output, result, opts.format); err != nil {
			return err
		}
		log.WithField("path", opts.output).Info("Report written")
		return nil
	}
	return simulation.WriteReport(os.Stdout, result, opts.format)
}

// traceContest plays a single contest with shot-by-shot commentary
func traceContest(ctx context.Context, layout contest.Layout, field *simulation.Field, seed uint64) error {
	entrants := make([]contest.Entrant, len(field.Participants))
	for i, p := range field.Participants {
		source, err := field.SourceFor(ctx, p)
		if err != nil {
			return err
		}
		entrants[i] = contest.Entrant{Participant: p, Source: source}
	}

	tournament := contest.NewTournament(layout)
	tournament.Observer = logger.NewCommentaryLogger(log)

	outcome, err := tournament.Run(rand.NewPCG(seed, ^uint64(0)), entrants)
	if err != nil {
		return err
	}
	fmt.Printf("Traced contest winner: %s\n\n", outcome.Winner)
	return nil
}
