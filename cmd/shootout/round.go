package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/logger"
	"github.com/yourusername/shootout-odds/internal/models"
	"github.com/yourusername/shootout-odds/internal/probability"
	"github.com/yourusername/shootout-odds/internal/simulation"
)

func newRoundCmd() *cobra.Command {
	var (
		playerID int64
		rounds   int
		model    string
		seed     uint64
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "round",
		Short: "Simulate rounds for one player and show the score distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("model") {
				model = cfg.Simulation.Model
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Simulation.Seed
			}
			return runRound(cmd.Context(), playerID, rounds, model, seed, verbose)
		},
	}

	cmd.Flags().Int64Var(&playerID, "player", 0, "Player ID")
	cmd.Flags().IntVar(&rounds, "rounds", 1, "Number of rounds to simulate")
	cmd.Flags().StringVar(&model, "model", "", "Player model: bayesian or location")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 picks one from the clock)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every shot")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func runRound(ctx context.Context, playerID int64, rounds int, modelName string, seed uint64, verbose bool) error {
	if playerID <= 0 {
		return fmt.Errorf("%w: %d", models.ErrInvalidPlayerID, playerID)
	}
	model, err := probability.ParseModel(modelName)
	if err != nil {
		return err
	}

	eng, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	participant := findParticipant(ctx, eng.directory, playerID)
	source, err := eng.factory.SourceFor(ctx, model, participant)
	if err != nil {
		return err
	}

	var observer contest.ShotObserver
	if verbose {
		commentary := logger.NewCommentaryLogger(log)
		commentary.ObserveRoundStart(contest.StageQualifying, participant)
		observer = commentary
	}

	seed = resolveSeed(seed)
	scores, err := simulation.SimulateScores(ctx, rand.NewPCG(seed, uint64(playerID)), source, eng.layout, rounds, observer)
	if err != nil {
		return err
	}

	fmt.Print(simulation.GenerateDistributionReport(simulation.NewScoreDistribution(participant, scores, eng.layout)))
	return nil
}

// findParticipant looks the player up in the directory, falling back to a bare ID
func findParticipant(ctx context.Context, directory models.ParticipantDirectory, playerID int64) models.Participant {
	participants, err := directory.Participants(ctx)
	if err != nil {
		log.WithError(err).Warn("Participant directory unavailable")
	}
	for _, p := range participants {
		if p.ID == playerID {
			return p
		}
	}
	return models.Participant{ID: playerID, Name: fmt.Sprintf("Player %d", playerID)}
}
