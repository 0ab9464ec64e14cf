package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"shogi3d/engine"
	"shogi3d/evaluator"
	"shogi3d/experiments/metrics"
	"shogi3d/searcher"
)

const (
	// NumGames is played per match up, seats alternating between games.
	NumGames = 30
	// MaxParallelGames bounds concurrent games; each game runs its own
	// searches, so this is also the process's effective parallelism.
	MaxParallelGames = 4
)

var budgetConfigs = []metrics.AgentConfig{
	{ID: 1, Simulations: 50, Evaluator: "material"},
	{ID: 2, Simulations: 100, Evaluator: "material"},
	{ID: 3, Simulations: 200, Evaluator: "material"},
	{ID: 4, Simulations: 400, Evaluator: "material"},
	{ID: 5, Simulations: 800, Evaluator: "material"},
}

var explorationConfigs = []metrics.AgentConfig{
	{ID: 1, Simulations: 200, Exploration: 0.5, Evaluator: "material"},
	{ID: 2, Simulations: 200, Exploration: 1.0, Evaluator: "material"},
	{ID: 3, Simulations: 200, Exploration: 1.5, Evaluator: "material"},
	{ID: 4, Simulations: 200, Exploration: 2.5, Evaluator: "material"},
}

// RunBudgetExperiment pits each simulation budget against a random-move
// baseline to measure how strength scales with search effort.
func RunBudgetExperiment() error {
	baseline := metrics.AgentConfig{ID: 0, Evaluator: "random"}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range budgetConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return runExperiment("budget_to_strength", append(budgetConfigs, baseline), matchUps)
}

// RunExplorationExperiment pairs each exploration constant against the
// default to find the sweet spot for this game's branching factor.
func RunExplorationExperiment() error {
	baseline := metrics.AgentConfig{ID: 0, Simulations: 200, Evaluator: "material"}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range explorationConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return runExperiment("exploration_to_strength", append(explorationConfigs, baseline), matchUps)
}

// RunEvaluatorExperiment compares the untrained value network against the
// material heuristic at a fixed budget.
func RunEvaluatorExperiment() error {
	material := metrics.AgentConfig{ID: 0, Simulations: 200, Evaluator: "material"}
	neural := metrics.AgentConfig{ID: 1, Simulations: 200, Evaluator: "neural"}
	matchUps := [][2]metrics.AgentConfig{{material, neural}}

	return runExperiment("evaluator_to_strength", []metrics.AgentConfig{material, neural}, matchUps)
}

type gameResult struct {
	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) error {
	log.Info().Msgf("starting %s experiment...", name)

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...",
			mi+1, len(matchUps), matchUp[0], matchUp[1])

		results := make([]gameResult, NumGames)
		seats := make([][2]metrics.AgentConfig, NumGames)

		group := errgroup.Group{}
		group.SetLimit(MaxParallelGames)
		for i := 0; i < NumGames; i++ {
			i := i
			// Alternate seats so neither config always moves first
			seat := matchUp
			if i%2 == 1 {
				seat[0], seat[1] = seat[1], seat[0]
			}
			seats[i] = seat

			group.Go(func() error {
				result, err := runGame(seat, uint64(mi*NumGames+i))
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				results[i] = result
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return err
		}

		for i, result := range results {
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     seats[i][0].ID,
				Agent2:     seats[i][1].ID,
				GameMetric: result.gameMetric,
			})
			for _, mm := range result.moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)
	return writeResults(name, configs, gameRecords, moveRecords)
}

// runGame plays one game with seat[0] as Sente.
func runGame(seat [2]metrics.AgentConfig, seed uint64) (gameResult, error) {
	sente, err := newAgent(seat[0], seed)
	if err != nil {
		return gameResult{}, err
	}
	gote, err := newAgent(seat[1], seed+1)
	if err != nil {
		return gameResult{}, err
	}

	gameMetric, moveMetrics, err := engine.NewGame(sente, gote).Run()
	if err != nil {
		return gameResult{}, err
	}
	return gameResult{gameMetric: gameMetric, moveMetrics: moveMetrics}, nil
}

// newAgent builds the agent an experiment config describes. Zero-valued
// simulation and exploration settings fall back to the searcher defaults.
func newAgent(config metrics.AgentConfig, seed uint64) (engine.Agent, error) {
	if config.Evaluator == "random" {
		return engine.NewRandomAgent(seed), nil
	}

	var eval evaluator.Evaluator
	switch config.Evaluator {
	case "", "material":
		eval = evaluator.NewMaterial()
	case "neural":
		neural, err := evaluator.FromConfig(evaluator.DefaultNetworkConfig())
		if err != nil {
			return nil, fmt.Errorf("building neural evaluator: %w", err)
		}
		eval = neural
	default:
		return nil, fmt.Errorf("unknown evaluator %q", config.Evaluator)
	}

	return engine.NewSearchAgent(searcher.NewMCTS(eval,
		searcher.WithSimulations(config.Simulations),
		searcher.WithExploration(config.Exploration),
		searcher.WithMetrics())), nil
}

func writeResults(name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return nil
}
