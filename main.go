package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"shogi3d/engine"
	"shogi3d/evaluator"
	"shogi3d/experiments"
	"shogi3d/searcher"
	"shogi3d/server"
)

func main() {
	mode := flag.String("mode", "demo", "demo, serve or experiment")
	addr := flag.String("addr", ":8080", "listen address for serve mode")
	simulations := flag.Int("simulations", searcher.DefaultSimulations, "simulations per move")
	experiment := flag.String("experiment", "budget", "budget, exploration or evaluator")
	network := flag.String("network", "", "YAML network config; empty plays with the material evaluator")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	switch *mode {
	case "demo":
		runDemo(*simulations, *network)
	case "serve":
		runServer(*addr, *simulations, *network)
	case "experiment":
		runExperiment(*experiment)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

// runDemo plays one engine-against-engine game and logs the result.
func runDemo(simulations int, network string) {
	eval, err := buildEvaluator(network)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build evaluator")
	}

	sente := engine.NewSearchAgent(searcher.NewMCTS(eval,
		searcher.WithSimulations(simulations), searcher.WithMetrics()))
	gote := engine.NewSearchAgent(searcher.NewMCTS(eval,
		searcher.WithSimulations(simulations), searcher.WithMetrics()))

	gameMetric, _, err := engine.NewGame(sente, gote).Run()
	if err != nil {
		log.Fatal().Err(err).Msg("demo game failed")
	}
	log.Info().
		Str("winner", gameMetric.Winner).
		Str("status", gameMetric.Status).
		Int("moves", gameMetric.TotalMoves).
		Dur("duration", gameMetric.Duration).
		Msg("demo game finished")
}

func runServer(addr string, simulations int, network string) {
	eval, err := buildEvaluator(network)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build evaluator")
	}

	s := server.NewServer(
		server.WithEvaluator(eval),
		server.WithSimulations(simulations),
	)
	log.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, s); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func runExperiment(name string) {
	var err error
	switch name {
	case "budget":
		err = experiments.RunBudgetExperiment()
	case "exploration":
		err = experiments.RunExplorationExperiment()
	case "evaluator":
		err = experiments.RunEvaluatorExperiment()
	default:
		log.Fatal().Msgf("unknown experiment %q", name)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", name)
	}
}

func buildEvaluator(network string) (evaluator.Evaluator, error) {
	if network == "" {
		return evaluator.NewMaterial(), nil
	}
	config, err := evaluator.LoadNetworkConfig(network)
	if err != nil {
		return nil, err
	}
	return evaluator.FromConfig(config)
}
