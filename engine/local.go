package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"shogi3d/experiments/metrics"
	"shogi3d/game"
)

// DefaultMaxMoves caps a local game so that two shuffling agents cannot
// loop forever; games hitting the cap count as undecided.
const DefaultMaxMoves = 500

type GameOption func(g *Game)

func WithMaxMoves(limit int) GameOption {
	return func(g *Game) {
		if limit > 0 {
			g.maxMoves = limit
		}
	}
}

func WithPosition(pos *game.Position) GameOption {
	return func(g *Game) {
		g.position = pos
	}
}

// Game drives one local game between two agents, Sente first.
type Game struct {
	ID       string
	position *game.Position
	agents   [2]Agent
	maxMoves int
}

func NewGame(sente, gote Agent, options ...GameOption) *Game {
	if sente == nil || gote == nil {
		panic("need an agent for each side")
	}
	g := &Game{ // Default values
		ID:       uuid.NewString(),
		position: game.NewPosition(),
		agents:   [2]Agent{sente, gote},
		maxMoves: DefaultMaxMoves,
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// Position exposes the current state for read-only consumers.
func (g *Game) Position() *game.Position {
	return g.position
}

// Run plays the game to its end and reports per-game and per-move
// statistics. The loop stops at a terminal status or at the move cap,
// whichever comes first.
func (g *Game) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	startTime := time.Now()
	startingPlayer := g.position.Turn
	var moveMetrics []metrics.MoveMetric

	log.Info().Str("game", g.ID).Msgf("%s to move first", startingPlayer)

	for g.position.Status == game.Playing && g.position.MoveCount() < g.maxMoves {
		mover := g.position.Turn
		agent := g.agents[mover]

		move, metric, err := agent.FindMove(g.position)
		if err != nil {
			return metrics.GameMetric{}, moveMetrics, fmt.Errorf("agent for %s failed: %w", mover, err)
		}
		if !g.position.MakeMove(move) {
			return metrics.GameMetric{}, moveMetrics, fmt.Errorf("agent for %s proposed illegal move %s", mover, move)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         g.position.MoveCount(),
			Player:       mover.String(),
			SearchMetric: metric,
		})
		if g.position.MoveCount()%50 == 0 {
			log.Info().Str("game", g.ID).Msgf("%d moves played", g.position.MoveCount())
		}
	}

	endTime := time.Now()
	winner := g.position.Winner()
	log.Info().
		Str("game", g.ID).
		Str("status", g.position.Status.String()).
		Str("winner", winner.String()).
		Int("moves", g.position.MoveCount()).
		Msg("game over")

	return metrics.GameMetric{
		StartingPlayer: startingPlayer.String(),
		Winner:         winner.String(),
		Status:         g.position.Status.String(),
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       endTime.Sub(startTime),
		TotalMoves:     g.position.MoveCount(),
	}, moveMetrics, nil
}
