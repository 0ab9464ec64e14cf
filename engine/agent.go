package engine

import (
	"fmt"

	"golang.org/x/exp/rand"

	"shogi3d/experiments/metrics"
	"shogi3d/game"
	"shogi3d/searcher"
)

// Agent picks one move for the side to move. FindMove never mutates the
// position it is handed.
type Agent interface {
	FindMove(pos *game.Position) (game.Move, metrics.SearchMetric, error)
}

// SearchAgent answers move requests with Monte Carlo tree search.
type SearchAgent struct {
	mcts *searcher.MCTS
}

func NewSearchAgent(mcts *searcher.MCTS) *SearchAgent {
	if mcts == nil {
		panic("Must provide a searcher")
	}
	return &SearchAgent{mcts: mcts}
}

func (a *SearchAgent) FindMove(pos *game.Position) (game.Move, metrics.SearchMetric, error) {
	move, err := a.mcts.Search(pos)
	if err != nil {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("search failed: %w", err)
	}
	return move, a.mcts.Metric(), nil
}

// RandomAgent plays a uniformly random legal move. It is the baseline
// opponent for experiments and a fallback for instant replies.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(pos *game.Position) (game.Move, metrics.SearchMetric, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, fmt.Errorf("no legal moves to pick from: position is %s", pos.Status)
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
