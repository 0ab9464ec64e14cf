package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"shogi3d/evaluator"
	"shogi3d/experiments/metrics"
	"shogi3d/game"
)

type Option func(m *MCTS)

// MCTS runs policy/value-guided Monte Carlo tree search. Within one Search
// invocation simulations execute strictly sequentially; the tree is built,
// read and discarded by that invocation alone.
type MCTS struct {
	simulations int
	exploration float64
	evaluate    evaluator.Evaluator
	metrics     metrics.Collector
	metric      metrics.SearchMetric
	root        *node
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// NewMCTS builds a searcher around the given evaluator.
func NewMCTS(eval evaluator.Evaluator, options ...Option) *MCTS {
	if eval == nil {
		panic("Must provide an evaluator")
	}
	m := &MCTS{ // Default values
		simulations: DefaultSimulations,
		exploration: DefaultExploration,
		evaluate:    eval,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search runs the configured simulation budget from the given position and
// returns the root child with the most visits, first encountered on ties.
// A terminal position is reported as an error before any simulation runs.
func (m *MCTS) Search(pos *game.Position) (game.Move, error) {
	root := newNode(nil, pos.Clone(), game.Move{}, m.evaluate.Policy(pos))
	if len(root.untried) == 0 {
		return game.Move{}, fmt.Errorf("no legal moves to search: position is %s", root.position.Status)
	}
	m.root = root

	m.metrics.Start(m.simulations, m.exploration)
	for i := 0; i < m.simulations; i++ {
		m.simulate(root)
	}
	m.metric = m.metrics.Complete()

	return root.bestMove(), nil
}

// Policy returns the move distribution implied by the last search's root
// visit counts.
func (m *MCTS) Policy() map[game.Move]float64 {
	if m.root == nil {
		return nil
	}
	return m.root.policyFromVisits()
}

// Metric returns the statistics collected for the last search.
func (m *MCTS) Metric() metrics.SearchMetric {
	return m.metric
}

// simulate runs one select/expand/evaluate/backpropagate cycle.
func (m *MCTS) simulate(root *node) {
	leaf := root
	for len(leaf.untried) == 0 && !leaf.terminal() {
		leaf = leaf.selectChild(m.exploration)
	}

	evaluated := leaf
	if !leaf.terminal() {
		evaluated = leaf.expand(m.evaluate.Policy)
	}

	value, ok := m.value(evaluated)
	if !ok {
		// Malformed evaluator output is fatal to this simulation only;
		// the tree stays consistent and the next simulation proceeds.
		m.metrics.AddAborted()
		return
	}
	backpropagate(evaluated, value)
	m.metrics.AddSimulation()
}

// value scores a node's position from the perspective of its player to
// move. Decided positions resolve directly; otherwise the evaluator is
// consulted and its output validated against the [-1, 1] contract.
func (m *MCTS) value(n *node) (float64, bool) {
	switch n.position.Status {
	case game.Checkmate:
		return -1, true
	case game.Stalemate, game.Draw:
		return 0, true
	}

	v := m.evaluate.Evaluate(n.position)
	if math.IsNaN(v) || v < -1 || v > 1 {
		log.Warn().Float64("value", v).Msg("evaluator violated the [-1,1] contract; aborting simulation")
		return 0, false
	}
	return v, true
}

// backpropagate walks from the evaluated node to the root. value is from
// the perspective of the player to move at n; each node's statistics are
// kept from the perspective of the player who moved into it, so the sign
// flips at every level.
func backpropagate(n *node, value float64) {
	v := -value
	for cur := n; cur != nil; cur = cur.parent {
		cur.visits++
		cur.total += v
		v = -v
	}
}
