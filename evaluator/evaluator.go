// Package evaluator defines the position-evaluation boundary the search
// engine depends on, plus two implementations: a deterministic material
// heuristic and a go-deep neural network.
package evaluator

import "shogi3d/game"

// Evaluator scores positions for the search engine. Both methods are
// stateless and re-entrant from the caller's perspective.
type Evaluator interface {
	// Evaluate returns a value in [-1, 1] from the perspective of the
	// player to move in the position.
	Evaluate(pos *game.Position) float64

	// Policy returns a prior probability per legal move. The distribution
	// should sum close to 1 over the position's legal moves; a missing
	// move is treated as probability 0 by callers, never as an error.
	Policy(pos *game.Position) map[game.Move]float64
}
