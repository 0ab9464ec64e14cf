package evaluator

import (
	"math"

	"shogi3d/game"
)

// onePlyPolicy derives a move distribution from a value function: each
// legal move is scored by the resulting position's value for the mover and
// the scores are normalized with a softmax.
func onePlyPolicy(pos *game.Position, value func(*game.Position) float64, temperature float64) map[game.Move]float64 {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return nil
	}

	scores := make([]float64, len(moves))
	for i, m := range moves {
		child := pos.Clone()
		if !child.MakeMove(m) {
			panic("generated move failed to apply during policy evaluation")
		}
		// The child value is from the opponent's perspective.
		scores[i] = -terminalOr(child, value)
	}
	return softmax(moves, scores, temperature)
}

// terminalOr resolves decided positions directly and defers to the value
// function otherwise.
func terminalOr(pos *game.Position, value func(*game.Position) float64) float64 {
	switch pos.Status {
	case game.Checkmate:
		return -1
	case game.Stalemate, game.Draw:
		return 0
	}
	return value(pos)
}

// softmax turns per-move scores into a probability distribution keyed by
// move.
func softmax(moves []game.Move, scores []float64, temperature float64) map[game.Move]float64 {
	if temperature <= 0 {
		temperature = 1.0
	}

	maxScore := math.Inf(-1)
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}

	policy := make(map[game.Move]float64, len(moves))
	var sum float64
	for i, m := range moves {
		w := math.Exp((scores[i] - maxScore) / temperature)
		policy[m] = w
		sum += w
	}
	for m := range policy {
		policy[m] /= sum
	}
	return policy
}
