package searcher

import "math"

// Hyperparameters for MCTS

// DefaultExploration weights the prior-guided exploration bonus.
const DefaultExploration = 1.5

// DefaultSimulations is the per-move search budget.
const DefaultSimulations = 800

// puctScore blends the empirical value of a child with a prior-weighted
// exploration bonus:
//
//	q/n + prior * c * sqrt(ln(N)/n)
//
// An unvisited child scores +Inf so that every child is tried once before
// any is revisited.
func puctScore(total float64, visits int, prior, c, logParentVisits float64) float64 {
	if visits < 0 {
		panic("negative visit count")
	}
	if visits == 0 {
		return math.Inf(1)
	}
	n := float64(visits)
	return total/n + prior*c*math.Sqrt(logParentVisits/n)
}
