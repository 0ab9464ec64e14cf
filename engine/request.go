package engine

import (
	"time"

	"shogi3d/experiments/metrics"
	"shogi3d/game"
)

// MoveResult carries the outcome of an asynchronous move request.
type MoveResult struct {
	Move   game.Move
	Metric metrics.SearchMetric
	Err    error
}

// RequestMove runs the agent on a clone of the position and delivers the
// result on the returned channel. minDuration is a best-effort pacing
// floor: results are withheld until at least that much time has passed,
// so an instant engine reply still reads as deliberation. The channel is
// buffered; the result is never lost if the caller is slow to receive.
func RequestMove(agent Agent, pos *game.Position, minDuration time.Duration) <-chan MoveResult {
	result := make(chan MoveResult, 1)
	clone := pos.Clone()

	go func() {
		started := time.Now()
		move, metric, err := agent.FindMove(clone)
		if remaining := minDuration - time.Since(started); remaining > 0 {
			time.Sleep(remaining)
		}
		result <- MoveResult{Move: move, Metric: metric, Err: err}
	}()

	return result
}
