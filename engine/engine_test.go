package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shogi3d/evaluator"
	"shogi3d/game"
	"shogi3d/searcher"
)

// matedPosition is a decided position: the Gote king is checkmated in the
// bottom corner by a rook and a net of golds.
func matedPosition() *game.Position {
	return game.NewCustomPosition(game.Gote, map[game.Coord]game.Piece{
		{X: 0, Y: 0, Z: 0}: game.NewPiece(game.Gote, game.King),
		{X: 0, Y: 2, Z: 0}: game.NewPiece(game.Sente, game.Rook),
		{X: 1, Y: 1, Z: 0}: game.NewPiece(game.Sente, game.Gold),
		{X: 1, Y: 1, Z: 1}: game.NewPiece(game.Sente, game.Gold),
		{X: 0, Y: 1, Z: 1}: game.NewPiece(game.Sente, game.Gold),
		{X: 1, Y: 0, Z: 1}: game.NewPiece(game.Sente, game.Gold),
		{X: 8, Y: 8, Z: 1}: game.NewPiece(game.Sente, game.King),
	})
}

func TestRandomAgent(t *testing.T) {
	t.Run("returns a legal move", func(t *testing.T) {
		pos := game.NewPosition()
		move, _, err := NewRandomAgent(1).FindMove(pos)
		require.NoError(t, err)
		require.True(t, pos.IsLegalMove(move))
	})

	t.Run("same seed picks the same moves", func(t *testing.T) {
		pos := game.NewPosition()
		a := NewRandomAgent(42)
		b := NewRandomAgent(42)
		for i := 0; i < 5; i++ {
			moveA, _, err := a.FindMove(pos)
			require.NoError(t, err)
			moveB, _, err := b.FindMove(pos)
			require.NoError(t, err)
			require.Equal(t, moveA, moveB)
			require.True(t, pos.MakeMove(moveA))
		}
	})

	t.Run("errors on a decided position", func(t *testing.T) {
		pos := matedPosition()
		require.Equal(t, game.Checkmate, pos.Status)
		_, _, err := NewRandomAgent(1).FindMove(pos)
		require.Error(t, err)
	})
}

func TestSearchAgent(t *testing.T) {
	agent := NewSearchAgent(searcher.NewMCTS(evaluator.NewMaterial(),
		searcher.WithSimulations(32), searcher.WithMetrics()))

	pos := game.NewPosition()
	move, metric, err := agent.FindMove(pos)
	require.NoError(t, err)
	require.True(t, pos.IsLegalMove(move))
	require.Equal(t, 32, metric.Simulations)

	t.Run("panics without a searcher", func(t *testing.T) {
		require.Panics(t, func() { NewSearchAgent(nil) })
	})
}

func TestRequestMove(t *testing.T) {
	t.Run("withholds the result until the pacing floor", func(t *testing.T) {
		const floor = 50 * time.Millisecond
		started := time.Now()
		result := <-RequestMove(NewRandomAgent(1), game.NewPosition(), floor)
		require.NoError(t, result.Err)
		require.GreaterOrEqual(t, time.Since(started), floor)
	})

	t.Run("searches a clone, not the caller's position", func(t *testing.T) {
		pos := game.NewPosition()
		before := pos.Hash
		result := <-RequestMove(NewRandomAgent(1), pos, 0)
		require.NoError(t, result.Err)
		require.Equal(t, before, pos.Hash)
		require.Equal(t, 0, pos.MoveCount())
	})

	t.Run("delivers agent errors", func(t *testing.T) {
		result := <-RequestMove(NewRandomAgent(1), matedPosition(), 0)
		require.Error(t, result.Err)
	})
}

func TestGameRun(t *testing.T) {
	t.Run("random against random respects the move cap", func(t *testing.T) {
		g := NewGame(NewRandomAgent(7), NewRandomAgent(11), WithMaxMoves(30))
		gameMetric, moveMetrics, err := g.Run()
		require.NoError(t, err)

		require.LessOrEqual(t, gameMetric.TotalMoves, 30)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.Equal(t, game.Sente.String(), gameMetric.StartingPlayer)
		for i, m := range moveMetrics {
			require.Equal(t, i+1, m.Step)
		}
	})

	t.Run("a decided starting position ends immediately", func(t *testing.T) {
		g := NewGame(NewRandomAgent(1), NewRandomAgent(2), WithPosition(matedPosition()))
		gameMetric, moveMetrics, err := g.Run()
		require.NoError(t, err)

		require.Empty(t, moveMetrics)
		require.Equal(t, game.Checkmate.String(), gameMetric.Status)
		require.Equal(t, game.Sente.String(), gameMetric.Winner)
	})

	t.Run("every game gets a distinct id", func(t *testing.T) {
		a := NewGame(NewRandomAgent(1), NewRandomAgent(2))
		b := NewGame(NewRandomAgent(1), NewRandomAgent(2))
		require.NotEqual(t, a.ID, b.ID)
	})
}
