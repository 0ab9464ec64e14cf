package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shogi3d/game"
)

func TestMaterialEvaluate(t *testing.T) {
	t.Run("the starting position is balanced", func(t *testing.T) {
		require.Zero(t, NewMaterial().Evaluate(game.NewPosition()))
	})

	t.Run("values stay within the contract range", func(t *testing.T) {
		e := NewMaterial()
		pos := game.NewPosition()
		for i := 0; i < 20 && pos.Status == game.Playing; i++ {
			moves := pos.LegalMoves()
			require.True(t, pos.MakeMove(moves[i%len(moves)]))

			v := e.Evaluate(pos)
			require.GreaterOrEqual(t, v, -1.0)
			require.LessOrEqual(t, v, 1.0)
		}
	})
}

func TestMaterialPolicy(t *testing.T) {
	e := NewMaterial()

	t.Run("covers every legal move and sums to one", func(t *testing.T) {
		pos := game.NewPosition()
		policy := e.Policy(pos)

		require.Len(t, policy, len(pos.LegalMoves()))
		sum := 0.0
		for _, p := range policy {
			require.Greater(t, p, 0.0)
			sum += p
		}
		require.InDelta(t, 1.0, sum, 0.0001)
	})

	t.Run("is deterministic", func(t *testing.T) {
		pos := game.NewPosition()
		require.Equal(t, e.Policy(pos), e.Policy(pos))
	})

	t.Run("nil for a decided position", func(t *testing.T) {
		pos := game.NewCustomPosition(game.Gote, map[game.Coord]game.Piece{
			{X: 0, Y: 0, Z: 0}: game.NewPiece(game.Gote, game.King),
			{X: 0, Y: 2, Z: 0}: game.NewPiece(game.Sente, game.Rook),
			{X: 1, Y: 1, Z: 0}: game.NewPiece(game.Sente, game.Gold),
			{X: 1, Y: 1, Z: 1}: game.NewPiece(game.Sente, game.Gold),
			{X: 0, Y: 1, Z: 1}: game.NewPiece(game.Sente, game.Gold),
			{X: 1, Y: 0, Z: 1}: game.NewPiece(game.Sente, game.Gold),
			{X: 8, Y: 8, Z: 1}: game.NewPiece(game.Sente, game.King),
		})
		require.Equal(t, game.Checkmate, pos.Status)
		require.Nil(t, e.Policy(pos))
	})

	t.Run("prefers winning a free rook", func(t *testing.T) {
		pos := game.NewCustomPosition(game.Sente, map[game.Coord]game.Piece{
			{X: 8, Y: 8, Z: 0}: game.NewPiece(game.Sente, game.King),
			{X: 4, Y: 4, Z: 1}: game.NewPiece(game.Sente, game.Pawn),
			{X: 4, Y: 3, Z: 1}: game.NewPiece(game.Gote, game.Rook),
			{X: 0, Y: 0, Z: 2}: game.NewPiece(game.Gote, game.King),
		})
		policy := e.Policy(pos)

		capture := game.Coord{X: 4, Y: 3, Z: 1}
		var captureProb, bestOther float64
		for move, p := range policy {
			if !move.IsDrop() && move.To == capture {
				captureProb = p
				continue
			}
			if p > bestOther {
				bestOther = p
			}
		}
		require.Greater(t, captureProb, bestOther,
			"Taking the rook dominates every quiet move")
	})
}

func TestSoftmax(t *testing.T) {
	moves := []game.Move{
		{To: game.Coord{X: 0}},
		{To: game.Coord{X: 1}},
		{To: game.Coord{X: 2}},
	}

	t.Run("equal scores give the uniform distribution", func(t *testing.T) {
		policy := softmax(moves, []float64{0.3, 0.3, 0.3}, 1.0)
		for _, p := range policy {
			require.InDelta(t, 1.0/3, p, 0.0001)
		}
	})

	t.Run("higher scores get more mass", func(t *testing.T) {
		policy := softmax(moves, []float64{-1, 0, 1}, 1.0)
		require.Greater(t, policy[moves[2]], policy[moves[1]])
		require.Greater(t, policy[moves[1]], policy[moves[0]])
	})

	t.Run("a non-positive temperature falls back to the default", func(t *testing.T) {
		require.Equal(t,
			softmax(moves, []float64{-1, 0, 1}, 1.0),
			softmax(moves, []float64{-1, 0, 1}, 0))
	})

	t.Run("large score gaps do not overflow", func(t *testing.T) {
		policy := softmax(moves, []float64{-1000, 0, 1000}, 1.0)
		sum := 0.0
		for _, p := range policy {
			require.False(t, p != p, "no NaN")
			sum += p
		}
		require.InDelta(t, 1.0, sum, 0.0001)
	})
}
