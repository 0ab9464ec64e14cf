package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashInitialized(t *testing.T) {
	pos := NewPosition()
	require.Equal(t, pos.CalculateHash(), pos.Hash,
		"Initial hash should match a from-scratch recomputation")
}

func TestHashCloneEquality(t *testing.T) {
	pos := NewPosition()
	moves := pos.LegalMoves()
	require.NotEmpty(t, moves)
	require.True(t, pos.MakeMove(moves[0]))

	clone := pos.Clone()
	require.Equal(t, pos.Hash, clone.Hash, "Clone should carry the same hash")
	require.Equal(t, clone.CalculateHash(), clone.Hash,
		"Clone hash should match a from-scratch recomputation")
}

func TestIncrementalHashMatchesRecompute(t *testing.T) {
	// Walk a deterministic line of play and verify the incrementally
	// maintained hash against a full recomputation at every ply. The line
	// passes through captures and drops, exercising the hand keys too.
	pos := NewPosition()
	for ply := 0; ply < 60; ply++ {
		moves := pos.LegalMoves()
		if len(moves) == 0 {
			break
		}
		// Prefer a capture when one exists so hand counts change.
		move := moves[len(moves)/2]
		for _, m := range moves {
			if m.Captured != 0 {
				move = m
				break
			}
		}
		require.True(t, pos.MakeMove(move), "Generated move should apply at ply %d", ply)
		require.Equal(t, pos.CalculateHash(), pos.Hash,
			"Incremental hash should match recomputation after %s at ply %d", move, ply)
	}
}

func TestIncrementalHashSurvivesUndo(t *testing.T) {
	pos := NewPosition()
	want := []uint64{pos.Hash}

	for ply := 0; ply < 10; ply++ {
		moves := pos.LegalMoves()
		require.NotEmpty(t, moves)
		require.True(t, pos.MakeMove(moves[ply%len(moves)]))
		want = append(want, pos.Hash)
	}

	for ply := 9; ply >= 0; ply-- {
		require.True(t, pos.UndoMove(), "Undo should succeed at ply %d", ply)
		require.Equal(t, want[ply], pos.Hash, "Undo should restore the hash of ply %d", ply)
		require.Equal(t, pos.CalculateHash(), pos.Hash,
			"Restored hash should match recomputation at ply %d", ply)
	}
	require.False(t, pos.UndoMove(), "Undo on the initial position should fail")
}

func TestHashDistinguishesSideToMove(t *testing.T) {
	a := NewPosition()
	b := NewPosition()
	b.Turn = Gote
	require.NotEqual(t, a.CalculateHash(), b.CalculateHash(),
		"Identical boards with different side to move should hash differently")
}
