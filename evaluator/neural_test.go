package evaluator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shogi3d/game"
)

func TestNeuralEvaluate(t *testing.T) {
	e := NewNeural(DefaultNetworkConfig())
	pos := game.NewPosition()

	t.Run("stays within the contract range", func(t *testing.T) {
		v := e.Evaluate(pos)
		require.GreaterOrEqual(t, v, -1.0)
		require.LessOrEqual(t, v, 1.0)
	})

	t.Run("is deterministic for a fixed network", func(t *testing.T) {
		require.Equal(t, e.Evaluate(pos), e.Evaluate(pos))
	})
}

func TestNeuralPolicy(t *testing.T) {
	e := NewNeural(DefaultNetworkConfig())
	pos := game.NewPosition()
	policy := e.Policy(pos)

	require.Len(t, policy, len(pos.LegalMoves()))
	sum := 0.0
	for _, p := range policy {
		require.Greater(t, p, 0.0)
		sum += p
	}
	require.InDelta(t, 1.0, sum, 0.0001)
}

func TestWeightsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	pos := game.NewPosition()

	original := NewNeural(DefaultNetworkConfig())
	require.NoError(t, original.SaveWeights(path))

	restored := NewNeural(DefaultNetworkConfig())
	require.NotEqual(t, original.Evaluate(pos), restored.Evaluate(pos),
		"Fresh networks start from different random weights")

	require.NoError(t, restored.LoadWeights(path))
	require.Equal(t, original.Evaluate(pos), restored.Evaluate(pos),
		"Loaded weights must reproduce the saved network exactly")
}

func TestLoadWeightsErrors(t *testing.T) {
	e := NewNeural(DefaultNetworkConfig())

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, e.LoadWeights(filepath.Join(t.TempDir(), "absent.json")))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.json")
		require.NoError(t, writeFile(t, path, "{not json"))
		require.Error(t, e.LoadWeights(path))
	})
}

func TestFromConfig(t *testing.T) {
	t.Run("no weights file gives a fresh network", func(t *testing.T) {
		e, err := FromConfig(DefaultNetworkConfig())
		require.NoError(t, err)
		require.NotNil(t, e)
	})

	t.Run("a broken weights file surfaces as an error", func(t *testing.T) {
		config := DefaultNetworkConfig()
		config.WeightsFile = filepath.Join(t.TempDir(), "absent.json")
		_, err := FromConfig(config)
		require.Error(t, err)
	})
}

func TestLoadNetworkConfig(t *testing.T) {
	t.Run("reads architecture and temperature", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "network.yaml")
		require.NoError(t, writeFile(t, path,
			"name: small\nhidden_layers: [32, 16]\ntemperature: 0.5\n"))

		config, err := LoadNetworkConfig(path)
		require.NoError(t, err)
		require.Equal(t, "small", config.Name)
		require.Equal(t, []int{32, 16}, config.HiddenLayers)
		require.Equal(t, 0.5, config.Temperature)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadNetworkConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestEncodePosition(t *testing.T) {
	t.Run("vector length matches the network input", func(t *testing.T) {
		require.Len(t, encodePosition(game.NewPosition()), featureSize)
	})

	t.Run("hand counts land in the trailing slots", func(t *testing.T) {
		pos := game.NewPosition()
		pos.Hands[game.Sente][game.Pawn] = 2
		pos.Hands[game.Gote][game.Rook] = 1

		features := encodePosition(pos) // Sente to move
		require.Equal(t, 2.0/18, features[game.NumSquares+len(handKinds)-1],
			"Own pawns fill the last own-hand slot")
		require.Equal(t, -1.0/18, features[game.NumSquares+len(handKinds)],
			"Opponent rooks fill the first opponent-hand slot, negated")
	})

	t.Run("own pieces are positive for either side to move", func(t *testing.T) {
		own := func(features []float64) (positive int) {
			for _, f := range features[:game.NumSquares] {
				if f > 0 {
					positive++
				}
			}
			return positive
		}

		pos := game.NewPosition()
		asSente := own(encodePosition(pos))
		require.True(t, pos.MakeMove(pos.LegalMoves()[0]))
		asGote := own(encodePosition(pos))

		require.Equal(t, 20, asSente, "Sente owns twenty pieces at the start")
		require.Equal(t, 20, asGote, "Gote still owns twenty pieces after one quiet move")
	})
}

func writeFile(t *testing.T, path, content string) error {
	t.Helper()
	return os.WriteFile(path, []byte(content), 0644)
}
