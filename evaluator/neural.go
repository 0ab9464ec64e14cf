package evaluator

import (
	"encoding/json"
	"fmt"
	"os"

	deep "github.com/patrikeh/go-deep"

	"shogi3d/game"
)

// featureSize is the length of the encoded position vector: one entry per
// board cell plus the fourteen hand counts.
const featureSize = game.NumSquares + 2*len(handKinds)

var handKinds = [...]game.Kind{
	game.Rook, game.Bishop, game.Gold, game.Silver,
	game.Knight, game.Lance, game.Pawn,
}

// Neural evaluates positions with a go-deep feed-forward value network and
// derives move priors from a softmax over one-ply lookahead with that
// network. Model production (training) is external; this type only runs
// inference over loaded weights.
type Neural struct {
	network *deep.Neural
	config  NetworkConfig
}

// NewNeural builds the network from the config; freshly initialized
// weights are replaced by ApplyWeights when a weights file is loaded.
func NewNeural(config NetworkConfig) *Neural {
	if config.Temperature <= 0 {
		config.Temperature = 1.0
	}
	layout := append([]int{}, config.HiddenLayers...)
	layout = append(layout, 1)

	network := deep.NewNeural(&deep.Config{
		Inputs:     featureSize,
		Layout:     layout,
		Activation: deep.ActivationTanh,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.0, 0.1),
		Bias:       true,
	})
	return &Neural{network: network, config: config}
}

func (e *Neural) Evaluate(pos *game.Position) float64 {
	v := e.network.Predict(encodePosition(pos))[0]
	// The regression head is linear; keep the advertised output range.
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return v
}

func (e *Neural) Policy(pos *game.Position) map[game.Move]float64 {
	return onePlyPolicy(pos, e.Evaluate, e.config.Temperature)
}

type weightsFile struct {
	Name    string        `json:"name"`
	Weights [][][]float64 `json:"weights"`
}

// SaveWeights dumps the current network weights to a JSON file.
func (e *Neural) SaveWeights(path string) error {
	data, err := json.Marshal(weightsFile{
		Name:    e.config.Name,
		Weights: e.network.Dump().Weights,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write weights file: %w", err)
	}
	return nil
}

// LoadWeights applies weights from a JSON file produced by SaveWeights (or
// by an external training pipeline emitting the same shape).
func (e *Neural) LoadWeights(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read weights file: %w", err)
	}
	var wf weightsFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return fmt.Errorf("failed to parse weights file: %w", err)
	}
	e.network.ApplyWeights(wf.Weights)
	return nil
}

// encodePosition flattens a position into the network input vector, always
// oriented from the side to move: own pieces positive, opponent negative,
// ranks mirrored for Gote so "forward" points the same way for both sides.
func encodePosition(pos *game.Position) []float64 {
	features := make([]float64, featureSize)
	me := pos.Turn

	idx := 0
	for z := 0; z < game.Depth; z++ {
		for y := 0; y < game.Height; y++ {
			for x := 0; x < game.Width; x++ {
				c := game.Coord{X: x, Y: y, Z: z}
				if me == game.Gote {
					c.Y = game.Height - 1 - y
				}
				if pc := pos.PieceAt(c); pc != 0 {
					v := float64(pc.Kind()) / float64(game.NumKinds-1)
					if pc.Owner() != me {
						v = -v
					}
					features[idx] = v
				}
				idx++
			}
		}
	}
	for _, kind := range handKinds {
		features[idx] = float64(pos.HandCount(me, kind)) / 18
		idx++
	}
	for _, kind := range handKinds {
		features[idx] = -float64(pos.HandCount(me.Opponent(), kind)) / 18
		idx++
	}
	return features
}
