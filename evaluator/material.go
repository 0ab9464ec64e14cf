package evaluator

import "shogi3d/game"

// Material evaluates positions by material balance alone and derives its
// policy from a softmax over one-ply lookahead. It is fully deterministic,
// which makes it the default evaluator for tests and a baseline opponent.
type Material struct {
	// Temperature flattens (large) or sharpens (small) the policy
	// distribution.
	Temperature float64
}

// NewMaterial returns a material evaluator with the default temperature.
func NewMaterial() *Material {
	return &Material{Temperature: 1.0}
}

func (e *Material) Evaluate(pos *game.Position) float64 {
	return pos.Evaluate()
}

func (e *Material) Policy(pos *game.Position) map[game.Move]float64 {
	return onePlyPolicy(pos, (*game.Position).Evaluate, e.Temperature)
}
