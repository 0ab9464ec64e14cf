package searcher

import (
	"math"

	"shogi3d/game"
)

// node is one state in the search tree. It owns its Position clone and its
// children; the parent pointer is a non-owning back-reference. untried
// holds the legal moves not yet expanded into children, in generation
// order, and priors maps each legal move to its policy prior for scoring
// the corresponding child.
type node struct {
	parent   *node
	position *game.Position
	move     game.Move // move that produced this node; undefined at the root
	children []*node
	untried  []game.Move
	priors   map[game.Move]float64
	visits   int
	total    float64
}

func newNode(parent *node, pos *game.Position, move game.Move, priors map[game.Move]float64) *node {
	return &node{
		parent:   parent,
		position: pos,
		move:     move,
		untried:  pos.LegalMoves(),
		priors:   priors,
	}
}

func (n *node) terminal() bool {
	return n.position.Status != game.Playing
}

// selectChild returns the child maximizing the PUCT score, first maximal
// child in expansion order on ties. Callers only descend into nodes that
// are fully expanded, so children is never empty here.
func (n *node) selectChild(exploration float64) *node {
	if len(n.children) == 0 {
		panic("selectChild on a node without children")
	}
	logN := math.Log(float64(n.visits))

	best := n.children[0]
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		score := puctScore(child.total, child.visits, n.prior(child.move), exploration, logN)
		if score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}

// prior looks up the policy prior for a move; moves absent from the policy
// output count as probability zero.
func (n *node) prior(move game.Move) float64 {
	return n.priors[move]
}

// expand applies the first untried move to a clone of this node's position
// and attaches the resulting child, fetching the child's own policy priors
// once.
func (n *node) expand(policy func(*game.Position) map[game.Move]float64) *node {
	move := n.untried[0]
	n.untried = n.untried[1:]

	pos := n.position.Clone()
	if !pos.MakeMove(move) {
		panic("generated move failed to apply during expansion")
	}

	child := newNode(n, pos, move, policy(pos))
	n.children = append(n.children, child)
	return child
}

// bestMove returns the most-visited child's move, first encountered on
// ties.
func (n *node) bestMove() game.Move {
	if len(n.children) == 0 {
		panic("bestMove on a node without children")
	}
	best := n.children[0]
	for _, child := range n.children[1:] {
		if child.visits > best.visits {
			best = child
		}
	}
	return best.move
}

// policyFromVisits converts the root's visit statistics into a move
// distribution.
func (n *node) policyFromVisits() map[game.Move]float64 {
	policy := make(map[game.Move]float64, len(n.children))
	if n.visits == 0 {
		return policy
	}
	for _, child := range n.children {
		policy[child.move] = float64(child.visits) / float64(n.visits)
	}
	return policy
}
