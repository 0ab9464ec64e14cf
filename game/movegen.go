package game

// 3D movement geometry. Every classical 2D offset (dx,dy) of a piece is
// available on the piece's own layer and on both adjacent layers, i.e. it
// generalizes to (dx,dy,dz) for dz in {-1,0,+1}. In addition the King gains
// the pure vertical steps (0,0,+-1) and the Rook the pure vertical ray, so
// the King covers the full 26-cell neighborhood and the Rook all six axes.
// Offsets below are written for Sente (forward dy = -1) and mirrored for
// Gote at table-build time.

type offset struct {
	dx, dy, dz int
}

type pattern struct {
	steps []offset // single-step destinations
	rays  []offset // sliding directions
}

var (
	kingSteps2D   = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	goldSteps2D   = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {0, 1}}
	silverSteps2D = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 1}, {1, 1}}
	knightSteps2D = [][2]int{{-1, -2}, {1, -2}}
	pawnSteps2D   = [][2]int{{0, -1}}
	rookRays2D    = [][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	bishopRays2D  = [][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	lanceRays2D   = [][2]int{{0, -1}}
	vertical      = []offset{{0, 0, -1}, {0, 0, 1}}
)

// expand3D lifts the 2D offsets onto the three reachable layers, in a
// fixed order so move generation stays deterministic.
func expand3D(dirs [][2]int) []offset {
	out := make([]offset, 0, len(dirs)*3)
	for _, d := range dirs {
		for dz := -1; dz <= 1; dz++ {
			out = append(out, offset{dx: d[0], dy: d[1], dz: dz})
		}
	}
	return out
}

// patterns[owner][kind] is the oriented movement pattern table.
var patterns [2][NumKinds]pattern

func init() {
	build := func(owner Player) {
		flip := func(dirs [][2]int) [][2]int {
			if owner == Sente {
				return dirs
			}
			out := make([][2]int, len(dirs))
			for i, d := range dirs {
				out[i] = [2]int{d[0], -d[1]}
			}
			return out
		}

		king := pattern{steps: append(expand3D(flip(kingSteps2D)), vertical...)}
		gold := pattern{steps: expand3D(flip(goldSteps2D))}
		rook := pattern{rays: append(expand3D(flip(rookRays2D)), vertical...)}
		bishop := pattern{rays: expand3D(flip(bishopRays2D))}

		t := &patterns[owner]
		t[King] = king
		t[Gold] = gold
		t[Rook] = rook
		t[Bishop] = bishop
		t[Silver] = pattern{steps: expand3D(flip(silverSteps2D))}
		t[Knight] = pattern{steps: expand3D(flip(knightSteps2D))}
		t[Lance] = pattern{rays: expand3D(flip(lanceRays2D))}
		t[Pawn] = pattern{steps: expand3D(flip(pawnSteps2D))}
		t[PromotedRook] = pattern{steps: expand3D(flip(bishopRays2D)), rays: rook.rays}
		t[PromotedBishop] = pattern{steps: expand3D(flip(rookRays2D)), rays: bishop.rays}
		t[PromotedSilver] = gold
		t[PromotedKnight] = gold
		t[PromotedLance] = gold
		t[PromotedPawn] = gold
	}
	build(Sente)
	build(Gote)
}

func shift(c Coord, o offset) Coord {
	return Coord{X: c.X + o.dx, Y: c.Y + o.dy, Z: c.Z + o.dz}
}

// pieceMoves appends all pseudo-legal board moves for the piece pc on from,
// including promotion variants.
func (p *Position) pieceMoves(from Coord, pc Piece, moves *[]Move) {
	owner := pc.Owner()
	pat := patterns[owner][pc.Kind()]

	emit := func(to Coord) {
		m := Move{From: from, To: to, Captured: p.Board.Squares[to.index()]}
		if pc.Promoted() || pc.Kind().Promote() == NoKind {
			*moves = append(*moves, m)
			return
		}
		canPromote := inPromotionZone(owner, from.Y) || inPromotionZone(owner, to.Y)
		if canPromote {
			promoted := m
			promoted.Promote = true
			*moves = append(*moves, promoted)
		}
		if !mustPromote(pc.Kind(), owner, to.Y) {
			*moves = append(*moves, m)
		}
	}

	for _, o := range pat.steps {
		to := shift(from, o)
		if !to.valid() {
			continue
		}
		dst := p.Board.Squares[to.index()]
		if dst != 0 && dst.Owner() == owner {
			continue
		}
		emit(to)
	}
	for _, o := range pat.rays {
		to := shift(from, o)
		for to.valid() {
			dst := p.Board.Squares[to.index()]
			if dst == 0 {
				emit(to)
				to = shift(to, o)
				continue
			}
			if dst.Owner() != owner {
				emit(to)
			}
			break
		}
	}
}

// mustPromote reports whether an unpromoted piece of the given kind would
// have no onward move from rank y: pawns and lances on the last rank,
// knights on the last two. Their moves all require forward progress, so
// the vertical freedom does not save them.
func mustPromote(kind Kind, owner Player, y int) bool {
	switch kind {
	case Pawn, Lance:
		return y == lastRank(owner)
	case Knight:
		if owner == Sente {
			return y <= 1
		}
		return y >= Height-2
	}
	return false
}

// dropKindOrder fixes the enumeration order of hand drops.
var dropKindOrder = [...]Kind{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// pseudoDropMoves enumerates drops of held pieces onto empty squares,
// subject to the dead-square rules and the layered nifu restriction.
func (p *Position) pseudoDropMoves() []Move {
	var moves []Move
	for _, kind := range dropKindOrder {
		if p.Hands[p.Turn][kind] == 0 {
			continue
		}
		for sq := 0; sq < NumSquares; sq++ {
			if p.Board.Squares[sq] != 0 {
				continue
			}
			to := coordOf(sq)
			if mustPromote(kind, p.Turn, to.Y) {
				// The piece would be stranded with no onward move.
				continue
			}
			if kind == Pawn && p.pawnOnFile(p.Turn, to.X, to.Z) {
				continue
			}
			moves = append(moves, Move{To: to, Drop: kind})
		}
	}
	return moves
}

// pawnOnFile reports whether owner already has an unpromoted pawn on the
// (x,z) file. Nifu generalizes per layer: each of the three z levels has
// its own nine files.
func (p *Position) pawnOnFile(owner Player, x, z int) bool {
	for y := 0; y < Height; y++ {
		pc := p.Board.Squares[Coord{X: x, Y: y, Z: z}.index()]
		if pc != 0 && pc.Owner() == owner && pc.Kind() == Pawn {
			return true
		}
	}
	return false
}

// pseudoMoves enumerates every pattern-legal move for the side to move in
// a deterministic order: board moves by ascending square index, then hand
// drops.
func (p *Position) pseudoMoves() []Move {
	var moves []Move
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Owner() != p.Turn {
			continue
		}
		p.pieceMoves(coordOf(sq), pc, &moves)
	}
	moves = append(moves, p.pseudoDropMoves()...)
	return moves
}

// LegalMoves enumerates every legal move for the side to move. The order
// is deterministic for a fixed position. A terminal position has no legal
// moves.
func (p *Position) LegalMoves() []Move {
	if p.Status != Playing {
		return nil
	}
	pseudo := p.pseudoMoves()
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if !p.leavesKingInCheck(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// hasLegalMove is the early-exit form of LegalMoves used by terminal-state
// detection.
func (p *Position) hasLegalMove() bool {
	for _, m := range p.pseudoMoves() {
		if !p.leavesKingInCheck(m) {
			return true
		}
	}
	return false
}
