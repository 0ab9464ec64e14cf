package game

import "fmt"

// Status describes whether a position is still playable and, if not, how
// the game ended. Checkmate and Stalemate refer to the side to move.
type Status int8

const (
	Playing Status = iota
	Checkmate
	Stalemate
	Draw
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "Playing"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case Draw:
		return "Draw"
	}
	return "Unknown"
}

// repetitionLimit ends the game as a draw once the same position (board,
// hands and side to move) has occurred this many times.
const repetitionLimit = 4

// numHandKinds sizes the per-player hand array; only the base kinds
// (indices King..Pawn) are ever populated.
const numHandKinds = int(Pawn) + 1

type record struct {
	move Move
	// hash of the position before the move, for undo and repetition counting
	hash uint64
}

// Position is the full mutable game state: board occupancy, the two
// captured-piece pools, whose turn it is, the game status, and an
// incrementally maintained Zobrist hash.
type Position struct {
	Board  Board
	Hands  [2][numHandKinds]int
	Turn   Player
	Status Status
	Hash   uint64

	history []record
}

// NewPosition returns the canonical starting position: classical shogi
// setup on the middle layer, empty outer layers, Sente to move.
func NewPosition() *Position {
	p := &Position{
		Board: initialBoard(),
		Turn:  Sente,
	}
	p.Hash = p.CalculateHash()
	return p
}

// NewCustomPosition builds a position from explicit placements, for
// setting up problems and endgame studies. The hash is computed from
// scratch and the status is derived from the resulting position.
func NewCustomPosition(turn Player, placements map[Coord]Piece) *Position {
	p := &Position{Turn: turn}
	for c, pc := range placements {
		if !c.valid() {
			panic(fmt.Sprintf("placement off the board: %v", c))
		}
		p.Board.Squares[c.index()] = pc
	}
	p.Hash = p.CalculateHash()
	p.refreshStatus()
	return p
}

// PieceAt is a bounds-checked lookup. Out-of-range coordinates read as
// empty; the board boundary is enforced by move legality, not here.
func (p *Position) PieceAt(c Coord) Piece {
	if !c.valid() {
		return 0
	}
	return p.Board.Squares[c.index()]
}

// HandCount returns how many pieces of the given base kind the player
// holds off-board.
func (p *Position) HandCount(owner Player, kind Kind) int {
	if owner != Sente && owner != Gote {
		return 0
	}
	kind = kind.Demote()
	if kind <= NoKind || int(kind) >= numHandKinds {
		return 0
	}
	return p.Hands[owner][kind]
}

// Clone deep-copies the board, hands, turn, status and hash. The move
// history is deliberately dropped: search clones never undo, and legality
// depends only on the current board, hands and side to move. Repetition
// draws are therefore only detected on the root game position.
func (p *Position) Clone() *Position {
	c := *p
	c.history = nil
	return &c
}

// MoveCount returns the number of moves applied since this position was
// created.
func (p *Position) MoveCount() int {
	return len(p.history)
}

// Winner returns the winning player for a decided game, or NoPlayer while
// playing or drawn.
func (p *Position) Winner() Player {
	if p.Status == Checkmate {
		return p.Turn.Opponent()
	}
	return NoPlayer
}

// MakeMove validates and applies a move. It returns false, with the
// position untouched, for any illegal move. On success the move is applied
// atomically: piece movement or drop, capture into the mover's pool
// (demoted), promotion, history append, turn flip, incremental hash update
// and terminal-state detection.
func (p *Position) MakeMove(m Move) bool {
	if p.Status != Playing {
		return false
	}
	m, ok := p.normalize(m)
	if !ok {
		return false
	}
	if !p.isLegal(m) {
		return false
	}

	prev := p.Hash
	p.apply(m)
	p.history = append(p.history, record{move: m, hash: prev})
	p.refreshStatus()
	return true
}

// IsLegalMove reports whether the move could be applied to the current
// position.
func (p *Position) IsLegalMove(m Move) bool {
	if p.Status != Playing {
		return false
	}
	m, ok := p.normalize(m)
	if !ok {
		return false
	}
	return p.isLegal(m)
}

// UndoMove reverts the most recent move. It returns false when there is
// nothing to undo.
func (p *Position) UndoMove() bool {
	if len(p.history) == 0 {
		return false
	}
	last := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	p.unapply(last.move, last.hash)
	// A move could only have been applied from a playable position.
	p.Status = Playing
	return true
}

// normalize fills in the Captured field from the board so caller-built
// moves compare equal to generated ones, and rejects structurally invalid
// moves early.
func (p *Position) normalize(m Move) (Move, bool) {
	if !m.To.valid() {
		return m, false
	}
	if m.IsDrop() {
		if m.From != (Coord{}) {
			// Drops carry no origin; tolerate only the zero value.
			return m, false
		}
		m.Promote = false
		m.Captured = 0
		return m, true
	}
	if !m.From.valid() {
		return m, false
	}
	m.Captured = p.Board.Squares[m.To.index()]
	return m, true
}

// isLegal checks a normalized move against the generator: the generated
// move list is the single source of truth for legality.
func (p *Position) isLegal(m Move) bool {
	var pseudo []Move
	if m.IsDrop() {
		pseudo = p.pseudoDropMoves()
	} else {
		pc := p.Board.Squares[m.From.index()]
		if pc == 0 || pc.Owner() != p.Turn {
			return false
		}
		p.pieceMoves(m.From, pc, &pseudo)
	}
	for _, cand := range pseudo {
		if cand == m {
			return !p.leavesKingInCheck(m)
		}
	}
	return false
}

// apply mutates the position by a legal, normalized move: board, hands,
// turn and hash. Status and history are handled by MakeMove.
func (p *Position) apply(m Move) {
	mover := p.Turn
	if m.IsDrop() {
		kind := m.Drop
		old := p.Hands[mover][kind]
		p.Hands[mover][kind] = old - 1
		p.bumpHandHash(mover, kind, old, old-1)

		pc := makePiece(mover, kind)
		p.Board.Squares[m.To.index()] = pc
		p.Hash ^= boardKey(pc, m.To.index())
	} else {
		pc := p.Board.Squares[m.From.index()]
		p.Board.Squares[m.From.index()] = 0
		p.Hash ^= boardKey(pc, m.From.index())

		if m.Captured != 0 {
			p.Hash ^= boardKey(m.Captured, m.To.index())
			kind := m.Captured.Kind().Demote()
			old := p.Hands[mover][kind]
			p.Hands[mover][kind] = old + 1
			p.bumpHandHash(mover, kind, old, old+1)
		}

		placed := pc
		if m.Promote {
			placed = pc.promote()
		}
		p.Board.Squares[m.To.index()] = placed
		p.Hash ^= boardKey(placed, m.To.index())
	}

	p.Turn = p.Turn.Opponent()
	p.Hash ^= zobristTurn
}

// unapply exactly reverts apply for the same move; prevHash restores the
// hash without recomputing.
func (p *Position) unapply(m Move, prevHash uint64) {
	p.Turn = p.Turn.Opponent()
	mover := p.Turn

	if m.IsDrop() {
		p.Board.Squares[m.To.index()] = 0
		p.Hands[mover][m.Drop]++
	} else {
		placed := p.Board.Squares[m.To.index()]
		moved := placed
		if m.Promote {
			moved = makePiece(mover, placed.Kind().Demote())
		}
		p.Board.Squares[m.From.index()] = moved
		p.Board.Squares[m.To.index()] = m.Captured
		if m.Captured != 0 {
			p.Hands[mover][m.Captured.Kind().Demote()]--
		}
	}

	p.Hash = prevHash
}

// leavesKingInCheck tests a pseudo-legal move by applying it, inspecting
// the mover's king, and reverting.
func (p *Position) leavesKingInCheck(m Move) bool {
	prev := p.Hash
	p.apply(m)
	inCheck := p.InCheck(p.Turn.Opponent())
	p.unapply(m, prev)
	return inCheck
}

// refreshStatus runs terminal-state detection after a move: repetition
// draw first, otherwise checkmate or stalemate when the side to move has
// no legal reply.
func (p *Position) refreshStatus() {
	if p.repetitions() >= repetitionLimit {
		p.Status = Draw
		return
	}
	if p.hasLegalMove() {
		p.Status = Playing
		return
	}
	if p.InCheck(p.Turn) {
		p.Status = Checkmate
	} else {
		p.Status = Stalemate
	}
}

// repetitions counts how many times the current position has occurred,
// including the current occurrence.
func (p *Position) repetitions() int {
	count := 1
	for _, rec := range p.history {
		if rec.hash == p.Hash {
			count++
		}
	}
	return count
}
