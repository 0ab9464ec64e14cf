package game

// Player identifies one of the two sides. Sente moves first and plays
// toward decreasing Y; Gote plays toward increasing Y.
type Player int8

const (
	NoPlayer Player = -1
	Sente    Player = 0
	Gote     Player = 1
)

func (p Player) Opponent() Player {
	switch p {
	case Sente:
		return Gote
	case Gote:
		return Sente
	}
	return NoPlayer
}

func (p Player) String() string {
	switch p {
	case Sente:
		return "Sente"
	case Gote:
		return "Gote"
	}
	return "NoPlayer"
}

// Kind enumerates the fourteen piece kinds: the eight base kinds plus the
// promoted form of each promotable kind. King and Gold do not promote.
type Kind int8

const (
	NoKind Kind = iota
	King
	Rook
	Bishop
	Gold
	Silver
	Knight
	Lance
	Pawn
	PromotedRook
	PromotedBishop
	PromotedSilver
	PromotedKnight
	PromotedLance
	PromotedPawn

	NumKinds = int(PromotedPawn) + 1
)

var kindNames = [NumKinds]string{
	"none", "K", "R", "B", "G", "S", "N", "L", "P",
	"+R", "+B", "+S", "+N", "+L", "+P",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= NumKinds {
		return "?"
	}
	return kindNames[k]
}

// Promoted reports whether k is a promoted form.
func (k Kind) Promoted() bool {
	return k >= PromotedRook
}

// Promote returns the promoted form of k, or NoKind if k does not promote.
func (k Kind) Promote() Kind {
	switch k {
	case Rook:
		return PromotedRook
	case Bishop:
		return PromotedBishop
	case Silver:
		return PromotedSilver
	case Knight:
		return PromotedKnight
	case Lance:
		return PromotedLance
	case Pawn:
		return PromotedPawn
	}
	return NoKind
}

// Demote returns the base form of k. Base kinds demote to themselves.
func (k Kind) Demote() Kind {
	switch k {
	case PromotedRook:
		return Rook
	case PromotedBishop:
		return Bishop
	case PromotedSilver:
		return Silver
	case PromotedKnight:
		return Knight
	case PromotedLance:
		return Lance
	case PromotedPawn:
		return Pawn
	}
	return k
}

// ParseKind maps a kind's short name, as produced by Kind.String, back to
// the kind. Unknown names report false.
func ParseKind(s string) (Kind, bool) {
	for k := 1; k < NumKinds; k++ {
		if kindNames[k] == s {
			return Kind(k), true
		}
	}
	return NoKind, false
}

// Piece packs one board occupant into a single byte: 0 is an empty square,
// positive values are Sente pieces, negative are Gote, and the magnitude is
// the Kind (promoted forms included).
type Piece int8

// NewPiece returns the piece of the given kind owned by owner, or the
// empty piece when either argument is the zero sentinel.
func NewPiece(owner Player, k Kind) Piece {
	return makePiece(owner, k)
}

func makePiece(owner Player, k Kind) Piece {
	if k == NoKind || owner == NoPlayer {
		return 0
	}
	if owner == Sente {
		return Piece(k)
	}
	return -Piece(k)
}

func (p Piece) Kind() Kind {
	if p < 0 {
		return Kind(-p)
	}
	return Kind(p)
}

func (p Piece) Owner() Player {
	if p == 0 {
		return NoPlayer
	}
	if p > 0 {
		return Sente
	}
	return Gote
}

func (p Piece) Promoted() bool {
	return p.Kind().Promoted()
}

// promote returns the promoted version of p. Callers must only promote
// promotable kinds.
func (p Piece) promote() Piece {
	pk := p.Kind().Promote()
	if pk == NoKind {
		panic("promote called on a non-promotable piece")
	}
	return makePiece(p.Owner(), pk)
}

func (p Piece) String() string {
	if p == 0 {
		return "."
	}
	s := p.Kind().String()
	if p.Owner() == Gote {
		return "v" + s
	}
	return s
}
