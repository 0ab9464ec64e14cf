package game

import "fmt"

// Move is either a board move (From -> To, optionally promoting, with the
// captured occupant of To recorded for undo) or a drop of a held piece onto
// To. Exactly one variant is populated: a drop has Drop != NoKind and never
// carries From, Promote or Captured.
//
// Move is a plain comparable value so it can key policy and child maps.
type Move struct {
	From     Coord `json:"from"`
	To       Coord `json:"to"`
	Promote  bool  `json:"promote"`
	Drop     Kind  `json:"drop"`
	Captured Piece `json:"-"`
}

func (m Move) IsDrop() bool {
	return m.Drop != NoKind
}

func (m Move) String() string {
	if m.IsDrop() {
		return fmt.Sprintf("%s*%d%d%d", m.Drop, m.To.X, m.To.Y, m.To.Z)
	}
	s := fmt.Sprintf("%d%d%d-%d%d%d", m.From.X, m.From.Y, m.From.Z, m.To.X, m.To.Y, m.To.Z)
	if m.Promote {
		s += "+"
	}
	return s
}
