package game

import (
	"strings"
	"unicode"
)

// Board dimensions: the classical 9x9 field replicated across three depth
// layers. X grows to the right, Y toward Gote's camp, Z through the layers.
const (
	Width      = 9
	Height     = 9
	Depth      = 3
	NumSquares = Width * Height * Depth
)

// Coord addresses one board cell.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (c Coord) valid() bool {
	return c.X >= 0 && c.X < Width &&
		c.Y >= 0 && c.Y < Height &&
		c.Z >= 0 && c.Z < Depth
}

func (c Coord) index() int {
	return (c.Z*Height+c.Y)*Width + c.X
}

func coordOf(index int) Coord {
	return Coord{
		X: index % Width,
		Y: (index / Width) % Height,
		Z: index / (Width * Height),
	}
}

// Board holds the occupants of every cell, layer by layer.
type Board struct {
	Squares [NumSquares]Piece
}

// forward is the Y direction a player's pawns advance in.
func forward(p Player) int {
	if p == Sente {
		return -1
	}
	return +1
}

// lastRank is the rank a player's pawns can never advance past.
func lastRank(p Player) int {
	if p == Sente {
		return 0
	}
	return Height - 1
}

// inPromotionZone reports whether rank y lies in the three farthest ranks
// for the given player. The zone spans all layers.
func inPromotionZone(p Player, y int) bool {
	if p == Sente {
		return y <= 2
	}
	return y >= Height-3
}

var letterToKind = map[rune]Kind{
	'k': King,
	'r': Rook,
	'b': Bishop,
	'g': Gold,
	's': Silver,
	'n': Knight,
	'l': Lance,
	'p': Pawn,
}

// The canonical starting arrangement: the middle layer carries the
// classical shogi setup, the outer layers begin empty. Uppercase is Sente
// (bottom of each layer diagram), lowercase is Gote.
const initialMiddleLayer = `lnsgkgsnl
.r.....b.
ppppppppp
.........
.........
.........
PPPPPPPPP
.B.....R.
LNSGKGSNL`

func parseLayer(b *Board, z int, diagram string) {
	lines := make([]string, 0, Height)
	for _, line := range strings.Split(diagram, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Height {
		panic("layer diagram does not have 9 ranks")
	}
	for y, line := range lines {
		if len(line) != Width {
			panic("layer diagram rank does not have 9 files")
		}
		for x, ch := range line {
			if ch == '.' {
				continue
			}
			kind, ok := letterToKind[unicode.ToLower(ch)]
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			owner := Gote
			if unicode.IsUpper(ch) {
				owner = Sente
			}
			b.Squares[Coord{X: x, Y: y, Z: z}.index()] = makePiece(owner, kind)
		}
	}
}

func initialBoard() Board {
	var b Board
	parseLayer(&b, 1, initialMiddleLayer)
	return b
}
