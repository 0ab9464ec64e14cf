package game

import "sync"

// maxHandCount bounds the per-kind hand count index. A hand can at most
// hold all eighteen pawns.
const maxHandCount = 19

var (
	zobristOnce sync.Once

	zobristBoard [2][NumKinds][NumSquares]uint64
	zobristHand  [2][NumKinds][maxHandCount]uint64
	zobristTurn  uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		// splitmix64 stream with a fixed seed keeps the tables stable
		// across runs.
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for owner := 0; owner < 2; owner++ {
			for kind := 1; kind < NumKinds; kind++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristBoard[owner][kind][sq] = next()
				}
			}
		}
		for owner := 0; owner < 2; owner++ {
			for kind := 1; kind < NumKinds; kind++ {
				// Count 0 stays at key 0 so empty pools contribute nothing.
				for count := 1; count < maxHandCount; count++ {
					zobristHand[owner][kind][count] = next()
				}
			}
		}
		zobristTurn = next()
	})
}

func boardKey(pc Piece, sq int) uint64 {
	if pc == 0 || sq < 0 || sq >= NumSquares {
		return 0
	}
	return zobristBoard[pc.Owner()][pc.Kind()][sq]
}

func handKey(owner Player, kind Kind, count int) uint64 {
	if count <= 0 || count >= maxHandCount {
		return 0
	}
	return zobristHand[owner][kind][count]
}

// CalculateHash recomputes the position hash from scratch. The incremental
// hash maintained by MakeMove must always agree with this value.
func (p *Position) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	for sq, pc := range p.Board.Squares {
		if pc == 0 {
			continue
		}
		h ^= boardKey(pc, sq)
	}
	for owner := Sente; owner <= Gote; owner++ {
		for kind := King; kind <= Pawn; kind++ {
			h ^= handKey(owner, kind, p.Hands[owner][kind])
		}
	}
	if p.Turn == Gote {
		h ^= zobristTurn
	}
	return h
}

// bumpHandHash folds a hand-count change for (owner, kind) into the hash.
func (p *Position) bumpHandHash(owner Player, kind Kind, oldCount, newCount int) {
	p.Hash ^= handKey(owner, kind, oldCount)
	p.Hash ^= handKey(owner, kind, newCount)
}
