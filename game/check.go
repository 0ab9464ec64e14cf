package game

// attacked reports whether the target square is attacked by any piece of
// the given player, by walking every owned piece's movement pattern.
func (p *Position) attacked(target Coord, by Player) bool {
	for sq, pc := range p.Board.Squares {
		if pc == 0 || pc.Owner() != by {
			continue
		}
		from := coordOf(sq)
		pat := patterns[by][pc.Kind()]

		for _, o := range pat.steps {
			if shift(from, o) == target {
				return true
			}
		}
		for _, o := range pat.rays {
			c := shift(from, o)
			for c.valid() {
				if c == target {
					return true
				}
				if p.Board.Squares[c.index()] != 0 {
					break
				}
				c = shift(c, o)
			}
		}
	}
	return false
}

// kingSquare locates the player's king.
func (p *Position) kingSquare(owner Player) (Coord, bool) {
	for sq, pc := range p.Board.Squares {
		if pc != 0 && pc.Owner() == owner && pc.Kind() == King {
			return coordOf(sq), true
		}
	}
	return Coord{}, false
}

// InCheck reports whether the player's king is currently attacked. A
// missing king never happens in a legal game; report no check so terminal
// detection stays well defined on artificial positions.
func (p *Position) InCheck(owner Player) bool {
	king, ok := p.kingSquare(owner)
	if !ok {
		return false
	}
	return p.attacked(king, owner.Opponent())
}
