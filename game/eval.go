package game

// Material piece values, indexed by Kind. Hand pieces count at full value;
// the king is excluded because both kings are always present.
var kindValues = [NumKinds]float64{
	Pawn:           1,
	Lance:          3,
	Knight:         3,
	Silver:         5,
	Gold:           6,
	Bishop:         8,
	Rook:           10,
	PromotedPawn:   6,
	PromotedLance:  6,
	PromotedKnight: 6,
	PromotedSilver: 6,
	PromotedBishop: 10,
	PromotedRook:   12,
}

// Evaluate returns a score between -1 and 1 indicating how favorable the
// position looks for the side to move, from material alone.
func (p *Position) Evaluate() float64 {
	var material [2]float64
	for _, pc := range p.Board.Squares {
		if pc == 0 {
			continue
		}
		material[pc.Owner()] += kindValues[pc.Kind()]
	}
	for owner := Sente; owner <= Gote; owner++ {
		for kind := King; kind < Kind(numHandKinds); kind++ {
			material[owner] += float64(p.Hands[owner][kind]) * kindValues[kind]
		}
	}
	return normalize(material[p.Turn], material[p.Turn.Opponent()])
}

// normalize converts two tallies into a single score between -1 and 1.
func normalize(value, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
