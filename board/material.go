package board

import "math/bits"

const (
	lightSquares uint64 = 0x55AA55AA55AA55AA
	darkSquares  uint64 = ^lightSquares
)

// InsufficientMaterial reports dead positions where no sequence of legal moves
// can mate: bare kings, a single minor piece, or bishops that all stand on
// squares of one colour.
func InsufficientMaterial(p *Placement) bool {
	for c := 0; c < 2; c++ {
		if p[c][Pawn]|p[c][Rook]|p[c][Queen] != 0 {
			return false
		}
	}

	knights := p.Count(white, Knight) + p.Count(black, Knight)
	bishops := p[white][Bishop] | p[black][Bishop]
	minors := knights + bits.OnesCount64(bishops)

	if minors <= 1 {
		return true
	}
	if knights > 0 {
		return false
	}
	return bishops&lightSquares == 0 || bishops&darkSquares == 0
}
