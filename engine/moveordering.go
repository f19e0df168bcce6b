package engine

import "sort"

// Priority buckets; lower sorts first.
const (
	pvKey      = 0
	captureKey = 1
	quietKey   = 2
)

// Orderer ranks candidate moves so the search tries the likely best ones first.
//
// PV hint first, captures next, everything else last. Ties keep the oracle's
// enumeration order. WidthCap > 0 truncates the ordered list, which trades
// search precision for speed: dropped moves are never examined, so the result
// may differ from a full-width search.
type Orderer[M comparable] struct {
	WidthCap int
}

// Key is the ordering key of m given the principal-move hint.
func (o Orderer[M]) Key(pos Position[M], m M, hint M, hasHint bool) int {
	if hasHint && m == hint {
		return pvKey
	}
	if pos.IsCapture(m) {
		return captureKey
	}
	return quietKey
}

// Order returns the legal moves of pos ranked by Key. With capped set the
// WidthCap truncation applies.
func (o Orderer[M]) Order(pos Position[M], hint M, hasHint bool, capped bool) []M {
	moves := pos.LegalMoves()
	keys := make([]int, len(moves))
	for i, m := range moves {
		keys[i] = o.Key(pos, m, hint, hasHint)
	}
	sort.Stable(keyedMoves[M]{moves: moves, keys: keys})
	if capped && o.WidthCap > 0 && len(moves) > o.WidthCap {
		moves = moves[:o.WidthCap]
	}
	return moves
}

type keyedMoves[M comparable] struct {
	moves []M
	keys  []int
}

func (k keyedMoves[M]) Len() int           { return len(k.moves) }
func (k keyedMoves[M]) Less(i, j int) bool { return k.keys[i] < k.keys[j] }
func (k keyedMoves[M]) Swap(i, j int) {
	k.moves[i], k.moves[j] = k.moves[j], k.moves[i]
	k.keys[i], k.keys[j] = k.keys[j], k.keys[i]
}
