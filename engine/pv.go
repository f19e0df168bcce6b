package engine

// PVLine is the principal variation collected below a node.
type PVLine[M comparable] struct {
	Moves []M
}

// Update makes m followed by the child's line the new variation.
func (pv *PVLine[M]) Update(m M, child PVLine[M]) {
	pv.Moves = append(pv.Moves[:0], m)
	pv.Moves = append(pv.Moves, child.Moves...)
}

func (pv *PVLine[M]) Clear() { pv.Moves = pv.Moves[:0] }
