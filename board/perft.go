package board

import (
	"context"

	"golang.org/x/sync/errgroup"

	"chess-search/engine"
)

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft[M comparable](pos engine.Position[M], depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		pos.Push(m)
		nodes += Perft[M](pos, depth-1)
		pos.Pop()
	}
	return nodes
}

// Divided is the perft count below one root move.
type Divided[M comparable] struct {
	Move  M
	Nodes uint64
}

// PerftDivide splits the perft count by root move and runs the subtrees in
// parallel. newPos must return a fresh, independent root position on every call.
func PerftDivide[M comparable, P engine.Position[M]](ctx context.Context, newPos func() (P, error), depth int) ([]Divided[M], error) {
	root, err := newPos()
	if err != nil {
		return nil, err
	}
	moves := root.LegalMoves()
	out := make([]Divided[M], len(moves))

	g, ctx := errgroup.WithContext(ctx)
	for i, m := range moves {
		i, m := i, m
		out[i].Move = m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pos, err := newPos()
			if err != nil {
				return err
			}
			pos.Push(m)
			out[i].Nodes = Perft[M](pos, depth-1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
