package engine

import (
	"math/rand"
	"time"
)

// tnode is one position of a hand-built game tree. Moves are child indices.
type tnode struct {
	id           uint64
	eval         Score
	check        bool
	draw         bool
	insufficient bool
	moves        []tedge
}

type tedge struct {
	capture bool
	to      *tnode
}

type treeGame struct {
	path []*tnode
}

func newTreeGame(root *tnode) *treeGame {
	return &treeGame{path: []*tnode{root}}
}

func (g *treeGame) cur() *tnode { return g.path[len(g.path)-1] }

func (g *treeGame) LegalMoves() []int {
	out := make([]int, len(g.cur().moves))
	for i := range out {
		out[i] = i
	}
	return out
}

func (g *treeGame) Push(m int) { g.path = append(g.path, g.cur().moves[m].to) }

func (g *treeGame) Pop() {
	if len(g.path) == 1 {
		panic("treeGame: pop at root")
	}
	g.path = g.path[:len(g.path)-1]
}

func (g *treeGame) InCheck() bool                { return g.cur().check }
func (g *treeGame) IsCapture(m int) bool         { return g.cur().moves[m].capture }
func (g *treeGame) IsClaimableDraw() bool        { return g.cur().draw }
func (g *treeGame) IsInsufficientMaterial() bool { return g.cur().insufficient }
func (g *treeGame) Hash() uint64                 { return g.cur().id ^ uint64(len(g.path))<<32 }

func (g *treeGame) SideToMove() Side {
	if len(g.path)%2 == 1 {
		return First
	}
	return Second
}

var treeEval = EvaluatorFunc[*treeGame](func(g *treeGame) Score { return g.cur().eval })

// leaf builds a node without moves: mate if check, stalemate otherwise,
// unless it is reached at the horizon where eval applies.
func leaf(eval Score) *tnode { return &tnode{eval: eval} }

func quiet(children ...*tnode) []tedge {
	out := make([]tedge, len(children))
	for i, c := range children {
		out[i] = tedge{to: c}
	}
	return out
}

func mated() *tnode { return &tnode{check: true} }

// numberTree assigns unique ids so Hash distinguishes nodes.
func numberTree(n *tnode, next *uint64) {
	*next++
	n.id = *next
	for _, e := range n.moves {
		numberTree(e.to, next)
	}
}

func randomTree(r *rand.Rand, depth int) *tnode {
	n := &tnode{eval: Score(r.Intn(401) - 200)}
	if depth == 0 {
		return n
	}
	n.check = r.Intn(10) == 0
	n.draw = r.Intn(25) == 0
	branching := r.Intn(4) + 1
	if r.Intn(12) == 0 {
		branching = 0
	}
	for i := 0; i < branching; i++ {
		n.moves = append(n.moves, tedge{
			capture: r.Intn(5) < 2,
			to:      randomTree(r, depth-1),
		})
	}
	return n
}

// referenceNegamax is a full-width negamax with the same leaf rules as the
// engine, without any pruning.
func referenceNegamax(g *treeGame, depth, ply int) Score {
	if g.IsClaimableDraw() || g.IsInsufficientMaterial() {
		return DrawScore
	}
	inCheck := g.InCheck()
	if inCheck {
		depth++
	}
	if depth <= 0 {
		return referenceQuiescence(g)
	}
	moves := g.LegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return -Win + Score(ply)
		}
		return DrawScore
	}
	best := -Infinity
	for _, m := range moves {
		g.Push(m)
		best = Max(best, -referenceNegamax(g, depth-1, ply+1))
		g.Pop()
	}
	return best
}

func referenceQuiescence(g *treeGame) Score {
	if g.IsInsufficientMaterial() {
		return DrawScore
	}
	best := treeEval(g)
	for _, m := range g.LegalMoves() {
		if !g.IsCapture(m) {
			continue
		}
		g.Push(m)
		best = Max(best, -referenceQuiescence(g))
		g.Pop()
	}
	return best
}

// referenceRoot scores every root move the way the driver does: no
// extension or draw test at the root itself.
func referenceRoot(g *treeGame, depth int) []Score {
	var scores []Score
	for _, m := range g.LegalMoves() {
		g.Push(m)
		scores = append(scores, -referenceNegamax(g, depth-1, 1))
		g.Pop()
	}
	return scores
}

// endlessGame never runs out of moves, so only the clock ends a search.
type endlessGame struct {
	path []uint64
}

func newEndlessGame() *endlessGame { return &endlessGame{path: []uint64{1}} }

func (g *endlessGame) LegalMoves() []int            { return []int{0, 1, 2, 3, 4, 5, 6, 7} }
func (g *endlessGame) Push(m int)                   { g.path = append(g.path, g.path[len(g.path)-1]*31+uint64(m)+7) }
func (g *endlessGame) Pop()                         { g.path = g.path[:len(g.path)-1] }
func (g *endlessGame) InCheck() bool                { return false }
func (g *endlessGame) IsCapture(int) bool           { return false }
func (g *endlessGame) IsClaimableDraw() bool        { return false }
func (g *endlessGame) IsInsufficientMaterial() bool { return false }
func (g *endlessGame) SideToMove() Side             { return Side(len(g.path)+1) % 2 }
func (g *endlessGame) Hash() uint64                 { return g.path[len(g.path)-1] }

var endlessEval = EvaluatorFunc[*endlessGame](func(g *endlessGame) Score {
	return Score(g.Hash()%200) - 100
})

// slowEval burns time so a handful of nodes exhausts small budgets.
func slowEval(d time.Duration) EvaluatorFunc[*endlessGame] {
	return func(g *endlessGame) Score {
		time.Sleep(d)
		return endlessEval(g)
	}
}
