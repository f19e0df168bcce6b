package engine

// Side identifies the player to move.
type Side uint8

const (
	First Side = iota
	Second
)

func (s Side) String() string {
	if s == First {
		return "first"
	}
	return "second"
}

// Position is the game oracle the search runs against. The search mutates it
// through Push/Pop instead of copying it, so every Push must be undone by
// exactly one Pop and a Pop must restore the prior state bit for bit.
type Position[M comparable] interface {
	// LegalMoves returns every rule-legal move for the side to move.
	// An empty slice means the game has ended at this position. The caller
	// owns the returned slice and may reorder it.
	LegalMoves() []M
	Push(m M)
	Pop()
	InCheck() bool
	IsCapture(m M) bool
	IsClaimableDraw() bool
	IsInsufficientMaterial() bool
	SideToMove() Side
}

// Hasher is implemented by positions that can fingerprint their state. The
// driver uses it to verify that a pass left the root position untouched.
type Hasher interface {
	Hash() uint64
}

// Evaluator scores a position from the perspective of the side to move.
type Evaluator[P any] interface {
	Evaluate(pos P) Score
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc[P any] func(pos P) Score

func (f EvaluatorFunc[P]) Evaluate(pos P) Score { return f(pos) }
