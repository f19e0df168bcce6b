package board

const fiftyMoveLimit = 100

// state captures what we need to reason about repetitions and the fifty-move rule.
type state struct {
	key    uint64
	rule50 int
}

// history is the stack of states from the game start (or the last FEN) to the
// current position. Entry 0 is the root and is never popped.
type history struct {
	states []state
}

func newHistory(key uint64, rule50 int) history {
	return history{states: []state{{key: key, rule50: rule50}}}
}

// push records the position reached by a move. Irreversible moves (captures
// and pawn moves) reset the fifty-move counter.
func (h *history) push(key uint64, irreversible bool) {
	rule50 := 0
	if !irreversible {
		rule50 = h.top().rule50 + 1
	}
	h.states = append(h.states, state{key: key, rule50: rule50})
}

func (h *history) pop() {
	if len(h.states) <= 1 {
		panic("board: pop past the root position")
	}
	h.states = h.states[:len(h.states)-1]
}

func (h *history) top() state { return h.states[len(h.states)-1] }

func (h *history) depth() int { return len(h.states) - 1 }

// repetitions counts earlier occurrences of the current position since the
// last irreversible move.
func (h *history) repetitions() int {
	curr := h.top()
	start := len(h.states) - 1 - curr.rule50
	if start < 0 {
		start = 0
	}
	count := 0
	for i := len(h.states) - 3; i >= start; i -= 2 {
		if h.states[i].key == curr.key {
			count++
		}
	}
	return count
}

// claimableDraw reports a threefold repetition or fifty moves without a capture
// or pawn move.
func (h *history) claimableDraw() bool {
	if h.top().rule50 >= fiftyMoveLimit {
		return true
	}
	return h.repetitions() >= 2
}
