package engine

// searcher carries everything one think needs. It owns the position for the
// duration of the search: only the active call chain pushes and pops it.
type searcher[M comparable, P Position[M]] struct {
	pos     P
	eval    Evaluator[P]
	orderer Orderer[M]
	state   *SearchState

	// principal move of the last completed pass
	pv    M
	hasPV bool

	// stopped marks every score produced after the clock ran out as
	// incomplete. Callers must check it before using a child's result.
	stopped bool
}

func newSearcher[M comparable, P Position[M]](pos P, eval Evaluator[P], orderer Orderer[M], state *SearchState) *searcher[M, P] {
	return &searcher[M, P]{
		pos:     pos,
		eval:    eval,
		orderer: orderer,
		state:   state,
	}
}

// applyMove plays m one ply deeper and returns the func that undoes both.
func (s *searcher[M, P]) applyMove(m M) func() {
	s.pos.Push(m)
	s.state.ply++
	return func() {
		s.pos.Pop()
		s.state.ply--
	}
}

// timeUp polls the clock and latches the stop flag.
func (s *searcher[M, P]) timeUp() bool {
	if !s.stopped && s.state.Expired() {
		s.stopped = true
	}
	return s.stopped
}

// child searches m with the negated, swapped window and returns the score from
// the current mover's perspective.
func (s *searcher[M, P]) child(m M, alpha, beta Score, depth int, line *PVLine[M]) Score {
	unapply := s.applyMove(m)
	defer unapply()
	return -s.alphaBeta(-beta, -alpha, depth, line)
}

// alphaBeta is the negamax core. The returned score is only meaningful while
// s.stopped is false.
func (s *searcher[M, P]) alphaBeta(alpha, beta Score, depth int, pvLine *PVLine[M]) Score {
	s.state.nodes++
	pvLine.Clear()

	if s.timeUp() {
		return 0
	}

	if s.pos.IsClaimableDraw() || s.pos.IsInsufficientMaterial() {
		return DrawScore
	}

	// Check extension; has to happen before the horizon test.
	inCheck := s.pos.InCheck()
	if inCheck {
		depth++
	}

	if depth <= 0 {
		return s.quiescence(alpha, beta)
	}

	var childPVLine PVLine[M]
	bestScore := -Infinity
	moves := s.orderer.Order(s.pos, s.pv, s.hasPV, true)

	for _, move := range moves {
		score := s.child(move, alpha, beta, depth-1, &childPVLine)
		if s.stopped {
			return 0
		}

		// Beta cutoff
		if score >= beta {
			return score
		}

		if score > bestScore {
			bestScore = score
		}

		if score > alpha {
			alpha = score
			pvLine.Update(move, childPVLine)
		}
	}

	if len(moves) == 0 {
		if inCheck {
			// Mated here; nearer mates are worse for the loser.
			return -Win + Score(s.state.ply)
		}
		return DrawScore
	}

	return bestScore
}
