package engine

// quiescence keeps searching captures past the horizon until the position is
// quiet. Termination relies on captures running out: every capture removes
// material and the material is finite.
func (s *searcher[M, P]) quiescence(alpha, beta Score) Score {
	s.state.nodes++

	if s.timeUp() {
		return 0
	}

	if s.pos.IsInsufficientMaterial() {
		return DrawScore
	}

	standPat := s.eval.Evaluate(s.pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	for _, move := range s.pos.LegalMoves() {
		if !s.pos.IsCapture(move) {
			continue
		}

		score := s.quiescenceChild(move, alpha, beta)
		if s.stopped {
			return 0
		}

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

func (s *searcher[M, P]) quiescenceChild(m M, alpha, beta Score) Score {
	unapply := s.applyMove(m)
	defer unapply()
	return -s.quiescence(-beta, -alpha)
}
