package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Outcome tells why a position has no legal moves.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Checkmated
	Stalemated
)

// Info is the progress report emitted after every completed pass.
type Info[M comparable] struct {
	Depth   int
	Score   Score
	Elapsed time.Duration
	Nodes   uint64
	PV      []M
}

// Result is the answer of one think.
type Result[M comparable] struct {
	Move  M
	Score Score
	// Depth is the deepest fully completed pass. 0 means the clock ran out
	// during the first pass and Move is a best-effort fallback.
	Depth   int
	PV      []M
	Nodes   uint64
	Elapsed time.Duration
	Outcome Outcome
}

// Engine runs iterative-deepening searches over positions of type P.
type Engine[M comparable, P Position[M]] struct {
	Evaluator Evaluator[P]
	// WidthCap limits how many ordered moves interior nodes examine. 0 searches
	// full width.
	WidthCap int
	// Progress, when set, receives an Info after each completed pass.
	Progress func(Info[M])
}

func New[M comparable, P Position[M]](eval Evaluator[P]) *Engine[M, P] {
	return &Engine[M, P]{Evaluator: eval}
}

// Think searches pos to at most maxDepth plies within budget and returns the
// best move of the deepest pass that finished. A pass interrupted by the clock
// or by ctx is discarded wholesale. A budget <= 0 means no time limit.
func (e *Engine[M, P]) Think(ctx context.Context, pos P, maxDepth int, budget time.Duration) (Result[M], error) {
	state := NewSearchState(ctx, budget)
	s := newSearcher[M, P](pos, e.Evaluator, Orderer[M]{WidthCap: e.WidthCap}, state)

	var res Result[M]
	if len(pos.LegalMoves()) == 0 {
		res.Outcome = Stalemated
		if pos.InCheck() {
			res.Outcome = Checkmated
		}
		return res, fmt.Errorf("think: %w", ErrNoLegalMoves)
	}

	hasher, canHash := any(pos).(Hasher)
	var rootHash uint64
	if canHash {
		rootHash = hasher.Hash()
	}

	maxDepth = Max(maxDepth, 1)
	for depth := 1; depth <= maxDepth; depth++ {
		log.Debug().Int("plies", depth).Msg("deepening-iteratively")

		pass := s.rootSearch(depth)

		if state.ply != 0 {
			return res, fmt.Errorf("think: ply %d after pass %d: %w", state.ply, depth, ErrOracleViolation)
		}
		if canHash && hasher.Hash() != rootHash {
			return res, fmt.Errorf("think: root position changed during pass %d: %w", depth, ErrOracleViolation)
		}

		if s.stopped {
			log.Debug().Int("plies", depth).Int("completed", pass.completed).Msg("pass-interrupted")
			if res.Depth == 0 {
				// Nothing committed yet; a weak legal move beats no move.
				res.Move, res.Score, res.PV = pass.move, pass.score, pass.pv
				if pass.completed == 0 {
					res.Score = 0
				}
			}
			break
		}

		res.Move, res.Score, res.Depth, res.PV = pass.move, pass.score, depth, pass.pv
		s.pv, s.hasPV = pass.move, true

		if e.Progress != nil {
			e.Progress(Info[M]{
				Depth:   depth,
				Score:   pass.score,
				Elapsed: state.Elapsed(),
				Nodes:   state.nodes,
				PV:      pass.pv,
			})
		}

		// A full-width pass of depth d sees every mate within d plies, so a
		// mate no longer than that cannot be improved by going deeper. A
		// longer one may have come from check extensions alone.
		if e.WidthCap == 0 && pass.score.IsMate() && pass.score.matePlies() <= depth {
			break
		}
	}

	res.Nodes = state.nodes
	res.Elapsed = state.Elapsed()
	log.Debug().
		Int("depth", res.Depth).
		Int32("score", int32(res.Score)).
		Uint64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("think-done")
	return res, nil
}

type rootPass[M comparable] struct {
	move      M
	score     Score
	pv        []M
	completed int
}

// rootSearch runs one full-width pass at the root, keeping the best move
// rather than only its score. Moves whose subtree was cut short by the clock
// are not counted.
func (s *searcher[M, P]) rootSearch(depth int) rootPass[M] {
	alpha, beta := -Infinity, Infinity
	moves := s.orderer.Order(s.pos, s.pv, s.hasPV, false)

	pass := rootPass[M]{move: moves[0], score: -Infinity}
	var childPVLine PVLine[M]

	for _, move := range moves {
		score := s.child(move, alpha, beta, depth-1, &childPVLine)
		if s.stopped {
			break
		}
		pass.completed++

		if score > pass.score {
			pass.score = score
			pass.move = move
			pass.pv = append([]M{move}, childPVLine.Moves...)
		}
		if score > alpha {
			alpha = score
		}
	}
	if pass.completed == 0 {
		pass.pv = []M{pass.move}
	}
	return pass
}
