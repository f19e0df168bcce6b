package engine

import (
	"context"
	"time"
)

// SearchState is the per-think bookkeeping threaded through every search call:
// the clock, the time budget, the distance from the root and the node count.
type SearchState struct {
	ctx      context.Context
	start    time.Time
	budget   time.Duration
	deadline time.Time
	ply      int
	nodes    uint64
}

// NewSearchState starts the clock. A zero or negative budget means no time limit.
func NewSearchState(ctx context.Context, budget time.Duration) *SearchState {
	if ctx == nil {
		ctx = context.Background()
	}
	st := &SearchState{
		ctx:    ctx,
		start:  time.Now(),
		budget: budget,
	}
	if budget > 0 {
		st.deadline = st.start.Add(budget)
	}
	return st
}

// Expired reports whether the budget is spent or the caller cancelled.
func (st *SearchState) Expired() bool {
	if st.ctx.Err() != nil {
		return true
	}
	return !st.deadline.IsZero() && !time.Now().Before(st.deadline)
}

func (st *SearchState) Elapsed() time.Duration { return time.Since(st.start) }

// Clock describes the remaining game time for the side to move.
type Clock struct {
	Remaining time.Duration
	Increment time.Duration
	MovesToGo int
}

// Engine-side safety knobs for AllocateMoveTime.
const (
	moveOverhead   = 30 * time.Millisecond
	minMoveTime    = 5 * time.Millisecond
	maxRemainFrac  = 0.7
	panicThreshold = time.Second
	panicIncFrac   = 0.9
)

// AllocateMoveTime turns a game clock into a budget for one think.
func AllocateMoveTime(c Clock) time.Duration {
	rem := c.Remaining
	inc := c.Increment
	movesLeft := c.MovesToGo
	if movesLeft <= 0 {
		movesLeft = 40
	}

	var moveTime time.Duration
	if inc > 0 {
		if rem < panicThreshold {
			// bank a little time
			moveTime = time.Duration(float64(inc) * panicIncFrac)
		} else {
			moveTime = rem/time.Duration(movesLeft) + inc
		}
	} else {
		moveTime = rem / time.Duration(movesLeft)
	}

	moveTime = Max(moveTime, minMoveTime)
	moveTime = Min(moveTime, time.Duration(float64(rem)*maxRemainFrac))
	moveTime = Min(moveTime, rem-moveOverhead)
	return Max(moveTime, minMoveTime)
}
