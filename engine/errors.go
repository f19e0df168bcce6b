package engine

import "errors"

var (
	// ErrNoLegalMoves is returned by Think when the game is already over at the root.
	ErrNoLegalMoves = errors.New("no legal moves at root")
	// ErrOracleViolation signals that the position did not honour the push/pop
	// contract, so any score computed from it cannot be trusted.
	ErrOracleViolation = errors.New("position oracle contract violated")
)
