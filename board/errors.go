package board

import "errors"

var (
	ErrBadFEN      = errors.New("invalid FEN")
	ErrIllegalMove = errors.New("illegal move")
	ErrBadBackend  = errors.New("unknown board backend")
)
