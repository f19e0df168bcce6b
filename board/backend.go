package board

import (
	"fmt"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"

	"chess-search/engine"
)

// Chess is what the command shell and the tools need from a board: a search
// oracle that can also read and print moves and positions.
type Chess[M comparable] interface {
	engine.Position[M]
	engine.Hasher
	Placer
	FEN() string
	ParseMove(s string) (M, error)
	MoveString(m M) string
}

var (
	_ Chess[dragontoothmg.Move] = (*Board)(nil)
	_ Chess[goosemg.Move]       = (*GooseBoard)(nil)
)

// Backend names a move generator.
type Backend string

const (
	Dragon Backend = "dragon"
	Goose  Backend = "goose"
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case Dragon, Goose:
		return b, nil
	case "":
		return Dragon, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrBadBackend)
}

// Play parses and pushes a UCI move, rejecting anything not legal here.
func Play[M comparable](pos Chess[M], s string) (M, error) {
	m, err := pos.ParseMove(s)
	if err != nil {
		return m, err
	}
	pos.Push(m)
	return m, nil
}
