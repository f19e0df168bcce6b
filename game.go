package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"

	"chess-search/board"
	"chess-search/engine"
)

// session is the shell's view of a game, independent of the move generator
// underneath it.
type session interface {
	reset(fen string) error
	play(uci string) error
	think(ctx context.Context, depth int, budget time.Duration, out io.Writer) (string, error)
	evaluate() engine.Score
	whiteToMove() bool
	// over reports a finished game and why.
	over() (bool, string)
	record() *board.Record
	fen() string
}

func newSession(backend board.Backend, widthCap int) (session, error) {
	var (
		s   session
		err error
	)
	switch backend {
	case board.Dragon:
		s, err = newGame[dragontoothmg.Move, *board.Board](board.NewBoard, widthCap)
	case board.Goose:
		s, err = newGame[goosemg.Move, *board.GooseBoard](board.NewGooseBoard, widthCap)
	default:
		return nil, fmt.Errorf("%q: %w", backend, board.ErrBadBackend)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

type game[M comparable, P board.Chess[M]] struct {
	newPos func(string) (P, error)
	pos    P
	eng    *engine.Engine[M, P]
	rec    *board.Record
}

func newGame[M comparable, P board.Chess[M]](newPos func(string) (P, error), widthCap int) (*game[M, P], error) {
	g := &game[M, P]{
		newPos: newPos,
		eng:    engine.New[M, P](board.PieceSquare[P]{}),
	}
	g.eng.WidthCap = widthCap
	if err := g.reset(board.StartFEN); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *game[M, P]) reset(fen string) error {
	pos, err := g.newPos(fen)
	if err != nil {
		return err
	}
	rec, err := board.NewRecord(fen)
	if err != nil {
		return err
	}
	g.pos, g.rec = pos, rec
	return nil
}

func (g *game[M, P]) play(uci string) error {
	m, err := g.pos.ParseMove(uci)
	if err != nil {
		return err
	}
	if _, err := g.rec.Play(uci); err != nil {
		return err
	}
	g.pos.Push(m)
	return nil
}

// think runs one search, printing an info line per completed pass, and
// returns the best move in UCI notation.
func (g *game[M, P]) think(ctx context.Context, depth int, budget time.Duration, out io.Writer) (string, error) {
	g.eng.Progress = func(info engine.Info[M]) {
		pv := make([]string, len(info.PV))
		for i, m := range info.PV {
			pv[i] = g.pos.MoveString(m)
		}
		fmt.Fprintf(out, "info depth %d score %s time %d nodes %d pv %s\n",
			info.Depth, info.Score, info.Elapsed.Milliseconds(), info.Nodes, strings.Join(pv, " "))
	}
	res, err := g.eng.Think(ctx, g.pos, depth, budget)
	if err != nil {
		return "", err
	}
	return g.pos.MoveString(res.Move), nil
}

// evaluate is the static score from white's point of view.
func (g *game[M, P]) evaluate() engine.Score {
	return board.PieceSquare[P]{}.Evaluate(g.pos).Absolute(g.pos.SideToMove())
}

func (g *game[M, P]) whiteToMove() bool { return g.pos.SideToMove() == engine.First }

// over reports a finished game. A claimable draw is not one: the side to move
// may still play on, so it gets a move like any other position.
func (g *game[M, P]) over() (bool, string) {
	switch {
	case len(g.pos.LegalMoves()) == 0 && g.pos.InCheck():
		return true, "checkmate"
	case len(g.pos.LegalMoves()) == 0:
		return true, "stalemate"
	case g.pos.IsInsufficientMaterial():
		return true, "insufficient material"
	}
	return false, ""
}

func (g *game[M, P]) record() *board.Record { return g.rec }

func (g *game[M, P]) fen() string { return g.pos.FEN() }
