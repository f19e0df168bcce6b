package board

import (
	"fmt"
	"strings"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"golang.org/x/exp/slices"

	"chess-search/engine"
)

// GooseBoard is the position oracle backed by GooseEngineMG. It keeps the
// undo stack and the Zobrist history that goosemg's PushMove/PopMove expect.
type GooseBoard struct {
	b     *goosemg.Board
	stack []goosemg.MoveState
	keys  []uint64
	side  engine.Side
}

func NewGooseBoard(fen string) (*GooseBoard, error) {
	if err := ValidateFEN(fen); err != nil {
		return nil, err
	}
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFEN, err)
	}
	g := &GooseBoard{b: b, keys: []uint64{b.ComputeZobrist()}}
	if fields := strings.Fields(fen); len(fields) > 1 && fields[1] == "b" {
		g.side = engine.Second
	}
	return g, nil
}

func (g *GooseBoard) LegalMoves() []goosemg.Move { return g.b.GenerateMoves() }

func (g *GooseBoard) Push(m goosemg.Move) {
	if !g.b.PushMove(m, &g.stack, &g.keys) {
		panic(fmt.Sprintf("board: goosemg rejected %s", m))
	}
	g.side ^= 1
}

func (g *GooseBoard) Pop() {
	if len(g.stack) == 0 {
		panic("board: Pop with no move to undo")
	}
	g.b.PopMove(&g.stack, &g.keys)
	g.side ^= 1
}

func (g *GooseBoard) color() goosemg.Color {
	if g.side == engine.First {
		return goosemg.White
	}
	return goosemg.Black
}

func (g *GooseBoard) InCheck() bool { return g.b.InCheck(g.color()) }

func (g *GooseBoard) IsCapture(m goosemg.Move) bool {
	return m.CapturedPiece() != goosemg.NoPiece || m.Flags() == goosemg.FlagEnPassant
}

func (g *GooseBoard) IsClaimableDraw() bool {
	return g.b.HalfmoveClock() >= fiftyMoveLimit || g.b.IsDrawByRepetition(g.keys)
}

func (g *GooseBoard) IsInsufficientMaterial() bool {
	p := g.Placement()
	return InsufficientMaterial(&p)
}

func (g *GooseBoard) SideToMove() engine.Side { return g.side }

func (g *GooseBoard) Hash() uint64 { return g.b.ComputeZobrist() }

func (g *GooseBoard) Placement() Placement {
	var p Placement
	for sq := 0; sq < 64; sq++ {
		pc := g.b.PieceAt(goosemg.Square(sq))
		if pc == goosemg.NoPiece {
			continue
		}
		c := white
		if pc&8 != 0 {
			c = black
		}
		p[c][int(pc&7)-1] |= 1 << uint(sq)
	}
	return p
}

func (g *GooseBoard) FEN() string { return g.b.ToFEN() }

func (g *GooseBoard) ParseMove(s string) (goosemg.Move, error) {
	moves := g.LegalMoves()
	if i := slices.IndexFunc(moves, func(m goosemg.Move) bool { return m.String() == s }); i >= 0 {
		return moves[i], nil
	}
	return 0, fmt.Errorf("%q in %s: %w", s, g.FEN(), ErrIllegalMove)
}

func (g *GooseBoard) MoveString(m goosemg.Move) string { return m.String() }
