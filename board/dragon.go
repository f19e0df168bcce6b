package board

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"chess-search/engine"
)

// Board is the chess position oracle backed by dragontoothmg. Moves are undone
// through the closures returned by Apply, kept on a stack.
type Board struct {
	b    dragontoothmg.Board
	undo []func()
	hist history
}

// NewBoard sets up a position from a FEN string.
func NewBoard(fen string) (*Board, error) {
	if err := ValidateFEN(fen); err != nil {
		return nil, err
	}
	b := &Board{b: dragontoothmg.ParseFen(fen)}
	b.hist = newHistory(b.Hash(), halfmoveClock(fen))
	return b, nil
}

func (b *Board) LegalMoves() []dragontoothmg.Move {
	return b.b.GenerateLegalMoves()
}

func (b *Board) Push(m dragontoothmg.Move) {
	irreversible := b.IsCapture(m) || b.isPawnMove(m)
	b.undo = append(b.undo, b.b.Apply(m))
	b.hist.push(b.Hash(), irreversible)
}

// Pop undoes the last pushed move. Popping the root is a programming error.
func (b *Board) Pop() {
	n := len(b.undo)
	if n == 0 {
		panic("board: Pop with no move to undo")
	}
	b.undo[n-1]()
	b.undo = b.undo[:n-1]
	b.hist.pop()
}

func (b *Board) InCheck() bool { return b.b.OurKingInCheck() }

// IsCapture also counts en passant, which lands on an empty square.
func (b *Board) IsCapture(m dragontoothmg.Move) bool {
	if dragontoothmg.IsCapture(m, &b.b) {
		return true
	}
	return b.isPawnMove(m) && m.From()%8 != m.To()%8
}

func (b *Board) isPawnMove(m dragontoothmg.Move) bool {
	from := uint64(1) << m.From()
	return (b.b.White.Pawns|b.b.Black.Pawns)&from != 0
}

func (b *Board) IsClaimableDraw() bool { return b.hist.claimableDraw() }

func (b *Board) IsInsufficientMaterial() bool {
	p := b.Placement()
	return InsufficientMaterial(&p)
}

func (b *Board) SideToMove() engine.Side {
	if b.b.Wtomove {
		return engine.First
	}
	return engine.Second
}

// Hash keys the position for repetition: placement, side to move, castling
// rights and an en passant square that a pawn could actually take on.
func (b *Board) Hash() uint64 {
	p := b.Placement()
	key := placementKey(&p, b.b.Wtomove)
	fields := strings.Fields(b.b.ToFen())
	if len(fields) < 4 {
		return key
	}
	key ^= castlingKey(fields[2])
	if file, ok := b.enPassantFile(fields[3]); ok {
		key ^= epKeys[file]
	}
	return key
}

// enPassantFile returns the file of the en passant target when one of the
// mover's pawns stands next to the pawn that just advanced two squares.
func (b *Board) enPassantFile(target string) (int, bool) {
	if len(target) != 2 || target[0] < 'a' || target[0] > 'h' {
		return 0, false
	}
	file := int(target[0] - 'a')
	pawns, rank := b.b.Black.Pawns, 3
	if b.b.Wtomove {
		pawns, rank = b.b.White.Pawns, 4
	}
	var adjacent uint64
	if file > 0 {
		adjacent |= 1 << (rank*8 + file - 1)
	}
	if file < 7 {
		adjacent |= 1 << (rank*8 + file + 1)
	}
	return file, pawns&adjacent != 0
}

func (b *Board) Placement() Placement {
	var p Placement
	for c, bbs := range [2]*dragontoothmg.Bitboards{&b.b.White, &b.b.Black} {
		p[c][Pawn] = bbs.Pawns
		p[c][Knight] = bbs.Knights
		p[c][Bishop] = bbs.Bishops
		p[c][Rook] = bbs.Rooks
		p[c][Queen] = bbs.Queens
		p[c][King] = bbs.Kings
	}
	return p
}

func (b *Board) FEN() string { return b.b.ToFen() }

// ParseMove finds the legal move written in UCI long algebraic notation.
func (b *Board) ParseMove(s string) (dragontoothmg.Move, error) {
	moves := b.LegalMoves()
	if i := slices.IndexFunc(moves, func(m dragontoothmg.Move) bool { return m.String() == s }); i >= 0 {
		return moves[i], nil
	}
	return 0, fmt.Errorf("%q in %s: %w", s, b.FEN(), ErrIllegalMove)
}

func (b *Board) MoveString(m dragontoothmg.Move) string { return m.String() }
