package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ValidateFEN rejects strings that do not describe a legal chess position
// before they reach a move generator, which would accept garbage silently.
func ValidateFEN(fen string) error {
	if _, err := chess.FEN(fen); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFEN, err)
	}
	return nil
}

func halfmoveClock(fen string) int {
	fields := strings.Fields(fen)
	if len(fields) < 5 {
		return 0
	}
	n, err := strconv.Atoi(fields[4])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Record is the notation side of a game: it replays the moves the shell plays
// on its own rules engine to produce SAN, PGN and board diagrams.
type Record struct {
	game      *chess.Game
	fromStart bool
	sans      []string
}

func NewRecord(fen string) (*Record, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFEN, err)
	}
	g := chess.NewGame(opt)
	if fen != StartFEN {
		g.AddTagPair("SetUp", "1")
		g.AddTagPair("FEN", fen)
	}
	return &Record{game: g, fromStart: fen == StartFEN}, nil
}

// Play appends a move given in UCI notation and returns its SAN.
func (r *Record) Play(uci string) (string, error) {
	pos := r.game.Position()
	m, err := chess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		return "", fmt.Errorf("%q: %w", uci, ErrIllegalMove)
	}
	if err := r.game.Move(m); err != nil {
		return "", fmt.Errorf("%q: %w", uci, ErrIllegalMove)
	}
	san := chess.AlgebraicNotation{}.Encode(pos, m)
	r.sans = append(r.sans, san)
	return san, nil
}

// Moves is the SAN move list since the start of the record.
func (r *Record) Moves() []string { return r.sans }

// FromStart reports whether the record began at the standard initial position.
func (r *Record) FromStart() bool { return r.fromStart }

// UCI converts a SAN move in the current position to UCI notation.
func (r *Record) UCI(san string) (string, error) {
	pos := r.game.Position()
	m, err := chess.AlgebraicNotation{}.Decode(pos, san)
	if err != nil {
		return "", fmt.Errorf("%q: %w", san, ErrIllegalMove)
	}
	return chess.UCINotation{}.Encode(pos, m), nil
}

// SAN renders a line of UCI moves from the current position without playing it.
func (r *Record) SAN(line []string) []string {
	pos := r.game.Position()
	out := make([]string, 0, len(line))
	for _, s := range line {
		m, err := chess.UCINotation{}.Decode(pos, s)
		if err != nil {
			break
		}
		out = append(out, chess.AlgebraicNotation{}.Encode(pos, m))
		pos = pos.Update(m)
	}
	return out
}

func (r *Record) PGN() string { return r.game.String() }

func (r *Record) Diagram() string { return r.game.Position().Board().Draw() }

func (r *Record) FEN() string { return r.game.Position().String() }

// Outcome is "1-0", "0-1", "1/2-1/2" or "*" while the game goes on.
func (r *Record) Outcome() string { return string(r.game.Outcome()) }

// EPD formats the current position as an EPD record with a best-move opcode.
func (r *Record) EPD(best string) string {
	fields := strings.Fields(r.FEN())
	epd := strings.Join(fields[:4], " ")
	if best == "" {
		return epd
	}
	if san := r.SAN([]string{best}); len(san) == 1 {
		best = san[0]
	}
	return fmt.Sprintf("%s bm %s;", epd, best)
}
