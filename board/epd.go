package board

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// EPD is one test-suite position: a position plus the moves that solve it.
type EPD struct {
	FEN  string
	Best []string // SAN, from the "bm" opcode
	ID   string
}

// Solves reports whether the SAN move is one of the expected best moves.
// Check and mate suffixes are ignored.
func (e EPD) Solves(san string) bool {
	san = strings.TrimRight(san, "+#")
	for _, bm := range e.Best {
		if strings.TrimRight(bm, "+#") == san {
			return true
		}
	}
	return false
}

// ParseEPD reads "<placement> <side> <castling> <ep> bm <moves>; id <name>;".
func ParseEPD(line string) (EPD, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return EPD{}, fmt.Errorf("%w: epd %q", ErrBadFEN, line)
	}
	e := EPD{FEN: strings.Join(fields[:4], " ") + " 0 1"}
	if err := ValidateFEN(e.FEN); err != nil {
		return EPD{}, err
	}

	ops := strings.Join(fields[4:], " ")
	for _, op := range strings.Split(ops, ";") {
		words := strings.Fields(op)
		if len(words) < 2 {
			continue
		}
		switch words[0] {
		case "bm":
			e.Best = append(e.Best, words[1:]...)
		case "id":
			e.ID = strings.Trim(strings.Join(words[1:], " "), `"`)
		}
	}
	if len(e.Best) == 0 {
		return EPD{}, fmt.Errorf("epd %q has no bm opcode", line)
	}
	return e, nil
}

// ReadEPD parses a suite, one position per line. Blank lines and lines
// starting with '#' are ignored; malformed lines are skipped.
func ReadEPD(r io.Reader) ([]EPD, error) {
	var out []EPD
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := ParseEPD(line)
		if err != nil {
			log.Debug().Err(err).Int("line", lineNo).Msg("skipping-epd")
			continue
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
