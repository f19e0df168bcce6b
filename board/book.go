package board

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Book is an opening book of SAN move sequences from the initial position.
type Book struct {
	lines [][]string
}

var moveNumbers = regexp.MustCompile(`[0-9]+\.(\.\.)?`)

// LoadBook reads CSV or TSV records whose last column is a move sequence such
// as "1. e4 e5 2. Nf3". A leading header row is skipped.
func LoadBook(r io.Reader, comma rune) (*Book, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	b := &Book{}
	for row := 0; ; row++ {
		records, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("opening book row %d: %w", row+1, err)
		}
		if len(records) == 0 {
			continue
		}
		moves := strings.Fields(moveNumbers.ReplaceAllString(records[len(records)-1], " "))
		if row == 0 && (len(moves) == 0 || strings.EqualFold(moves[0], "pgn") || strings.EqualFold(moves[0], "moves")) {
			continue
		}
		if len(moves) > 0 {
			b.lines = append(b.lines, moves)
		}
	}
	return b, nil
}

func (b *Book) Len() int { return len(b.lines) }

// Next returns the first book continuation of the SAN moves played so far.
func (b *Book) Next(played []string) (string, bool) {
next:
	for _, line := range b.lines {
		if len(line) <= len(played) {
			continue
		}
		for i, san := range played {
			if line[i] != san {
				continue next
			}
		}
		return line[len(played)], true
	}
	return "", false
}
