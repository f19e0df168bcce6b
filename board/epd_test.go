package board

import (
	"strings"
	"testing"
)

func TestReadEPD(t *testing.T) {
	suite := `# mates
1k6/7Q/1K6/8/8/8/8/8 w - - bm Qb7# Qh8#; id "mate.1";
kbK5/pp6/1P6/8/8/8/8/R7 w - - bm Ra6; id "mate.2";

not an epd line
8/8/8 w - - bm e4;
4k3/8/8/8/8/8/8/4K3 w - - id "no best move";
`
	got, err := ReadEPD(strings.NewReader(suite))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries want 2: %+v", len(got), got)
	}
	if got[0].ID != "mate.1" || len(got[0].Best) != 2 {
		t.Fatalf("first entry %+v", got[0])
	}
	if got[1].FEN != "kbK5/pp6/1P6/8/8/8/8/R7 w - - 0 1" {
		t.Fatalf("fen %q", got[1].FEN)
	}
	if !got[0].Solves("Qh8") || !got[0].Solves("Qb7#") || got[0].Solves("Qc7+") {
		t.Fatalf("Solves disagrees with %v", got[0].Best)
	}
}
