package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chess-search/board"
	"chess-search/config"
)

func runShell(t *testing.T, backend, input string) string {
	t.Helper()
	var out bytes.Buffer
	sh, err := newShell(config.EngineConfig{Backend: backend, Depth: 3, MoveTime: 5 * time.Second}, &out)
	if err != nil {
		t.Fatal(err)
	}
	sh.uciLoop(context.Background(), strings.NewReader(input))
	return out.String()
}

func bestMove(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "bestmove ") {
			return strings.TrimPrefix(line, "bestmove ")
		}
	}
	t.Fatalf("no bestmove in output:\n%s", out)
	return ""
}

func TestHandshake(t *testing.T) {
	out := runShell(t, "", "uci\nisready\nquit\n")
	for _, want := range []string{"uciok", "readyok"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestGoFindsMate(t *testing.T) {
	fen := "1k6/7Q/1K6/8/8/8/8/8 w - - 0 1"
	for _, backend := range []string{"dragon", "goose"} {
		out := runShell(t, backend, "uci\nposition fen "+fen+"\ngo depth 4\n")
		if !strings.Contains(out, "score mate 1") {
			t.Fatalf("%s: no mate score in:\n%s", backend, out)
		}
		b, err := board.NewBoard(fen)
		if err != nil {
			t.Fatal(err)
		}
		mv := bestMove(t, out)
		m, err := b.ParseMove(mv)
		if err != nil {
			t.Fatalf("%s: bestmove %s: %v", backend, mv, err)
		}
		b.Push(m)
		if len(b.LegalMoves()) != 0 || !b.InCheck() {
			t.Fatalf("%s: %s is not mate", backend, mv)
		}
	}
}

func TestPositionWithMoves(t *testing.T) {
	out := runShell(t, "", "position startpos moves e2e4 e7e5 g1f3\nfen\nepd\n")
	if !strings.Contains(out, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq") {
		t.Fatalf("unexpected position:\n%s", out)
	}

	out = runShell(t, "", "position startpos moves e2e4 e2e4\n")
	if !strings.Contains(out, "not found for position") {
		t.Fatalf("bad move not reported:\n%s", out)
	}
}

func TestInteractivePlay(t *testing.T) {
	out := runShell(t, "goose", "e2e4\ne2e5\ndepth 1\ngo\nfen\ngame\n")
	if !strings.Contains(out, "illegal move e2e5") {
		t.Fatalf("illegal move not reported:\n%s", out)
	}
	if !strings.Contains(out, "info time") {
		t.Fatalf("missing info time:\n%s", out)
	}
	mv := bestMove(t, out)
	// The engine replied for black and the board moved on.
	if !strings.Contains(out, " w KQ") {
		t.Fatalf("white should be to move after the reply %s:\n%s", mv, out)
	}
	if !strings.Contains(out, "1. e4") {
		t.Fatalf("pgn missing:\n%s", out)
	}
}

func TestGameOver(t *testing.T) {
	out := runShell(t, "", "position fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1\ngo\n")
	if !strings.Contains(out, "Game is over!") {
		t.Fatalf("stalemate not reported:\n%s", out)
	}
	if strings.Contains(out, "bestmove") {
		t.Fatalf("no move expected:\n%s", out)
	}
}

func TestClaimableDrawStillGetsAMove(t *testing.T) {
	positions := []string{
		"position startpos moves g1f3 g8f6 f3g1 f6g8 g1f3 g8f6 f3g1 f6g8",
		"position fen 8/8/8/4k3/8/8/3QK3/8 w - - 100 80",
	}
	for _, backend := range []string{"dragon", "goose"} {
		for _, pos := range positions {
			out := runShell(t, backend, "uci\n"+pos+"\ngo depth 2\n")
			if strings.Contains(out, "Game is over!") {
				t.Fatalf("%s: %q treated as finished:\n%s", backend, pos, out)
			}
			bestMove(t, out)
		}
	}
}

func TestStopEndsInfiniteSearch(t *testing.T) {
	var out bytes.Buffer
	sh, err := newShell(config.EngineConfig{Depth: 64}, &out)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		sh.uciLoop(context.Background(), strings.NewReader("uci\ngo infinite\nstop\n"))
	}()
	select {
	case <-done:
		bestMove(t, out.String())
	case <-time.After(10 * time.Second):
		t.Fatalf("stop did not end the search")
	}
}

func TestCommandsAndSettings(t *testing.T) {
	out := runShell(t, "", "time 250\ndepth 2\nnew\neval\nboard\nfoo\ntime x\n")
	for _, want := range []string{
		"max depth: 3, max time ms: 5000",
		"eval cp 0",
		"info string Unknown command: foo",
		"malformed time value",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestEvalIsFromWhitesPointOfView(t *testing.T) {
	for _, side := range []string{"w", "b"} {
		out := runShell(t, "", "position fen 4k3/8/8/8/4P3/8/8/4K3 "+side+" - - 0 1\neval\n")
		if !strings.Contains(out, "eval cp 120") {
			t.Fatalf("%s to move: want eval cp 120 in:\n%s", side, out)
		}
	}
}

func TestGoParameters(t *testing.T) {
	var out bytes.Buffer
	sh, err := newShell(config.EngineConfig{Depth: 7, MoveTime: time.Second}, &out)
	if err != nil {
		t.Fatal(err)
	}
	p := sh.parseGo(strings.Fields("wtime 40000 btime 1000 winc 500 binc 0 depth 5"))
	if p.depth != 5 {
		t.Fatalf("depth %d", p.depth)
	}
	if got := sh.budget(p); got != 1500*time.Millisecond {
		t.Fatalf("white budget %v", got)
	}
	if got := sh.budget(sh.parseGo([]string{"movetime", "300"})); got != 300*time.Millisecond {
		t.Fatalf("movetime budget %v", got)
	}
	if got := sh.budget(sh.parseGo(nil)); got != time.Second {
		t.Fatalf("default budget %v", got)
	}
	if got := sh.budget(sh.parseGo([]string{"infinite"})); got != 0 {
		t.Fatalf("infinite budget %v", got)
	}
}

func TestUnknownBackend(t *testing.T) {
	_, err := newShell(config.EngineConfig{Backend: "stockfish"}, &bytes.Buffer{})
	if !errors.Is(err, board.ErrBadBackend) {
		t.Fatalf("got %v", err)
	}
}

func TestBookMoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openings.tsv")
	book := "eco\tname\tpgn\nC60\tRuy Lopez\t1. e4 e5 2. Nf3 Nc6 3. Bb5\n"
	if err := os.WriteFile(path, []byte(book), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	sh, err := newShell(config.EngineConfig{Depth: 1, MoveTime: time.Second, Book: path}, &out)
	if err != nil {
		t.Fatal(err)
	}
	sh.uciLoop(context.Background(), strings.NewReader("uci\nposition startpos moves e2e4 e7e5\ngo\n"))
	if got := bestMove(t, out.String()); got != "g1f3" {
		t.Fatalf("book move %q want g1f3", got)
	}
	if strings.Contains(out.String(), "info depth") {
		t.Fatalf("searched while in book:\n%s", out.String())
	}

	out.Reset()
	sh.uciLoop(context.Background(), strings.NewReader("position startpos moves d2d4\ngo depth 1\n"))
	if !strings.Contains(out.String(), "info depth 1") {
		t.Fatalf("expected a search out of book:\n%s", out.String())
	}

	if _, err := newShell(config.EngineConfig{Book: filepath.Join(t.TempDir(), "missing.csv")}, &out); err == nil {
		t.Fatal("missing book accepted")
	}
}
