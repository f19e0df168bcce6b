package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"

	"chess-search/board"
	"chess-search/config"
	"chess-search/engine"
)

// epdsuite runs the engine over an EPD test suite and reports how many
// positions it solves.
func main() {
	file := flag.String("file", "", "EPD suite (default: stdin)")
	depth := flag.Int("depth", 8, "maximum search depth")
	moveTime := flag.Duration("movetime", 2*time.Second, "time per position")
	backend := flag.String("backend", string(board.Dragon), "move generator: dragon or goose")
	logLevel := flag.String("loglevel", "info", "zerolog level")
	flag.Parse()

	if err := config.SetupLogging(config.LogConfig{Level: *logLevel}, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var in io.Reader = os.Stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal().Err(err).Msg("open suite")
		}
		defer f.Close()
		in = f
	}
	suite, err := board.ReadEPD(in)
	if err != nil {
		log.Fatal().Err(err).Msg("read suite")
	}

	be, err := board.ParseBackend(*backend)
	if err != nil {
		log.Fatal().Err(err).Msg("bad backend")
	}
	var solved int
	switch be {
	case board.Dragon:
		solved = run[dragontoothmg.Move](board.NewBoard, suite, *depth, *moveTime)
	case board.Goose:
		solved = run[goosemg.Move](board.NewGooseBoard, suite, *depth, *moveTime)
	}
	fmt.Printf("solved %d/%d\n", solved, len(suite))
}

func run[M comparable, P board.Chess[M]](newPos func(string) (P, error), suite []board.EPD, depth int, moveTime time.Duration) int {
	solved := 0
	for i, e := range suite {
		pos, err := newPos(e.FEN)
		if err != nil {
			log.Error().Err(err).Str("id", e.ID).Msg("bad position")
			continue
		}
		res, err := engine.New[M, P](board.PieceSquare[P]{}).Think(context.Background(), pos, depth, moveTime)
		if err != nil {
			log.Error().Err(err).Str("id", e.ID).Msg("think failed")
			continue
		}
		rec, err := board.NewRecord(e.FEN)
		if err != nil {
			log.Error().Err(err).Str("id", e.ID).Msg("bad position")
			continue
		}
		san := rec.SAN([]string{pos.MoveString(res.Move)})
		got := pos.MoveString(res.Move)
		if len(san) == 1 {
			got = san[0]
		}

		status := "FAIL"
		if e.Solves(got) {
			solved++
			status = "ok"
		}
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
		}
		fmt.Printf("%-12s %-4s got %-7s want %v  (%s, depth %d)\n", id, status, got, e.Best, res.Score, res.Depth)
	}
	return solved
}
