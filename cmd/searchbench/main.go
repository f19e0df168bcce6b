package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"

	"chess-search/board"
	"chess-search/config"
	"chess-search/engine"
)

type options struct {
	fen      string
	depth    int
	repeat   int
	moveTime time.Duration
	widthCap int
}

func main() {
	var opt options
	flag.IntVar(&opt.depth, "depth", 5, "search depth in plies")
	flag.IntVar(&opt.repeat, "repeat", 1, "number of searches to run")
	flag.StringVar(&opt.fen, "fen", board.StartFEN, "FEN to search")
	flag.DurationVar(&opt.moveTime, "movetime", 0, "time budget per search (0 = depth only)")
	flag.IntVar(&opt.widthCap, "widthcap", 0, "moves examined per interior node (0 = all)")
	backend := flag.String("backend", string(board.Dragon), "move generator: dragon or goose")
	logLevel := flag.String("loglevel", "info", "zerolog level")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if err := config.SetupLogging(config.LogConfig{Level: *logLevel}, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opt.depth <= 0 {
		log.Fatal().Int("depth", opt.depth).Msg("depth must be positive")
	}
	be, err := board.ParseBackend(*backend)
	if err != nil {
		log.Fatal().Err(err).Msg("bad backend")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d backend=%s\n", opt.fen, opt.depth, opt.repeat, be)

	switch be {
	case board.Dragon:
		err = bench[dragontoothmg.Move](board.NewBoard, opt)
	case board.Goose:
		err = bench[goosemg.Move](board.NewGooseBoard, opt)
	}
	if err != nil {
		log.Error().Err(err).Msg("searchbench")
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}

func bench[M comparable, P board.Chess[M]](newPos func(string) (P, error), opt options) error {
	startAll := time.Now()
	var nodes uint64
	for i := 0; i < opt.repeat; i++ {
		// Fresh position for each run
		pos, err := newPos(opt.fen)
		if err != nil {
			return err
		}
		e := engine.New[M, P](board.PieceSquare[P]{})
		e.WidthCap = opt.widthCap

		res, err := e.Think(context.Background(), pos, opt.depth, opt.moveTime)
		if err != nil {
			return err
		}
		nodes += res.Nodes
		fmt.Printf("iteration %d: bestmove %s  score %s  depth %d  nodes %d  time=%v\n",
			i+1, pos.MoveString(res.Move), res.Score, res.Depth, res.Nodes, res.Elapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nps %.0f\n", totalElapsed, float64(nodes)/totalElapsed.Seconds())
	return nil
}
