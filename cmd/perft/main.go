package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"

	"chess-search/board"
)

type options struct {
	fen    string
	depth  int
	divide bool
	repeat int
	label  string
}

func main() {
	var opt options
	flag.StringVar(&opt.fen, "fen", board.StartFEN, "FEN string (defaults to initial position)")
	flag.IntVar(&opt.depth, "depth", 0, "Perft depth (required)")
	flag.BoolVar(&opt.divide, "divide", false, "Print per-move node counts at root")
	flag.IntVar(&opt.repeat, "repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	flag.StringVar(&opt.label, "label", "", "Optional label prefix for one-line output")
	backend := flag.String("backend", string(board.Dragon), "Move generator: dragon or goose")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if opt.depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}
	be, err := board.ParseBackend(*backend)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	switch be {
	case board.Dragon:
		err = run[dragontoothmg.Move](board.NewBoard, opt)
	case board.Goose:
		err = run[goosemg.Move](board.NewGooseBoard, opt)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

func run[M comparable, P board.Chess[M]](newPos func(string) (P, error), opt options) error {
	pos, err := newPos(opt.fen)
	if err != nil {
		return err
	}

	if opt.divide {
		div, err := board.PerftDivide[M](context.Background(), func() (P, error) { return newPos(opt.fen) }, opt.depth)
		if err != nil {
			return err
		}
		sort.Slice(div, func(i, j int) bool { return pos.MoveString(div[i].Move) < pos.MoveString(div[j].Move) })
		var sum uint64
		for _, d := range div {
			fmt.Printf("%s: %d\n", pos.MoveString(d.Move), d.Nodes)
			sum += d.Nodes
		}
		fmt.Printf("Total: %d\n", sum)
		return nil
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < opt.repeat; i++ {
		totalNodes += board.Perft[M](pos, opt.depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", opt.label, opt.depth, totalNodes, elapsed, nps)
	return nil
}
