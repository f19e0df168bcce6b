package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"chess-search/board"
	"chess-search/config"
	"chess-search/engine"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := config.SetupLogging(cfg.Logs, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sh, err := newShell(cfg.Engine, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("shell-init")
	}
	sh.uciLoop(ctx, os.Stdin)
}

// lockedWriter serialises protocol output between the command loop and a
// running search.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type shell struct {
	cfg      config.EngineConfig
	out      io.Writer
	game     session
	book     *board.Book
	depth    int
	moveTime time.Duration
	// In UCI mode the GUI owns the board; otherwise "go" also plays the move.
	uciMode bool

	cancel context.CancelFunc
	done   chan struct{}
}

func newShell(cfg config.EngineConfig, out io.Writer) (*shell, error) {
	backend, err := board.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	g, err := newSession(backend, cfg.WidthCap)
	if err != nil {
		return nil, err
	}
	sh := &shell{
		cfg:      cfg,
		out:      &lockedWriter{w: out},
		game:     g,
		depth:    cfg.Depth,
		moveTime: cfg.MoveTime,
	}
	if cfg.Book != "" {
		if sh.book, err = loadBook(cfg.Book); err != nil {
			return nil, err
		}
	}
	return sh, nil
}

func loadBook(path string) (*board.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening book: %w", err)
	}
	defer f.Close()

	comma := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		comma = '\t'
	}
	b, err := board.LoadBook(f, comma)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("lines", b.Len()).Msg("book-loaded")
	return b, nil
}

var moveToken = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][qrbn]?$`)

func (sh *shell) println(a ...any) { fmt.Fprintln(sh.out, a...) }

func (sh *shell) uciLoop(ctx context.Context, in io.Reader) {
	// Input ending is not a stop: let a running search report its move.
	defer sh.wait()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			sh.stopSearch()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		cmd := strings.ToLower(tokens[0])

		// Everything but these waits for a running search to finish.
		switch cmd {
		case "stop":
			sh.stopSearch()
			continue
		case "isready":
			sh.println("readyok")
			continue
		case "quit":
			sh.stopSearch()
			return
		}
		sh.wait()

		switch cmd {
		case "uci":
			sh.uciMode = true
			sh.println("id name chess-search")
			sh.println("id author chess-search developers")
			sh.println("uciok")
		case "ucinewgame":
			sh.reset(board.StartFEN)
		case "new":
			sh.reset(board.StartFEN)
			sh.depth, sh.moveTime = sh.cfg.Depth, sh.cfg.MoveTime
			sh.println(sh.game.record().Diagram())
			sh.println(fmt.Sprintf("max depth: %d, max time ms: %d", sh.depth, sh.moveTime.Milliseconds()))
		case "position":
			sh.position(tokens[1:])
		case "go":
			sh.goCommand(ctx, tokens[1:])
		case "board":
			sh.println(sh.game.record().Diagram())
		case "fen":
			sh.println(sh.game.fen())
		case "epd":
			sh.println(sh.game.record().EPD(""))
		case "game":
			sh.println(sh.game.record().PGN())
		case "eval":
			sh.println("eval", sh.game.evaluate())
		case "book":
			if len(tokens) < 2 || tokens[1] == "off" {
				sh.book = nil
				continue
			}
			b, err := loadBook(tokens[1])
			if err != nil {
				sh.println("info string", err)
				continue
			}
			sh.book = b
		case "time", "depth":
			n, err := intArg(tokens)
			if err != nil {
				sh.println("info string", err)
				continue
			}
			if cmd == "time" {
				sh.moveTime = time.Duration(n) * time.Millisecond
			} else {
				sh.depth = n
			}
		default:
			if !moveToken.MatchString(cmd) {
				sh.println("info string Unknown command:", line)
				continue
			}
			if err := sh.game.play(cmd); err != nil {
				sh.println("illegal move", cmd)
			}
		}
	}
}

func intArg(tokens []string) (int, error) {
	if len(tokens) < 2 {
		return 0, fmt.Errorf("%s needs a value", tokens[0])
	}
	n, err := strconv.Atoi(tokens[1])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed %s value %q", tokens[0], tokens[1])
	}
	return n, nil
}

func (sh *shell) reset(fen string) bool {
	if err := sh.game.reset(fen); err != nil {
		sh.println("info string", err)
		return false
	}
	return true
}

// position handles "startpos [moves ...]" and "fen <fen> [moves ...]".
func (sh *shell) position(args []string) {
	if len(args) == 0 {
		sh.println("info string Malformed position command")
		return
	}
	var fen string
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		fen = board.StartFEN
	case "fen":
		var fields []string
		for len(rest) > 0 && strings.ToLower(rest[0]) != "moves" {
			fields = append(fields, rest[0])
			rest = rest[1:]
		}
		if len(fields) == 0 {
			sh.println("info string Invalid fen position")
			return
		}
		fen = strings.Join(fields, " ")
	default:
		sh.println("info string Invalid position subcommand")
		return
	}
	if !sh.reset(fen) {
		return
	}
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, mv := range rest[1:] {
		if err := sh.game.play(strings.ToLower(mv)); err != nil {
			sh.println("info string Move", mv, "not found for position", sh.game.fen())
			return
		}
	}
}

type goParams struct {
	depth     int
	moveTime  time.Duration
	clock     [2]engine.Clock
	hasClock  bool
	infinite  bool
	movesToGo int
}

func (sh *shell) parseGo(args []string) goParams {
	p := goParams{depth: sh.depth}
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	for i := 0; i < len(args); i++ {
		tok := strings.ToLower(args[i])
		if tok == "infinite" {
			p.infinite = true
			continue
		}
		if i+1 >= len(args) {
			sh.println("info string Malformed go command option", tok)
			break
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			sh.println("info string Malformed go command option; could not convert", tok)
			i++
			continue
		}
		switch tok {
		case "depth":
			p.depth = n
		case "movetime":
			p.moveTime = ms(n)
		case "wtime":
			p.clock[0].Remaining, p.hasClock = ms(n), true
		case "btime":
			p.clock[1].Remaining, p.hasClock = ms(n), true
		case "winc":
			p.clock[0].Increment = ms(n)
		case "binc":
			p.clock[1].Increment = ms(n)
		case "movestogo":
			p.movesToGo = n
		default:
			sh.println("info string Unknown go subcommand", tok)
			continue
		}
		i++
	}
	return p
}

// budget picks the time for this move: an explicit movetime wins, then the
// game clock, then the shell's own setting.
func (sh *shell) budget(p goParams) time.Duration {
	switch {
	case p.infinite:
		return 0
	case p.moveTime > 0:
		return p.moveTime
	case p.hasClock:
		c := p.clock[1]
		if sh.game.whiteToMove() {
			c = p.clock[0]
		}
		c.MovesToGo = p.movesToGo
		return engine.AllocateMoveTime(c)
	}
	return sh.moveTime
}

func (sh *shell) goCommand(ctx context.Context, args []string) {
	if over, why := sh.game.over(); over {
		log.Debug().Str("reason", why).Str("result", sh.game.record().Outcome()).Msg("game-over")
		sh.println("Game is over!")
		return
	}
	if best, ok := sh.bookMove(); ok {
		if !sh.uciMode {
			if err := sh.game.play(best); err != nil {
				log.Error().Err(err).Str("move", best).Msg("play-failed")
			}
		}
		sh.println("bestmove", best)
		return
	}
	p := sh.parseGo(args)
	budget := sh.budget(p)

	ctx, cancel := context.WithCancel(ctx)
	sh.cancel, sh.done = cancel, make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		defer cancel()
		start := time.Now()

		best, err := sh.game.think(ctx, p.depth, budget, sh.out)
		if err != nil {
			if errors.Is(err, engine.ErrNoLegalMoves) {
				sh.println("Game is over!")
				return
			}
			log.Error().Err(err).Msg("think-failed")
			sh.println("info string", err)
			return
		}
		if !sh.uciMode {
			if err := sh.game.play(best); err != nil {
				log.Error().Err(err).Str("move", best).Msg("play-failed")
			}
			sh.println(fmt.Sprintf("info time %d", time.Since(start).Milliseconds()))
		}
		sh.println("bestmove", best)
	}(sh.done)
}

// bookMove answers from the opening book while the game is still in it.
func (sh *shell) bookMove() (string, bool) {
	rec := sh.game.record()
	if sh.book == nil || !rec.FromStart() {
		return "", false
	}
	san, ok := sh.book.Next(rec.Moves())
	if !ok {
		return "", false
	}
	uci, err := rec.UCI(san)
	if err != nil {
		log.Debug().Err(err).Str("san", san).Msg("book-move-rejected")
		return "", false
	}
	log.Debug().Str("move", uci).Msg("book-move")
	return uci, true
}

func (sh *shell) wait() {
	if sh.done != nil {
		<-sh.done
		sh.done, sh.cancel = nil, nil
	}
}

func (sh *shell) stopSearch() {
	if sh.cancel != nil {
		sh.cancel()
	}
	sh.wait()
}
