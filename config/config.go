package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Logs   LogConfig
	Engine EngineConfig
}

type LogConfig struct {
	Style string // "console" or "json"
	Level string
}

type EngineConfig struct {
	Backend  string
	Depth    int
	MoveTime time.Duration
	WidthCap int
	Book     string // path to a CSV or TSV opening book, optional
}

const (
	DefaultDepth    = 16
	DefaultMoveTime = 120 * time.Second
)

// LoadConfig reads the environment (and .env, if present). Unset variables
// fall back to defaults; malformed ones are an error.
func LoadConfig() (*Config, error) {
	depth, err := intEnv("ENGINE_DEPTH", DefaultDepth)
	if err != nil {
		return nil, err
	}
	if depth < 1 {
		return nil, fmt.Errorf("ENGINE_DEPTH must be at least 1, got %d", depth)
	}

	moveTimeMs, err := intEnv("ENGINE_MOVE_TIME", int(DefaultMoveTime/time.Millisecond))
	if err != nil {
		return nil, err
	}
	if moveTimeMs < 0 {
		return nil, fmt.Errorf("ENGINE_MOVE_TIME must not be negative, got %d", moveTimeMs)
	}

	widthCap, err := intEnv("ENGINE_WIDTH_CAP", 0)
	if err != nil {
		return nil, err
	}
	if widthCap < 0 {
		return nil, fmt.Errorf("ENGINE_WIDTH_CAP must not be negative, got %d", widthCap)
	}

	cfg := &Config{
		Logs: LogConfig{
			Style: os.Getenv("LOG_STYLE"),
			Level: os.Getenv("LOG_LEVEL"),
		},
		Engine: EngineConfig{
			Backend:  os.Getenv("ENGINE_BACKEND"),
			Depth:    depth,
			MoveTime: time.Duration(moveTimeMs) * time.Millisecond,
			WidthCap: widthCap,
			Book:     os.Getenv("ENGINE_BOOK"),
		},
	}
	return cfg, nil
}

func intEnv(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return n, nil
}

// SetupLogging points the global zerolog logger at w. Protocol output owns
// stdout, so callers pass stderr.
func SetupLogging(cfg LogConfig, w io.Writer) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("parsing LOG_LEVEL: %w", err)
		}
		level = l
	}
	zerolog.SetGlobalLevel(level)

	switch cfg.Style {
	case "", "console":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	case "json":
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	default:
		return fmt.Errorf("unknown LOG_STYLE %q", cfg.Style)
	}
	return nil
}
