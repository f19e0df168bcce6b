package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"ENGINE_DEPTH", "ENGINE_MOVE_TIME", "ENGINE_WIDTH_CAP", "ENGINE_BACKEND", "ENGINE_BOOK", "LOG_LEVEL", "LOG_STYLE"} {
		t.Setenv(k, "")
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.Depth != DefaultDepth || cfg.Engine.MoveTime != DefaultMoveTime || cfg.Engine.WidthCap != 0 {
		t.Fatalf("unexpected defaults %+v", cfg.Engine)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ENGINE_DEPTH", "6")
	t.Setenv("ENGINE_MOVE_TIME", "1500")
	t.Setenv("ENGINE_WIDTH_CAP", "8")
	t.Setenv("ENGINE_BACKEND", "goose")
	t.Setenv("ENGINE_BOOK", "openings.tsv")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.Depth != 6 || cfg.Engine.MoveTime != 1500*time.Millisecond || cfg.Engine.WidthCap != 8 || cfg.Engine.Backend != "goose" || cfg.Engine.Book != "openings.tsv" {
		t.Fatalf("got %+v", cfg.Engine)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"ENGINE_DEPTH", "deep"},
		{"ENGINE_DEPTH", "0"},
		{"ENGINE_MOVE_TIME", "-5"},
		{"ENGINE_WIDTH_CAP", "-1"},
		{"ENGINE_WIDTH_CAP", "wide"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("ENGINE_DEPTH", "")
			t.Setenv("ENGINE_MOVE_TIME", "")
			t.Setenv("ENGINE_WIDTH_CAP", "")
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	if err := SetupLogging(LogConfig{Style: "json", Level: "debug"}, &buf); err != nil {
		t.Fatal(err)
	}
	log.Debug().Int("plies", 3).Msg("deepening-iteratively")
	if !strings.Contains(buf.String(), `"plies":3`) {
		t.Fatalf("json log line missing field: %q", buf.String())
	}

	if err := SetupLogging(LogConfig{Level: "loud"}, &buf); err == nil {
		t.Fatalf("expected a bad level to be rejected")
	}
	if err := SetupLogging(LogConfig{Style: "xml"}, &buf); err == nil {
		t.Fatalf("expected a bad style to be rejected")
	}
}
