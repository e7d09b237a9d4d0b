package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"tmenews/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDispatcherHandler_RoutesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	log := slog.New(NewLevelDispatcherHandler(&out, &errOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Info("page fetched", slog.Int("page", 1))
	log.Error("page failed", slog.Any("error", errors.New("boom")))

	assert.Contains(t, out.String(), "INFO: page fetched | page=1")
	assert.NotContains(t, out.String(), "page failed")
	assert.Contains(t, errOut.String(), `ERROR: page failed | error="boom"`)
}

func TestReadableHandler_KeepsWithAttrs(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(NewReadableHandler(&out, nil)).With(
		slog.String("component", "fetcher"),
		slog.String("op", "fetcher.Fetch"),
		slog.String("run_id", "r1"),
	)

	log.WithGroup("req").Info("Fetching page", slog.Int("page", 2))

	line := out.String()
	assert.Contains(t, line, "INFO [fetcher] (fetcher.Fetch): Fetching page")
	assert.Contains(t, line, "run_id=r1, req.page=2")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestReadableHandler_Level(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(NewReadableHandler(&out, &slog.HandlerOptions{Level: slog.LevelWarn}))

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "WARN: shown")
}

func TestShortenURL(t *testing.T) {
	long := "https://themarketear.com/newsfeed?page=1&postId=" + strings.Repeat("x", 80)
	assert.Equal(t, "https://themarketear.com/...", shortenURL(long))
	assert.Equal(t, "https://themarketear.com/newsfeed", shortenURL("https://themarketear.com/newsfeed"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

func TestNew_FilesAndFallback(t *testing.T) {
	dir := t.TempDir()
	var fallback bytes.Buffer
	cfg := config.LoggerConfig{Level: "info", ErrorFile: filepath.Join(dir, "errors.log")}

	log, closeFn, err := New(cfg, &fallback)
	require.NoError(t, err)
	log.Info("to fallback")
	log.Error("to file")
	require.NoError(t, closeFn())

	assert.Contains(t, fallback.String(), "to fallback")
	data, err := os.ReadFile(cfg.ErrorFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNew_BadPath(t *testing.T) {
	cfg := config.LoggerConfig{File: filepath.Join(t.TempDir(), "missing", "app.log")}

	_, _, err := New(cfg, &bytes.Buffer{})

	assert.ErrorContains(t, err, "failed to open log file")
}

func TestReadableHandler_PromotesComponentInsideGroup(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(NewReadableHandler(&out, nil)).WithGroup("req")

	log.With(slog.String("component", "parser")).Info("Parsed", slog.String("op", "parser.Parse"), slog.Int("items", 3))

	line := out.String()
	assert.Contains(t, line, "INFO [parser] (parser.Parse): Parsed | req.items=3")
	assert.NotContains(t, line, "req.component")
	assert.NotContains(t, line, "req.op")
}
