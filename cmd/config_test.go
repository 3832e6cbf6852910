package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseSlogLevel("debug", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, parseSlogLevel("INFO", slog.LevelError))
	assert.Equal(t, slog.LevelWarn, parseSlogLevel("warning", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, parseSlogLevel(" error ", slog.LevelInfo))
	assert.Equal(t, slog.Level(-4), parseSlogLevel("-4", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, parseSlogLevel("", slog.LevelWarn))
	assert.Equal(t, slog.LevelInfo, parseSlogLevel("noisy", slog.LevelInfo))
}

func TestSuiteDir(t *testing.T) {
	assert.Equal(t, ".", string(suiteDir(nil)))
	assert.Equal(t, "testdata/suite", string(suiteDir([]string{"testdata/suite"})))
}
