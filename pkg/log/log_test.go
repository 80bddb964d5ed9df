package log

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnfinity/local-app/pkg/model"
)

func newTestLogger(t *testing.T, verbosity LogLevel) (*Logger, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &model.Config{
		LogFolder:  dir,
		CommandLog: "commands.log",
		ErrorLog:   "errors.log",
		InfoLog:    "info.log",
	}
	logger, err := NewLogger(cfg, verbosity)
	require.NoError(t, err)
	return logger, dir
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := strings.TrimSpace(string(data))
	if content == "" {
		return 0
	}
	return len(strings.Split(content, "\n"))
}

func TestCloseWritesAllQueuedMessages(t *testing.T) {
	logger, dir := newTestLogger(t, LevelInfo)
	ctx := context.Background()

	const n = 50
	for i := 0; i < n; i++ {
		logger.Info(ctx, "queued message", Fields{"seq": i})
	}
	require.NoError(t, logger.Close())

	assert.Equal(t, n, countLines(t, filepath.Join(dir, "info.log")))
}

func TestMessagesRouteToLevelFiles(t *testing.T) {
	logger, dir := newTestLogger(t, LevelInfo)
	ctx := context.Background()

	logger.Command(ctx, "node add", nil)
	logger.Error(ctx, "boom", nil)
	logger.Warn(ctx, "careful", nil)
	logger.Info(ctx, "started", nil)
	require.NoError(t, logger.Close())

	assert.Equal(t, 1, countLines(t, filepath.Join(dir, "commands.log")))
	assert.Equal(t, 2, countLines(t, filepath.Join(dir, "errors.log")))
	assert.Equal(t, 1, countLines(t, filepath.Join(dir, "info.log")))
}

func TestVerbosityFiltersInfoAndDebug(t *testing.T) {
	logger, dir := newTestLogger(t, LevelError)
	ctx := context.Background()

	logger.Info(ctx, "suppressed", nil)
	logger.Debug(ctx, "suppressed", nil)
	logger.Error(ctx, "kept", nil)
	require.NoError(t, logger.Close())

	assert.Equal(t, 0, countLines(t, filepath.Join(dir, "info.log")))
	assert.Equal(t, 1, countLines(t, filepath.Join(dir, "errors.log")))
}
