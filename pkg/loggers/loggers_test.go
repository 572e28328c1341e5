package loggers

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/axiom-staking/pkg/repo"
)

func TestInitialize(t *testing.T) {
	rep := repo.MockRepo(t)
	rep.Config.Log.Module.Executor = "debug"
	rep.Config.Log.Module.API = "WARN"
	rep.Config.Log.Module.Storage = "not-a-level"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := Initialize(ctx, rep, false)
	require.Nil(t, err)

	executorLogger := Logger(Executor).(*logrus.Entry)
	assert.Equal(t, logrus.DebugLevel, executorLogger.Logger.GetLevel())
	apiLogger := Logger(API).(*logrus.Entry)
	assert.Equal(t, logrus.WarnLevel, apiLogger.Logger.GetLevel())
	assert.Equal(t, Executor, executorLogger.Data["module"])
	storageLogger := Logger(Storage).(*logrus.Entry)
	assert.Equal(t, logrus.ErrorLevel, storageLogger.Logger.GetLevel())
	assert.Equal(t, logrus.InfoLevel, Logger(App).(*logrus.Entry).Logger.GetLevel())

	Logger(App).Info("hello")
	_, err = os.Stat(filepath.Join(rep.RepoRoot, repo.LogsDirName))
	require.Nil(t, err)

	unknown := Logger("unknown").(*logrus.Entry)
	assert.Equal(t, "unknown", unknown.Data["module"])
}

func TestLogrusHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logrus.New()
	l.SetOutput(buf)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})

	h := &LogrusHandler{Logger: l.WithField("module", "api"), Level: slog.LevelDebug}
	assert.False(t, h.Enabled(context.Background(), slog.Level(-8)))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))

	record := slog.NewRecord(time.Now(), slog.LevelWarn, "served request", 0)
	record.AddAttrs(slog.String("method", "staking_stake"))
	err := h.WithAttrs([]slog.Attr{slog.Int("conn", 1)}).Handle(context.Background(), record)
	require.Nil(t, err)
	out := buf.String()
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, "method=staking_stake")
	assert.Contains(t, out, "conn=1")
}
