package loggers

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/log"
	"github.com/sirupsen/logrus"
)

var _ slog.Handler = (*LogrusHandler)(nil)

var levelMap = map[slog.Level]logrus.Level{
	log.LevelTrace:  logrus.TraceLevel,
	slog.LevelDebug: logrus.DebugLevel,
	slog.LevelInfo:  logrus.InfoLevel,
	slog.LevelWarn:  logrus.WarnLevel,
	slog.LevelError: logrus.ErrorLevel,
	log.LevelCrit:   logrus.FatalLevel,
}

var levelMapReverse = map[logrus.Level]slog.Level{
	logrus.TraceLevel: log.LevelTrace,
	logrus.DebugLevel: slog.LevelDebug,
	logrus.InfoLevel:  slog.LevelInfo,
	logrus.WarnLevel:  slog.LevelWarn,
	logrus.ErrorLevel: slog.LevelError,
}

// LogrusHandler routes go-ethereum logs (rpc server, event feeds) into a logrus entry.
type LogrusHandler struct {
	Logger *logrus.Entry
	Level  slog.Leveler
	attrs  []slog.Attr
}

func (h *LogrusHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.Level.Level()
}

func (h *LogrusHandler) Handle(ctx context.Context, record slog.Record) error {
	level, ok := levelMap[record.Level]
	if !ok {
		level = logrus.InfoLevel
	}
	// crit must not terminate the process through logrus
	if level == logrus.FatalLevel {
		level = logrus.ErrorLevel
	}

	args := make(logrus.Fields, len(h.attrs)+record.NumAttrs())
	for _, attr := range h.attrs {
		args[attr.Key] = attr.Value.Any()
	}
	record.Attrs(func(attr slog.Attr) bool {
		args[attr.Key] = attr.Value.Any()
		return true
	})

	h.Logger.
		WithContext(ctx).
		WithTime(record.Time).
		WithFields(args).
		Log(level, record.Message)
	return nil
}

func (h *LogrusHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogrusHandler{
		Logger: h.Logger,
		Level:  h.Level,
		attrs:  append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *LogrusHandler) WithGroup(name string) slog.Handler {
	return &LogrusHandler{
		Logger: h.Logger.WithField("group", name),
		Level:  h.Level,
		attrs:  h.attrs,
	}
}

func InitializeEthLog(logger *logrus.Entry) {
	lvl, ok := levelMapReverse[logger.Logger.GetLevel()]
	if !ok {
		lvl = slog.LevelError
	}
	log.SetDefault(log.NewLogger(&LogrusHandler{
		Logger: logger,
		Level:  lvl,
	}))
}
