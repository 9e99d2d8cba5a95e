package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

func ConsoleLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// FileLogger writes JSON lines to the given path and mirrors warnings and
// above to stderr. The log directory is created if missing.
func FileLogger(level logrus.Level, logPath string) (*logrus.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(&mirrorHook{out: os.Stderr, minLevel: logrus.WarnLevel})
	return logger, nil
}

type mirrorHook struct {
	out      io.Writer
	minLevel logrus.Level
}

func (h *mirrorHook) Levels() []logrus.Level {
	levels := make([]logrus.Level, 0, h.minLevel+1)
	for l := logrus.PanicLevel; l <= h.minLevel; l++ {
		levels = append(levels, l)
	}
	return levels
}

func (h *mirrorHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	_, err = h.out.Write([]byte(line))
	return err
}
