package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. The returned closer releases
// the log file and is safe to call when stderr is used.
func Setup(level, file string) (io.Closer, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if file == "" {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	f, ferr := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if ferr != nil {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}, fmt.Errorf("failed to open log file: %w", ferr)
	}
	logrus.SetOutput(f)

	if err != nil {
		logrus.WithField("level", level).Warn("unknown log level, using info")
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
