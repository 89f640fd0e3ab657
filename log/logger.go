package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

type Logger struct {
	Level string
	entry *logrus.Entry
}

func NewLogger(level string) *Logger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo writes to w instead of stderr. Unknown levels fall back to info.
func NewLoggerTo(w io.Writer, level string) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return &Logger{Level: lvl.String(), entry: logrus.NewEntry(l)}
}

// With returns a child logger carrying the given fields on every line.
func (l *Logger) With(fields Fields) *Logger {
	return &Logger{Level: l.Level, entry: l.entry.WithFields(fields)}
}

func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

func (l *Logger) Debug(msg string) {
	l.entry.Debug(msg)
}

func (l *Logger) Warn(msg string) {
	l.entry.Warn(msg)
}

func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}
