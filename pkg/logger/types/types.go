package types

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a named sugared logger
type Logger struct {
	*zap.SugaredLogger
	LogsPath string
	Name     string
}

// Log represents a log entry passed to a LogHook
type Log struct {
	Timestamp  time.Time
	Caller     string
	LoggerName string
	Level      zapcore.Level
	Message    string
}

// String formats the entry as a single human-readable line
func (l Log) String() string {
	return fmt.Sprintf("[%s] %s %s: %s (%s)",
		l.Level.CapitalString(),
		l.Timestamp.Format("2006-01-02 15:04:05"),
		l.LoggerName,
		l.Message,
		l.Caller,
	)
}

// LogHook is a function that will be called for each log entry
type LogHook func(log Log)
