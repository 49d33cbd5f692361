// Package logging provides pre-configured component loggers for the stamp
// engine. The engine logs probe and store activity at debug level only, so
// it is silent unless STAMP_LOG_LEVEL asks for more.
package logging

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific
// component. It uses a singleton pattern per component to avoid
// re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(levelFromEnv())
	logger.SetFormatter(&TextFormatter{
		Colors: isatty.IsTerminal(os.Stderr.Fd()),
	})

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// levelFromEnv reads STAMP_LOG_LEVEL. The engine is a library; anything it
// says below warn is opt-in.
func levelFromEnv() logrus.Level {
	levelStr := os.Getenv("STAMP_LOG_LEVEL")
	if levelStr == "" {
		return logrus.WarnLevel
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}
