// Package logger builds the logrus logger shared by the server.
package logger

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// New returns a logger writing to stderr at the given level. format is
// "text" or "json"; anything else falls back to text.
func New(level, format string) *log.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

func NewWithWriter(w io.Writer, level, format string) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	if format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger
}
