// Package logger builds the zerolog logger the client emits request
// traces through.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	permission = 0664
)

// Build accumulates logger options before Make.
type Build struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

// Log holds the configured logger and, when logging to a file, the open
// handle so the caller can close it.
type Log struct {
	LogFile *os.File
	Logger  zerolog.Logger
}

func New() *Build {
	return &Build{level: zerolog.InfoLevel}
}

// ToPath appends log lines to the file at path.
func (build *Build) ToPath(path string) *Build {
	build.path = path
	return build
}

// ToWriter sends log lines to w. Overridden by ToPath.
func (build *Build) ToWriter(w io.Writer) *Build {
	build.writer = w
	return build
}

// Level sets the minimum emitted level.
func (build *Build) Level(level zerolog.Level) *Build {
	build.level = level
	return build
}

func (build *Build) Make() (*Log, error) {
	log := new(Log)
	writer := build.writer
	if writer == nil {
		writer = os.Stdout
	}
	if build.path != "" {
		file, err := os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		log.LogFile = file
		writer = zerolog.SyncWriter(file)
	}
	log.Logger = zerolog.New(writer).Level(build.level).With().Timestamp().Logger()
	return log, nil
}

// Nop returns a logger that discards everything. Used by the client when
// the host does not inject one.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
