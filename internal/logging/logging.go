// Package logging wraps the standard library's log.Logger with the level
// gate SPEC_FULL.md §6.5 calls for. The teacher logs via log.Printf/Fatalf
// throughout internal/agent, internal/engine and cmd/snmpsim; no structured
// or leveled logging library appears anywhere in the retrieved pack, so
// this stays on stdlib log rather than reach for zerolog/zap/logrus.
package logging

import (
	"log"
	"os"
	"strings"
)

// Level gates which calls actually print.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

// ParseLevel parses the --log-level flag value, defaulting to Info on an
// unrecognized string.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

// Logger is a level-gated wrapper over *log.Logger.
type Logger struct {
	level Level
	out   *log.Logger
}

// New builds a Logger writing to stderr at the given level, matching the
// teacher's unadorned log.Printf style (no timestamps-off, no JSON).
func New(level Level) *Logger {
	return &Logger{level: level, out: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *Logger) log(level Level, prefix, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf(prefix+format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.log(Debug, "DEBUG ", format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(Info, "INFO ", format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(Warn, "WARN ", format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(Error, "ERROR ", format, args...) }

// Fatalf always prints regardless of level and exits 1, mirroring the
// teacher's log.Fatalf for startup errors (spec.md §7).
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.out.Fatalf("FATAL "+format, args...)
}

// String satisfies fmt.Stringer for level in flag usage text.
func (lv Level) String() string {
	switch lv {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}
