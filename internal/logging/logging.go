// Package logging is a small leveled logger for the command line tools.
// The level comes from the LOG_LEVEL environment variable.
package logging

import (
	"io"
	"log"
	"os"
	"strings"
)

// Level is a logging verbosity.
type Level int

const (
	Error Level = iota
	Warn
	Info
	Debug
	Trace
)

var names = [...]string{"ERROR", "WARN", "INFO", "DEBUG", "TRACE"}

func (l Level) String() string {
	if l < Error || l > Trace {
		return "UNKNOWN"
	}
	return names[l]
}

// ParseLevel reads a level name; ok is false when the name is unknown.
func ParseLevel(s string) (level Level, ok bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return Level(i), true
		}
	}
	return Info, false
}

// Logger writes messages at or below its level.
type Logger struct {
	level Level
	out   *log.Logger
}

// New returns a logger writing to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// FromEnv returns a stderr logger at the LOG_LEVEL level, INFO when unset
// or unrecognised.
func FromEnv() *Logger {
	level, _ := ParseLevel(os.Getenv("LOG_LEVEL"))
	return New(os.Stderr, level)
}

func (l *Logger) Level() Level { return l.level }

func (l *Logger) logf(level Level, format string, args ...any) {
	if l.level >= level {
		l.out.Printf("["+level.String()+"] "+format, args...)
	}
}

func (l *Logger) Error(format string, args ...any) { l.logf(Error, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.logf(Warn, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.logf(Info, format, args...) }
func (l *Logger) Debug(format string, args ...any) { l.logf(Debug, format, args...) }
func (l *Logger) Trace(format string, args ...any) { l.logf(Trace, format, args...) }

// Discard drops everything.
var Discard = New(io.Discard, Error)
