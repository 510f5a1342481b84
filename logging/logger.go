// SPDX-License-Identifier: MIT

// Package logging provides subsystem-tagged log lines on top of the
// standard log package, plus structured events through log/slog. Debug
// lines are only written when DEBUG=true in the environment, or when a
// Logger is built with debug enabled.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

var (
	debugEnabled = os.Getenv("DEBUG") == "true"
)

// Info logs an informational message (always shown)
func Info(subsystem, format string, args ...any) {
	log.Printf("[%s] "+format, append([]any{subsystem}, args...)...)
}

// Debug logs a debug message (only shown if DEBUG=true)
func Debug(subsystem, format string, args ...any) {
	if debugEnabled {
		log.Printf("[%s] "+format, append([]any{subsystem}, args...)...)
	}
}

// Logger is an injectable subsystem logger. The zero value is not usable;
// build one with New or NewWriter. A nil *Logger discards everything.
type Logger struct {
	subsystem string
	out       *log.Logger
	events    *slog.Logger
	debug     bool
}

// New returns a Logger writing through the standard logger's output,
// with debug lines gated by DEBUG=true.
func New(subsystem string) *Logger {
	return newLogger(subsystem, log.Writer(), log.Prefix(), log.Flags(), debugEnabled, false)
}

// NewWriter returns a Logger writing to w without timestamps.
func NewWriter(subsystem string, w io.Writer, debug bool) *Logger {
	return newLogger(subsystem, w, "", 0, debug, true)
}

func newLogger(subsystem string, w io.Writer, prefix string, flags int, debug, dropTime bool) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	if dropTime {
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		}
	}

	return &Logger{
		subsystem: subsystem,
		out:       log.New(w, prefix, flags),
		events:    slog.New(slog.NewTextHandler(w, opts)).With(slog.String("subsystem", subsystem)),
		debug:     debug,
	}
}

// Discard returns a Logger that writes nothing.
func Discard() *Logger {
	return NewWriter("", io.Discard, false)
}

// With returns a copy of l whose events carry the given key/value
// attributes, in slog's alternating form.
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	c := *l
	c.events = l.events.With(args...)
	return &c
}

// DebugEnabled reports whether Debugf writes anything.
func (l *Logger) DebugEnabled() bool {
	return l != nil && l.debug
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...any) {
	if l == nil {
		return
	}
	l.out.Printf("[%s] "+format, append([]any{l.subsystem}, args...)...)
}

// Debugf logs a debug message when debug output is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Printf("[%s] "+format, append([]any{l.subsystem}, args...)...)
}

// Event logs msg at info level with key/value attributes.
func (l *Logger) Event(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.events.Info(msg, kv...)
}

// Truncate truncates a string to maxLen and adds ellipsis
func Truncate(s string, maxLen int) string {
	// Replace newlines with spaces for one-line logs
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
