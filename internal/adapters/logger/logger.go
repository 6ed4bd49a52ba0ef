// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/ppm/internal/core/ports"
)

// messager describes an error that can report its own message without the chain.
// zerr errors implement it; other errors fall back to Error().
type messager interface {
	Message() string
}

// metadataer describes an error carrying key/value context attached with zerr.With.
type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
	output io.Writer
}

// New creates a new Logger writing to stderr, keeping stdout free for report lines.
func New() ports.Logger {
	return &Logger{
		logger: slog.New(NewPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})),
		output: os.Stderr,
	}
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(NewPrettyHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// errorEntry is one link of an error chain.
type errorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the error chain. zerr links contribute their own
// message; the first non-zerr link contributes its full Error() and ends the walk.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{Message: current.Error()})
			break
		}
		entry := errorEntry{Message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}
	return entries
}

// formatErrorEntries renders entries as a main error followed by its causes.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")
		msgLines[0] += formatMetadata(entry.Metadata)

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
	}

	return strings.Join(lines, "\n")
}

// formatMetadata renders metadata as sorted key=value pairs in parentheses.
func formatMetadata(md map[string]any) string {
	if len(md) == 0 {
		return ""
	}
	parts := make([]string, 0, len(md))
	for _, k := range slices.Sorted(maps.Keys(md)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, md[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
