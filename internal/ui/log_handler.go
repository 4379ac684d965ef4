package ui

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears the status bar message with the matching seq.
type logRecordFadeMsg struct {
	seq int
}

// logRecordFadeDelay is how long log messages stay visible in the status
// bar before fading back to the key help line.
const logRecordFadeDelay = 5 * time.Second

// LogHandler is a slog.Handler that routes records into a Bubble Tea
// program as messages. Records arriving before SetProgram is called are
// dropped.
//
// Handlers derived via WithAttrs/WithGroup share the program pointer, so
// one SetProgram call reaches all of them.
type LogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	groups  []string
}

// NewLogHandler creates a handler that delivers records at or above level.
func NewLogHandler(level slog.Level) *LogHandler {
	return &LogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives log messages. Safe to call
// from any goroutine.
func (h *LogHandler) SetProgram(program *tea.Program) {
	h.program.Store(program)
}

// Enabled reports whether the handler is interested in records at level.
func (h *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats the record and sends it to the program. Records logged
// from inside Update run on the event loop, so delivery must not wait for
// the loop to receive it.
func (h *LogHandler) Handle(_ context.Context, record slog.Record) error {
	program := h.program.Load()
	if program == nil {
		return nil
	}
	msg := logRecordMsg{
		Summary: h.summarize(record),
		Level:   record.Level,
	}
	go program.Send(msg)
	return nil
}

// summarize builds the one-line "message (key=value, ...)" form.
func (h *LogHandler) summarize(record slog.Record) string {
	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}

	var parts []string
	for _, attr := range h.attrs {
		parts = append(parts, attr.Key+"="+attr.Value.String())
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, prefix+attr.Key+"="+attr.Value.String())
		return true
	})

	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// WithAttrs returns a new handler with the given attributes appended.
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{
		level:   h.level,
		program: h.program,
		attrs:   append(sliceClone(h.attrs), attrs...),
		groups:  sliceClone(h.groups),
	}
}

// WithGroup returns a new handler with the given group name appended.
func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{
		level:   h.level,
		program: h.program,
		attrs:   sliceClone(h.attrs),
		groups:  append(sliceClone(h.groups), name),
	}
}

func sliceClone[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}

func fadeCmd(seq int) tea.Cmd {
	return tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
		return logRecordFadeMsg{seq: seq}
	})
}
