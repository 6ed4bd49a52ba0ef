package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/ppm/internal/ui/output"
	"go.trai.ch/ppm/internal/ui/style"
)

// decoration is the marker and colour a diagnostic line gets for its level.
type decoration struct {
	marker string
	color  lipgloss.Color
}

// Diagnostics share stderr with the installer's own output, so warnings and
// errors carry a marker that sets them apart from pip's lines.
var decorations = map[slog.Level]decoration{
	slog.LevelWarn:  {marker: style.Warning + " ", color: style.Yellow},
	slog.LevelError: {marker: style.Cross + " ", color: style.Red},
}

var plain = decoration{color: style.Slate}

// PrettyHandler is a slog.Handler writing one diagnostic line per record.
// Attributes are appended as "(key=value, ...)", the same shape error
// metadata uses.
type PrettyHandler struct {
	out    *termenv.Output
	mu     *sync.Mutex
	level  slog.Leveler
	attrs  []string
	prefix string
}

// NewPrettyHandler creates a new PrettyHandler writing to w, or stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		mu:    &sync.Mutex{},
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	deco, ok := decorations[r.Level]
	if !ok {
		deco = plain
	}

	attrs := h.attrs
	if r.NumAttrs() > 0 {
		attrs = append(make([]string, 0, len(h.attrs)+r.NumAttrs()), h.attrs...)
		r.Attrs(func(attr slog.Attr) bool {
			attrs = append(attrs, h.prefix+attr.Key+"="+attr.Value.String())
			return true
		})
	}

	var line strings.Builder
	line.WriteString(deco.marker)
	line.WriteString(r.Message)
	if len(attrs) > 0 {
		line.WriteString(" (" + strings.Join(attrs, ", ") + ")")
	}

	styled := h.out.String(line.String()).Foreground(h.out.Color(string(deco.color)))

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a handler that appends attrs to every record, keyed
// under the current group.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(make([]string, 0, len(h.attrs)+len(attrs)), h.attrs...)
	for _, attr := range attrs {
		next.attrs = append(next.attrs, h.prefix+attr.Key+"="+attr.Value.String())
	}
	return &next
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}
