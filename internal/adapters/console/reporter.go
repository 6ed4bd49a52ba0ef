// Package console prints operation outcomes and registry listings to stdout.
package console

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/ppm/internal/ui/output"
	"go.trai.ch/ppm/internal/ui/style"
)

// Reporter implements ports.Reporter. Outcome lines are coloured when stdout
// is a terminal and NO_COLOR is unset; list lines are always plain.
type Reporter struct {
	mu  sync.Mutex
	out *termenv.Output
}

// NewReporter creates a Reporter writing to w, or stdout when w is nil.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{out: output.New(w)}
}

// Success prints a successful outcome line.
func (r *Reporter) Success(msg string) {
	r.styled(msg, style.Green)
}

// Failure prints a failed outcome line.
func (r *Reporter) Failure(msg string) {
	r.styled(msg, style.Red)
}

// Line prints msg unstyled.
func (r *Reporter) Line(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.out.WriteString(msg + "\n")
}

func (r *Reporter) styled(msg string, color lipgloss.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.out.String(msg).Foreground(r.out.Color(string(color)))
	_, _ = r.out.WriteString(s.String() + "\n")
}
