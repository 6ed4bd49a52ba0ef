// Package output provides utilities for creating termenv.Output with consistent
// color profile handling across the CLI.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile returns the color profile for w.
// It checks if NO_COLOR is set, returning Ascii if so.
// Otherwise, it detects the terminal's capabilities, which yields Ascii for
// anything that is not a terminal.
func ColorProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// New creates a new termenv.Output for w with the profile chosen by ColorProfile.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts, termenv.WithProfile(ColorProfile(w)))

	return termenv.NewOutput(w, opts...)
}
