// Package shell runs installer command lines through the host shell.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"sync"

	"github.com/creack/pty"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/ppm/internal/core/domain"
	"go.trai.ch/ppm/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Gateway implements ports.Installer by running command lines through a shell.
type Gateway struct {
	logger ports.Logger
	shell  []string
	quiet  bool

	stdin          io.Reader
	stdout, stderr io.Writer
	usePTY         bool

	// input carries chunks read from stdin to whichever pty is current.
	// A chunk read while no command runs waits for the next one.
	inputOnce sync.Once
	input     chan []byte
}

// NewGateway creates a Gateway using the shell and output mode from cfg.
func NewGateway(logger ports.Logger, cfg *domain.Config) (*Gateway, error) {
	shell := cfg.Shell
	if len(shell) == 0 {
		shell = domain.DefaultShell(runtime.GOOS)
	}
	if shell[0] == "" {
		return nil, zerr.With(domain.ErrEmptyShell, "shell", fmt.Sprint(shell))
	}

	g := &Gateway{
		logger: logger,
		shell:  slices.Clone(shell),
		quiet:  cfg.Quiet,
		stdin:  os.Stdin,
	}
	g.SetOutput(os.Stdout, os.Stderr)
	return g, nil
}

// SetOutput redirects the child's output. A pseudo-terminal is only used
// when stdout is an interactive terminal.
func (g *Gateway) SetOutput(stdout, stderr io.Writer) {
	g.stdout = stdout
	g.stderr = stderr
	g.usePTY = runtime.GOOS != "windows" && isTerminal(stdout)
}

// Run executes command through the shell and waits for it to exit.
// It reports false when the command exits non-zero or is interrupted, and
// returns an error only when the shell itself cannot be started.
func (g *Gateway) Run(ctx context.Context, command string) (bool, error) {
	if err := ctx.Err(); err != nil {
		g.logger.Warn(fmt.Sprintf("command %q skipped: %v", command, err))
		return false, nil
	}

	args := append(slices.Clone(g.shell[1:]), command)
	cmd := exec.CommandContext(ctx, g.shell[0], args...) //nolint:gosec // command line is built from user input by design of the tool

	var captured bytes.Buffer
	var wait func() error

	switch {
	case g.quiet:
		cmd.Stdout = &captured
		cmd.Stderr = &captured
		if err := cmd.Start(); err != nil {
			return false, launchError(err, command)
		}
		wait = cmd.Wait
	case g.usePTY:
		ptmx, err := g.startPTY(cmd)
		if err != nil {
			return false, launchError(err, command)
		}
		done := make(chan struct{})
		var copier errgroup.Group
		copier.Go(func() error {
			defer func() { _ = ptmx.Close() }()
			// PTY merges stdout and stderr. Reading fails with EIO once the
			// child side closes, which is how the copy normally ends.
			_, _ = io.Copy(g.stdout, ptmx)
			return nil
		})
		copier.Go(func() error {
			g.forwardInput(ptmx, done)
			return nil
		})
		wait = func() error {
			err := cmd.Wait()
			close(done)
			_ = copier.Wait()
			return err
		}
	default:
		cmd.Stdin = g.stdin
		cmd.Stdout = g.stdout
		cmd.Stderr = g.stderr
		if err := cmd.Start(); err != nil {
			return false, launchError(err, command)
		}
		wait = cmd.Wait
	}

	span := trace.SpanFromContext(ctx)
	if err := wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		span.SetAttributes(attribute.Int("exit_code", exitCode))
		g.logger.Warn(fmt.Sprintf("command %q exited with code %d", command, exitCode))

		if g.quiet && captured.Len() > 0 {
			w := &logWriter{logger: g.logger}
			_, _ = w.Write(captured.Bytes())
			_ = w.Close()
		}
		return false, nil
	}

	span.SetAttributes(attribute.Int("exit_code", 0))
	return true, nil
}

// startPTY starts cmd on a new pseudo-terminal sized like the user's terminal.
func (g *Gateway) startPTY(cmd *exec.Cmd) (*os.File, error) {
	if f, ok := g.stdout.(*os.File); ok {
		if size, err := pty.GetsizeFull(f); err == nil {
			return pty.StartWithSize(cmd, size)
		}
	}
	return pty.Start(cmd)
}

// forwardInput copies stdin into ptmx until done is closed. When stdin is
// exhausted an end-of-file character is sent so a prompting child sees EOF
// instead of waiting forever.
func (g *Gateway) forwardInput(ptmx io.Writer, done <-chan struct{}) {
	g.inputOnce.Do(func() {
		g.input = make(chan []byte)
		go pump(g.stdin, g.input)
	})

	for {
		select {
		case <-done:
			return
		case chunk, ok := <-g.input:
			if !ok {
				_, _ = ptmx.Write([]byte{eot})
				<-done
				return
			}
			if _, err := ptmx.Write(chunk); err != nil {
				return
			}
		}
	}
}

// eot is the terminal end-of-file character (Ctrl-D).
const eot = 0x04

func pump(r io.Reader, out chan<- []byte) {
	defer close(out)
	if r == nil {
		return
	}
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			out <- slices.Clone(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func launchError(err error, command string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrInstallerLaunchFailed.Error()), "command", command)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
