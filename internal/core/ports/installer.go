package ports

import "context"

// Installer runs installer command lines through the host shell.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Run executes command and waits for it to finish.
	//
	// It reports whether the command exited with status zero. A non-zero exit
	// is an expected outcome and is not returned as an error; the error is only
	// set when the command could not be launched.
	Run(ctx context.Context, command string) (bool, error)
}
