package ports

// Reporter prints user-facing outcome lines.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Success prints a line for an operation that succeeded.
	Success(msg string)
	// Failure prints a line for an operation that failed.
	Failure(msg string)
	// Line prints an unstyled line.
	Line(msg string)
}
