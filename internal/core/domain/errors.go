package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest file is not valid JSON.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrManifestInvalid is returned when the manifest does not have the {"packages": {...}} shape.
	ErrManifestInvalid = zerr.New("manifest does not match the expected shape")

	// ErrManifestMarshalFailed is returned when the registry cannot be serialized.
	ErrManifestMarshalFailed = zerr.New("failed to marshal manifest")

	// ErrManifestWriteFailed is returned when the manifest file cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrInstallerLaunchFailed is returned when the installer command cannot be started at all.
	ErrInstallerLaunchFailed = zerr.New("failed to launch installer command")

	// ErrEmptyShell is returned when the configured shell has no program.
	ErrEmptyShell = zerr.New("shell command is empty")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidInstaller is returned when the configured installer is blank.
	ErrInvalidInstaller = zerr.New("installer must not be empty")
)
