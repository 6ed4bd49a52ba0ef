package domain

import "runtime"

// DefaultInstaller is the installer program used when none is configured.
const DefaultInstaller = "pip"

// Config holds the user settings for ppm.
type Config struct {
	// Installer is the program invoked for install and uninstall commands.
	Installer string

	// Shell is the argv prefix used to run a command line, e.g. ["sh", "-c"].
	Shell []string

	// ManifestPath is the manifest file used when no path is given on the command line.
	ManifestPath string

	// Quiet captures installer output and only surfaces it when a command fails.
	Quiet bool
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Installer:    DefaultInstaller,
		Shell:        DefaultShell(runtime.GOOS),
		ManifestPath: ManifestFileName,
	}
}

// DefaultShell returns the shell argv prefix for the given GOOS.
func DefaultShell(goos string) []string {
	if goos == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"sh", "-c"}
}
