package domain

import "strings"

// Package is a single install request: a package name and the version to pin.
type Package struct {
	Name    string
	Version string
}

// NewPackage creates a Package. An empty version means LatestVersion.
func NewPackage(name, version string) Package {
	if version == "" {
		version = LatestVersion
	}
	return Package{Name: name, Version: version}
}

// Pinned reports whether the package requests a specific version.
func (p Package) Pinned() bool {
	return p.Version != "" && p.Version != LatestVersion
}

// Requirement renders the installer argument for p, "<name>" for unpinned
// packages and "<name>==<version>" otherwise.
func (p Package) Requirement() string {
	if !p.Pinned() {
		return p.Name
	}
	return p.Name + "==" + p.Version
}

// InstallCommand builds the shell command line that installs p with installer.
func InstallCommand(installer string, p Package) string {
	return strings.Join([]string{installer, "install", p.Requirement()}, " ")
}

// UninstallCommand builds the shell command line that removes name with installer.
func UninstallCommand(installer, name string) string {
	return strings.Join([]string{installer, "uninstall", "-y", name}, " ")
}

// UpdateCommand builds the shell command line that pins name to version with
// installer. Unlike InstallCommand the version is always pinned.
func UpdateCommand(installer, name, version string) string {
	return strings.Join([]string{installer, "install", name + "==" + version}, " ")
}
