// Package domain holds the core types of ppm: the package registry, install
// requests, settings and the errors shared by every layer.
package domain

import (
	"maps"
	"slices"
)

// LatestVersion is the version specifier recorded for unpinned installs.
const LatestVersion = "latest"

// Registry is the set of packages managed by ppm, keyed by package name.
// It is the only state persisted between invocations.
type Registry struct {
	// Packages maps a package name to its version specifier, either
	// LatestVersion or a literal version string.
	Packages map[string]string `json:"packages"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{Packages: make(map[string]string)}
}

// Set records name at version, replacing any previous entry.
func (r *Registry) Set(name, version string) {
	if r.Packages == nil {
		r.Packages = make(map[string]string)
	}
	r.Packages[name] = version
}

// Remove drops name from the registry. Removing an absent name is a no-op.
func (r *Registry) Remove(name string) {
	delete(r.Packages, name)
}

// Version returns the recorded version of name.
func (r *Registry) Version(name string) (string, bool) {
	v, ok := r.Packages[name]
	return v, ok
}

// Len returns the number of recorded packages.
func (r *Registry) Len() int {
	return len(r.Packages)
}

// Names returns the recorded package names in lexical order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.Packages))
}

// Entries returns the recorded packages ordered by name.
func (r *Registry) Entries() []Package {
	entries := make([]Package, 0, len(r.Packages))
	for _, name := range r.Names() {
		entries = append(entries, Package{Name: name, Version: r.Packages[name]})
	}
	return entries
}

// Equal reports whether both registries hold the same name/version pairs.
func (r *Registry) Equal(other *Registry) bool {
	if r == nil || other == nil {
		return r == other
	}
	return maps.Equal(r.Packages, other.Packages)
}
