// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/ppm/internal/core/domain"

// ManifestStore persists the package registry to a JSON manifest file.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Load reads the manifest at path.
	// A missing or unparseable file yields an empty registry; Load never fails.
	Load(path string) *domain.Registry

	// Read reads the manifest at path and reports why it could not be used.
	Read(path string) (*domain.Registry, error)

	// Save replaces the manifest at path with the given registry.
	Save(path string, reg *domain.Registry) error
}
