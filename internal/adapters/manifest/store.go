// Package manifest implements the JSON manifest store that persists the
// package registry between invocations.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.trai.ch/ppm/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ManifestStore using a single JSON file.
type Store struct {
	schema *jsonschema.Schema
}

// NewStore creates a Store with the manifest schema compiled.
func NewStore() (*Store, error) {
	sch, err := compileSchema()
	if err != nil {
		return nil, err
	}
	return &Store{schema: sch}, nil
}

// Load reads the registry at path. A missing, unreadable, empty, malformed or
// mis-shaped file yields an empty registry.
func (s *Store) Load(path string) *domain.Registry {
	reg, err := s.Read(path)
	if err != nil {
		return domain.NewRegistry()
	}
	return reg
}

// Read reads and validates the registry at path.
// The returned error matches domain.ErrManifestReadFailed,
// domain.ErrManifestParseFailed or domain.ErrManifestInvalid under errors.Is.
func (s *Store) Read(path string) (*domain.Registry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Join(domain.ErrManifestReadFailed, err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Join(domain.ErrManifestParseFailed, err)
	}

	if err := s.schema.Validate(inst); err != nil {
		return nil, errors.Join(domain.ErrManifestInvalid, err)
	}

	reg := domain.NewRegistry()
	if err := json.Unmarshal(data, reg); err != nil {
		return nil, errors.Join(domain.ErrManifestParseFailed, err)
	}
	if reg.Packages == nil {
		reg.Packages = make(map[string]string)
	}
	return reg, nil
}

// Save replaces the file at path with reg, pretty-printed with two-space
// indentation and no trailing newline.
func (s *Store) Save(path string, reg *domain.Registry) error {
	if reg == nil {
		reg = domain.NewRegistry()
	}

	data, err := encode(reg)
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestMarshalFailed.Error())
	}

	path = filepath.Clean(path)
	if err := writeAtomic(path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

func encode(reg *domain.Registry) ([]byte, error) {
	doc := domain.Registry{Packages: reg.Packages}
	if doc.Packages == nil {
		doc.Packages = map[string]string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// writeAtomic writes data to a temp file next to the file path refers to and
// renames it into place, so readers never observe a partially written manifest.
// Symlinks are followed and an existing file keeps its permissions. When the
// directory does not accept new files the manifest is rewritten in place.
func writeAtomic(path string, data []byte) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	perm := os.FileMode(domain.FilePerm)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		if werr := os.WriteFile(path, data, perm); werr != nil {
			return zerr.Wrap(errors.Join(err, werr), "failed to write manifest in place")
		}
		return nil
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to close temp file")
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to set file mode")
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to replace manifest")
	}
	return nil
}
