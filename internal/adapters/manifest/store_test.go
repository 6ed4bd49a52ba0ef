package manifest_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ppm/internal/adapters/manifest"
	"go.trai.ch/ppm/internal/core/domain"
)

func newStore(t *testing.T) *manifest.Store {
	t.Helper()
	s, err := manifest.NewStore()
	require.NoError(t, err)
	return s
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestStore_Load_Empty(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file", content: nil},
		{name: "empty file", content: ptr("")},
		{name: "malformed json", content: ptr("{not json")},
		{name: "missing packages key", content: ptr(`{"deps": {}}`)},
		{name: "packages not an object", content: ptr(`{"packages": ["numpy"]}`)},
		{name: "non-string version", content: ptr(`{"packages": {"numpy": 1}}`)},
		{name: "top-level array", content: ptr(`[]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), domain.ManifestFileName)
			if tt.content != nil {
				path = writeFile(t, *tt.content)
			}

			reg := newStore(t).Load(path)

			require.NotNil(t, reg)
			assert.Equal(t, 0, reg.Len())
		})
	}
}

func TestStore_Load_Valid(t *testing.T) {
	path := writeFile(t, `{"packages": {"pandas": "1.0.0", "numpy": "latest"}, "comment": "kept"}`)

	reg := newStore(t).Load(path)

	assert.Equal(t, map[string]string{"pandas": "1.0.0", "numpy": "latest"}, reg.Packages)
}

func TestStore_Read_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		wantErr error
	}{
		{name: "missing file", content: nil, wantErr: domain.ErrManifestReadFailed},
		{name: "empty file", content: ptr(""), wantErr: domain.ErrManifestParseFailed},
		{name: "malformed json", content: ptr(`{"packages": {`), wantErr: domain.ErrManifestParseFailed},
		{name: "wrong shape", content: ptr(`{"packages": "numpy"}`), wantErr: domain.ErrManifestInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "reqs.json")
			if tt.content != nil {
				path = writeFile(t, *tt.content)
			}

			reg, err := newStore(t).Read(path)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, reg)
		})
	}
}

func TestStore_Read_EmptyPackages(t *testing.T) {
	path := writeFile(t, `{"packages": {}}`)

	reg, err := newStore(t).Read(path)

	require.NoError(t, err)
	assert.NotNil(t, reg.Packages)
	assert.Equal(t, 0, reg.Len())
}

func TestStore_Save_Golden(t *testing.T) {
	tests := []struct {
		name       string
		packages   map[string]string
		goldenName string
	}{
		{
			name:       "single package",
			packages:   map[string]string{"pandas": "1.0.0"},
			goldenName: "save_single",
		},
		{
			name:       "sorted keys",
			packages:   map[string]string{"requests": "latest", "numpy": "1.26.4", "Django": "<5"},
			goldenName: "save_sorted",
		},
		{
			name:       "empty registry",
			packages:   nil,
			goldenName: "save_empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), domain.ManifestFileName)
			reg := &domain.Registry{Packages: tt.packages}

			require.NoError(t, newStore(t).Save(path, reg))

			data, err := os.ReadFile(path)
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, data)
		})
	}
}

func TestStore_Save_ExactBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.ManifestFileName)
	reg := domain.NewRegistry()
	reg.Set("pandas", "1.0.0")

	require.NoError(t, newStore(t).Save(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"packages\": {\n    \"pandas\": \"1.0.0\"\n  }\n}", string(data))
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	store := newStore(t)
	path := filepath.Join(t.TempDir(), domain.ManifestFileName)

	reg := domain.NewRegistry()
	reg.Set("numpy", "latest")
	reg.Set("pandas", "1.0.0")
	reg.Set("flask", ">=2,<3")

	require.NoError(t, store.Save(path, reg))

	loaded := store.Load(path)
	assert.True(t, reg.Equal(loaded))
}

func TestStore_Save_Overwrites(t *testing.T) {
	store := newStore(t)
	path := writeFile(t, `{"packages": {"old": "1.0", "stale": "2.0"}, "extra": true}`)

	reg := domain.NewRegistry()
	reg.Set("new", "latest")
	require.NoError(t, store.Save(path, reg))

	loaded := store.Load(path)
	assert.Equal(t, map[string]string{"new": "latest"}, loaded.Packages)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_Save_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", domain.ManifestFileName)

	err := newStore(t).Save(path, domain.NewRegistry())

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrManifestWriteFailed.Error())
}

func TestStore_Save_FollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "shared.json")
	require.NoError(t, os.WriteFile(target, []byte(`{"packages": {}}`), 0o600))
	link := filepath.Join(dir, domain.ManifestFileName)
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	reg := domain.NewRegistry()
	reg.Set("pandas", "1.0.0")
	require.NoError(t, newStore(t).Save(link, reg))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "manifest link must survive the save")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"packages\": {\n    \"pandas\": \"1.0.0\"\n  }\n}", string(data))
}

func TestStore_Save_KeepsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	path := writeFile(t, `{"packages": {}}`)
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, newStore(t).Save(path, domain.NewRegistry()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_Save_NewFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	path := filepath.Join(t.TempDir(), domain.ManifestFileName)

	require.NoError(t, newStore(t).Save(path, domain.NewRegistry()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
}

func TestStore_Save_ReadOnlyDir(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs unix permissions enforced for the current user")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, domain.ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"packages": {}}`), 0o644))
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	reg := domain.NewRegistry()
	reg.Set("pandas", "latest")
	require.NoError(t, newStore(t).Save(path, reg))

	assert.Equal(t, map[string]string{"pandas": "latest"}, newStore(t).Load(path).Packages)
}

func ptr(s string) *string { return &s }
