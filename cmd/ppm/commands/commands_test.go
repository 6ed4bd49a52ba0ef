package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ppm/cmd/ppm/commands"
	"go.trai.ch/ppm/internal/app"
	"go.trai.ch/ppm/internal/build"
)

type call struct {
	method  string
	opts    app.Options
	req     app.InstallRequest
	args    []string
	pattern string
}

type mockApp struct {
	calls []call
	err   error
}

func (m *mockApp) Install(_ context.Context, opts app.Options, req app.InstallRequest) error {
	m.calls = append(m.calls, call{method: "install", opts: opts, req: req})
	return m.err
}

func (m *mockApp) Delete(_ context.Context, opts app.Options, name string) error {
	m.calls = append(m.calls, call{method: "delete", opts: opts, args: []string{name}})
	return m.err
}

func (m *mockApp) Update(_ context.Context, opts app.Options, name, version string) error {
	m.calls = append(m.calls, call{method: "update", opts: opts, args: []string{name, version}})
	return m.err
}

func (m *mockApp) List(_ context.Context, opts app.Options, pattern string) error {
	m.calls = append(m.calls, call{method: "list", opts: opts, pattern: pattern})
	return m.err
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Install(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want call
	}{
		{
			name: "single name",
			args: []string{"install", "pandas"},
			want: call{method: "install", req: app.InstallRequest{Names: []string{"pandas"}}},
		},
		{
			name: "many names pinned",
			args: []string{"install", "pandas", "numpy", "--version", "1.0.0"},
			want: call{method: "install", req: app.InstallRequest{Names: []string{"pandas", "numpy"}, Version: "1.0.0"}},
		},
		{
			name: "requirements short flag",
			args: []string{"install", "-r", "reqs.json"},
			want: call{method: "install", req: app.InstallRequest{RequirementsPath: "reqs.json"}},
		},
		{
			name: "nothing requested",
			args: []string{"install"},
			want: call{method: "install", req: app.InstallRequest{}},
		},
		{
			name: "global flags",
			args: []string{"-m", "deps.json", "install", "flask", "-v"},
			want: call{
				method: "install",
				opts:   app.Options{ManifestPath: "deps.json", Verbose: true},
				req:    app.InstallRequest{Names: []string{"flask"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)

			require.NoError(t, err)
			require.Len(t, m.calls, 1)
			assert.Equal(t, tt.want.method, m.calls[0].method)
			assert.Equal(t, tt.want.opts, m.calls[0].opts)
			assert.Equal(t, tt.want.req.Version, m.calls[0].req.Version)
			assert.Equal(t, tt.want.req.RequirementsPath, m.calls[0].req.RequirementsPath)
			assert.ElementsMatch(t, tt.want.req.Names, m.calls[0].req.Names)
		})
	}
}

func TestCommands_DeleteUpdateList(t *testing.T) {
	t.Run("delete", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "delete", "pandas")

		require.NoError(t, err)
		assert.Equal(t, []call{{method: "delete", args: []string{"pandas"}}}, m.calls)
	})

	t.Run("update", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "update", "numpy", "1.26.4")

		require.NoError(t, err)
		assert.Equal(t, []call{{method: "update", args: []string{"numpy", "1.26.4"}}}, m.calls)
	})

	t.Run("list", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "list")

		require.NoError(t, err)
		assert.Equal(t, []call{{method: "list"}}, m.calls)
	})

	t.Run("list with pattern", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "list", "pan")

		require.NoError(t, err)
		assert.Equal(t, []call{{method: "list", pattern: "pan"}}, m.calls)
	})
}

func TestCommands_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "delete without name", args: []string{"delete"}},
		{name: "delete with two names", args: []string{"delete", "a", "b"}},
		{name: "update without version", args: []string{"update", "numpy"}},
		{name: "list with two patterns", args: []string{"list", "a", "b"}},
		{name: "unknown command", args: []string{"frobnicate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)

			require.Error(t, err)
			assert.Empty(t, m.calls)
		})
	}
}

func TestCommands_PropagatesAppError(t *testing.T) {
	m := &mockApp{err: errors.New("simulated error")}

	_, err := execute(t, m, "update", "numpy", "2.0")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")

	require.NoError(t, err)
	assert.Equal(t, "ppm version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}

func TestCommands_VersionFlag(t *testing.T) {
	out, err := execute(t, &mockApp{}, "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "ppm version "+build.Version)
}
