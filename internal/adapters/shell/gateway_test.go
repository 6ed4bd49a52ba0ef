package shell_test

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/ppm/internal/adapters/shell"
	"go.trai.ch/ppm/internal/core/domain"
	"go.trai.ch/ppm/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newGateway(t *testing.T, cfg *domain.Config) (*shell.Gateway, *mocks.MockLogger, *bytes.Buffer) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests use sh")
	}

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	gw, err := shell.NewGateway(log, cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	gw.SetOutput(out, out)
	return gw, log, out
}

func shConfig() *domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Shell = []string{"sh", "-c"}
	return cfg
}

func TestGateway_Run_Success(t *testing.T) {
	gw, _, out := newGateway(t, shConfig())

	ok, err := gw.Run(t.Context(), "echo installed")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "installed\n", out.String())
}

func TestGateway_Run_StderrStreamed(t *testing.T) {
	gw, _, out := newGateway(t, shConfig())

	ok, err := gw.Run(t.Context(), "echo oops >&2")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "oops\n", out.String())
}

func TestGateway_Run_NonZeroExit(t *testing.T) {
	gw, log, _ := newGateway(t, shConfig())
	log.EXPECT().Warn(`command "exit 3" exited with code 3`)

	ok, err := gw.Run(t.Context(), "exit 3")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGateway_Run_RecordsExitCode(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    int
	}{
		{name: "success", command: "true", want: 0},
		{name: "failure", command: "exit 3", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, log, _ := newGateway(t, shConfig())
			log.EXPECT().Warn(gomock.Any()).AnyTimes()

			recorder := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
			ctx, span := tp.Tracer("test").Start(t.Context(), "install")

			_, err := gw.Run(ctx, tt.command)
			span.End()

			require.NoError(t, err)
			ended := recorder.Ended()
			require.Len(t, ended, 1)
			assert.Contains(t, ended[0].Attributes(), attribute.Int("exit_code", tt.want))
		})
	}
}

func TestGateway_Run_MissingProgram(t *testing.T) {
	gw, log, _ := newGateway(t, shConfig())
	log.EXPECT().Warn(gomock.Any())

	ok, err := gw.Run(t.Context(), "ppm-test-no-such-installer install pandas")

	require.NoError(t, err, "a missing installer is reported by the shell, not a launch failure")
	assert.False(t, ok)
}

func TestGateway_Run_Quiet(t *testing.T) {
	cfg := shConfig()
	cfg.Quiet = true

	t.Run("success hides output", func(t *testing.T) {
		gw, _, out := newGateway(t, cfg)

		ok, err := gw.Run(t.Context(), "echo noisy")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, out.String())
	})

	t.Run("failure surfaces output", func(t *testing.T) {
		gw, log, out := newGateway(t, cfg)
		gomock.InOrder(
			log.EXPECT().Warn(`command "echo first; echo second >&2; exit 1" exited with code 1`),
			log.EXPECT().Warn("first"),
			log.EXPECT().Warn("second"),
		)

		ok, err := gw.Run(t.Context(), "echo first; echo second >&2; exit 1")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, out.String())
	})
}

func TestGateway_Run_LaunchFailure(t *testing.T) {
	cfg := shConfig()
	cfg.Shell = []string{"/nonexistent/ppm-shell", "-c"}
	gw, _, _ := newGateway(t, cfg)

	ok, err := gw.Run(t.Context(), "pip install pandas")

	require.Error(t, err)
	assert.False(t, ok)
	assert.ErrorContains(t, err, domain.ErrInstallerLaunchFailed.Error())
}

func TestGateway_Run_Canceled(t *testing.T) {
	gw, log, out := newGateway(t, shConfig())
	log.EXPECT().Warn(`command "echo never" skipped: context canceled`)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	ok, err := gw.Run(ctx, "echo never")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestNewGateway_EmptyShell(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := shConfig()
	cfg.Shell = []string{""}

	gw, err := shell.NewGateway(mocks.NewMockLogger(ctrl), cfg)

	require.Error(t, err)
	assert.Nil(t, gw)
	assert.ErrorContains(t, err, domain.ErrEmptyShell.Error())
}

func TestNewGateway_DefaultShell(t *testing.T) {
	gw, _, out := newGateway(t, &domain.Config{Installer: "pip"})

	ok, err := gw.Run(t.Context(), "echo default")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "default\n", out.String())
}
