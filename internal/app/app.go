// Package app implements the application layer for ppm.
package app

import (
	"context"

	"go.trai.ch/ppm/internal/adapters/telemetry"
	"go.trai.ch/ppm/internal/core/domain"
	"go.trai.ch/ppm/internal/core/ports"
	"go.trai.ch/ppm/internal/engine/registry"
)

// UsageMessage is reported when install is given nothing to install.
const UsageMessage = "You must specify a package name or a requirements file."

// App represents the main application logic.
type App struct {
	store     ports.ManifestStore
	installer ports.Installer
	reporter  ports.Reporter
	logger    ports.Logger
	config    *domain.Config
}

// New creates a new App instance.
func New(
	store ports.ManifestStore,
	installer ports.Installer,
	reporter ports.Reporter,
	log ports.Logger,
	cfg *domain.Config,
) *App {
	if cfg == nil {
		cfg = domain.DefaultConfig()
	}
	return &App{
		store:     store,
		installer: installer,
		reporter:  reporter,
		logger:    log,
		config:    cfg,
	}
}

// Options holds the settings shared by every command.
type Options struct {
	// ManifestPath overrides the configured manifest file when set.
	ManifestPath string
	// Verbose logs every operation span with its duration.
	Verbose bool
}

// InstallRequest describes what install should do. A non-empty
// RequirementsPath takes precedence over Names.
type InstallRequest struct {
	Names            []string
	Version          string
	RequirementsPath string
}

// Install installs the requested packages and records the successful ones.
func (a *App) Install(ctx context.Context, opts Options, req InstallRequest) error {
	return a.session(ctx, opts, func(ctx context.Context, op *registry.Operator, reg *domain.Registry) error {
		switch {
		case req.RequirementsPath != "":
			if len(req.Names) > 0 {
				a.logger.Warn("package names are ignored when a requirements file is given")
			}
			return op.InstallFromManifest(ctx, reg, req.RequirementsPath)
		case len(req.Names) > 0:
			return op.Install(ctx, reg, req.Names, req.Version)
		default:
			a.reporter.Failure(UsageMessage)
			return nil
		}
	})
}

// Delete uninstalls name and drops it from the manifest.
func (a *App) Delete(ctx context.Context, opts Options, name string) error {
	return a.session(ctx, opts, func(ctx context.Context, op *registry.Operator, reg *domain.Registry) error {
		return op.Delete(ctx, reg, name)
	})
}

// Update pins name to version.
func (a *App) Update(ctx context.Context, opts Options, name, version string) error {
	return a.session(ctx, opts, func(ctx context.Context, op *registry.Operator, reg *domain.Registry) error {
		return op.Update(ctx, reg, name, version)
	})
}

// List prints the recorded packages, optionally fuzzy-filtered by pattern.
func (a *App) List(ctx context.Context, opts Options, pattern string) error {
	return a.session(ctx, opts, func(ctx context.Context, op *registry.Operator, reg *domain.Registry) error {
		op.List(ctx, reg, pattern)
		return nil
	})
}

type operation func(ctx context.Context, op *registry.Operator, reg *domain.Registry) error

// session loads the manifest, runs fn and writes the manifest back.
// The manifest is not written when fn fails.
func (a *App) session(ctx context.Context, opts Options, fn operation) error {
	tracer, shutdown := a.newTracer(opts.Verbose)
	defer shutdown()

	path := opts.ManifestPath
	if path == "" {
		path = a.config.ManifestPath
	}

	_, loadSpan := tracer.Start(ctx, "manifest.load")
	loadSpan.SetAttribute("path", path)
	reg := a.store.Load(path)
	loadSpan.SetAttribute("packages", reg.Len())
	loadSpan.End()

	op := registry.NewOperator(a.installer, a.store, a.reporter, tracer, a.config.Installer)
	if err := fn(ctx, op, reg); err != nil {
		return err
	}

	_, saveSpan := tracer.Start(ctx, "manifest.save")
	defer saveSpan.End()
	saveSpan.SetAttribute("path", path)
	if err := a.store.Save(path, reg); err != nil {
		saveSpan.RecordError(err)
		return err
	}
	return nil
}

func (a *App) newTracer(verbose bool) (ports.Tracer, func()) {
	if !verbose {
		return telemetry.NewNoOpTracer(), func() {}
	}
	tracer := telemetry.NewOTelTracer(a.logger)
	return tracer, func() { _ = tracer.Shutdown(context.Background()) }
}
