// Package registry implements the package operations that mutate the registry.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahilm/fuzzy"
	"go.trai.ch/ppm/internal/core/domain"
	"go.trai.ch/ppm/internal/core/ports"
)

// Operator runs install, delete, update and list against a registry.
// Package-level failures are reported and never returned; only errors that
// make continuing pointless (the installer cannot be launched) are.
type Operator struct {
	installer ports.Installer
	store     ports.ManifestStore
	reporter  ports.Reporter
	tracer    ports.Tracer
	program   string
}

// NewOperator creates a new Operator invoking program through installer.
func NewOperator(
	installer ports.Installer,
	store ports.ManifestStore,
	reporter ports.Reporter,
	tracer ports.Tracer,
	program string,
) *Operator {
	return &Operator{
		installer: installer,
		store:     store,
		reporter:  reporter,
		tracer:    tracer,
		program:   program,
	}
}

// Install installs each named package in order, pinned to version unless
// version is empty or "latest".
func (o *Operator) Install(ctx context.Context, reg *domain.Registry, names []string, version string) error {
	for _, name := range names {
		if err := o.install(ctx, reg, domain.NewPackage(name, version)); err != nil {
			return err
		}
	}
	return nil
}

// InstallFromManifest installs every package listed in the manifest at path,
// in name order, recording each with its literal version string.
func (o *Operator) InstallFromManifest(ctx context.Context, reg *domain.Registry, path string) error {
	reqs, err := o.store.Read(path)
	if err != nil {
		if errors.Is(err, domain.ErrManifestReadFailed) {
			o.reporter.Failure("Failed to read the requirements file.")
		} else {
			o.reporter.Failure("Failed to parse the requirements file.")
		}
		return nil
	}

	for _, pkg := range reqs.Entries() {
		if err := o.install(ctx, reg, pkg); err != nil {
			return err
		}
	}
	return nil
}

func (o *Operator) install(ctx context.Context, reg *domain.Registry, pkg domain.Package) error {
	ctx, span := o.tracer.Start(ctx, "install")
	defer span.End()
	span.SetAttribute("package", pkg.Name)
	span.SetAttribute("version", pkg.Version)

	ok, err := o.installer.Run(ctx, domain.InstallCommand(o.program, pkg))
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttribute("ok", ok)

	if !ok {
		o.reporter.Failure(fmt.Sprintf("Failed to install package %s", pkg.Name))
		return nil
	}

	reg.Set(pkg.Name, pkg.Version)
	o.reporter.Success(fmt.Sprintf("Package %s installed successfully", pkg.Name))
	return nil
}

// Delete uninstalls name and drops it from the registry.
// Deleting a package the registry does not know about is not an error.
func (o *Operator) Delete(ctx context.Context, reg *domain.Registry, name string) error {
	ctx, span := o.tracer.Start(ctx, "delete")
	defer span.End()
	span.SetAttribute("package", name)

	ok, err := o.installer.Run(ctx, domain.UninstallCommand(o.program, name))
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttribute("ok", ok)

	if !ok {
		o.reporter.Failure(fmt.Sprintf("Failed to delete package %s", name))
		return nil
	}

	reg.Remove(name)
	o.reporter.Success(fmt.Sprintf("Package %s deleted successfully", name))
	return nil
}

// Update reinstalls name pinned to version and records the new version.
func (o *Operator) Update(ctx context.Context, reg *domain.Registry, name, version string) error {
	ctx, span := o.tracer.Start(ctx, "update")
	defer span.End()
	span.SetAttribute("package", name)
	span.SetAttribute("version", version)

	ok, err := o.installer.Run(ctx, domain.UpdateCommand(o.program, name, version))
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttribute("ok", ok)

	if !ok {
		o.reporter.Failure(fmt.Sprintf("Failed to update package %s", name))
		return nil
	}

	reg.Set(name, version)
	o.reporter.Success(fmt.Sprintf("Package %s updated successfully to version %s", name, version))
	return nil
}

// List reports one "name: version" line per recorded package, sorted by name.
// A non-empty pattern keeps only names that fuzzy-match it, best match first.
func (o *Operator) List(ctx context.Context, reg *domain.Registry, pattern string) {
	_, span := o.tracer.Start(ctx, "list")
	defer span.End()

	names := reg.Names()
	if pattern != "" {
		span.SetAttribute("pattern", pattern)
		matches := fuzzy.Find(pattern, names)
		names = make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Str)
		}
	}
	span.SetAttribute("count", len(names))

	for _, name := range names {
		version, _ := reg.Version(name)
		o.reporter.Line(fmt.Sprintf("%s: %s", name, version))
	}
}
