package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ppm/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ppm/internal/adapters/console"  //nolint:depguard // Wired in app layer
	"go.trai.ch/ppm/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ppm/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/ppm/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ppm/internal/core/domain"
	"go.trai.ch/ppm/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			shell.NodeID,
			console.NodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	store, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	installer, err := graft.Dep[ports.Installer](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	return New(store, installer, reporter, log, cfg), nil
}
