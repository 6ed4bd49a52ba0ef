package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/ppm/internal/core/domain"
	"go.trai.ch/ppm/internal/core/ports"
)

const (
	// LoaderNodeID is the unique identifier for the settings loader Graft node.
	LoaderNodeID graft.ID = "adapter.config_loader"
	// SettingsNodeID is the unique identifier for the loaded settings Graft node.
	SettingsNodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[*domain.Config]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoaderNodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return loader.Load(Path(os.Getenv))
		},
	})
}
