package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ppm/internal/adapters/config"
	"go.trai.ch/ppm/internal/adapters/logger"
	"go.trai.ch/ppm/internal/core/domain"
	"go.trai.ch/ppm/internal/core/ports"
)

// NodeID is the unique identifier for the installer gateway Graft node.
const NodeID graft.ID = "adapter.installer"

func init() {
	graft.Register(graft.Node[ports.Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.Installer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			gw, err := NewGateway(log, cfg)
			if err != nil {
				return nil, err
			}
			return gw, nil
		},
	})
}
