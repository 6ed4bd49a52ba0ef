// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ppm/internal/adapters/config"
	_ "go.trai.ch/ppm/internal/adapters/console"
	_ "go.trai.ch/ppm/internal/adapters/logger"
	_ "go.trai.ch/ppm/internal/adapters/manifest"
	_ "go.trai.ch/ppm/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/ppm/internal/app"
)
