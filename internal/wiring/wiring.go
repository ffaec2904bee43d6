// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/xmlres/internal/adapters/config"
	_ "go.trai.ch/xmlres/internal/adapters/dom"
	_ "go.trai.ch/xmlres/internal/adapters/logger"
	_ "go.trai.ch/xmlres/internal/adapters/telemetry"
	_ "go.trai.ch/xmlres/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/xmlres/internal/app"
)
