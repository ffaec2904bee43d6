package app

import (
	"go.trai.ch/xmlres/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, loader ports.ConfigLoader) *Components {
	return &Components{
		App:          app,
		Logger:       logger,
		ConfigLoader: loader,
	}
}
