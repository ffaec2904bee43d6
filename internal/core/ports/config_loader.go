package ports

import "go.trai.ch/xmlres/internal/core/domain"

// ConfigLoader defines the interface for loading the subsystem settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the settings file starting at cwd and walking up.
	// It returns the default settings when no file exists.
	Load(cwd string) (domain.Settings, error)

	// LoadFile reads the settings from an explicit file.
	LoadFile(path string) (domain.Settings, error)

	// DiscoverConfigPath returns the settings file that Load would read, or "" when none exists.
	DiscoverConfigPath(cwd string) (string, error)
}
