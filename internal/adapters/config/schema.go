package config

// Settingsfile is the on-disk structure of xmlres.yaml, xmlres.toml and xmlres.json.
// Pointer fields distinguish an absent key from its zero value.
type Settingsfile struct {
	UseCache                  *bool             `yaml:"useCache" toml:"useCache" json:"useCache"`
	CacheTTLSeconds           *int              `yaml:"cacheTTLSeconds" toml:"cacheTTLSeconds" json:"cacheTTLSeconds"`
	AttemptTTLSeconds         *int              `yaml:"attemptTTLSeconds" toml:"attemptTTLSeconds" json:"attemptTTLSeconds"`
	CachePath                 string            `yaml:"cachePath" toml:"cachePath" json:"cachePath"`
	DownloadExternalResources *bool             `yaml:"downloadExternalResources" toml:"downloadExternalResources" json:"downloadExternalResources"`
	CatalogPaths              []string          `yaml:"catalogPaths" toml:"catalogPaths" json:"catalogPaths"`
	FileAssociations          []FileAssociation `yaml:"fileAssociations" toml:"fileAssociations" json:"fileAssociations"`
	HTTPTimeoutSeconds        *int              `yaml:"httpTimeoutSeconds" toml:"httpTimeoutSeconds" json:"httpTimeoutSeconds"`
	MaxRedirects              *int              `yaml:"maxRedirects" toml:"maxRedirects" json:"maxRedirects"`
	Log                       LogSection        `yaml:"log" toml:"log" json:"log"`
}

// FileAssociation binds documents matching Pattern to the grammar at SystemID.
type FileAssociation struct {
	Pattern  string `yaml:"pattern" toml:"pattern" json:"pattern"`
	SystemID string `yaml:"systemId" toml:"systemId" json:"systemId"`
}

// LogSection configures the logger.
type LogSection struct {
	JSON bool `yaml:"json" toml:"json" json:"json"`
}
