package domain

import (
	"os"
	"path/filepath"
)

const (
	// HomeDirName is the name of the per-user metadata directory.
	HomeDirName = ".xmlres"

	// CacheDirName is the name of the resource cache directory.
	CacheDirName = "cache"

	// ConfigBaseName is the base name of the project settings file.
	ConfigBaseName = "xmlres"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// ConfigFileNames lists the settings file names looked up in every directory, in order.
var ConfigFileNames = []string{
	ConfigBaseName + ".yaml",
	ConfigBaseName + ".yml",
	ConfigBaseName + ".toml",
	ConfigBaseName + ".json",
}

// DefaultHomePath returns the per-user metadata directory.
// It falls back to a relative .xmlres when the home directory is unknown.
func DefaultHomePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return HomeDirName
	}
	return filepath.Join(home, HomeDirName)
}

// DefaultCachePath returns the default root of the resource cache.
// It joins the home directory, .xmlres and cache.
func DefaultCachePath() string {
	return filepath.Join(DefaultHomePath(), CacheDirName)
}
