package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "cathapult"

	// NamesFile is the CATH names table (colon-delimited).
	NamesFile = "cath-names.txt"

	// SuperfamiliesFile is the CATH superfamily list (tab-delimited).
	SuperfamiliesFile = "cath-superfamily-list.txt"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/cathapult by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the default directory for CATH reference tables.
// Returns ~/.local/share/cathapult/data by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "data")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/cathapult/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/cathapult/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// ReferencePaths returns paths to the primary and fallback CATH name
// tables, taking ReferenceDir into account.
func (c *Config) ReferencePaths() (names, superfamilies string) {
	dir := c.ReferenceDir
	if dir == "" {
		dir = DataDir(c.HomeDir)
	}
	return filepath.Join(dir, NamesFile), filepath.Join(dir, SuperfamiliesFile)
}
