// Package iofs prepares the directories and files cathapult keeps in the
// user's home.
package iofs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/cathapult/cathapult/pkg/config"
	"github.com/gnames/gnsys"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates configuration, reference data and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// EnsureParentDir creates the directory of an output file. It reports
// whether the directory had to be created.
func EnsureParentDir(path string) (bool, error) {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return false, nil
	}
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return false, nil
	}
	if err := gnsys.MakeDir(dir); err != nil {
		return false, CreateDirError(dir, err)
	}
	return true, nil
}
