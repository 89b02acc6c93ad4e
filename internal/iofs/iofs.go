// Package iofs prepares directories and files GNpin keeps in the
// user's home directory.
package iofs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/gnames/gnpin/pkg/config"
)

// ConfigYAML is the template of config.yaml.
//
//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, data and log directories.
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

// EnsureParentDir creates the directory of a file, such as a SQLite
// database set in config.
func EnsureParentDir(path string) error {
	return touchDir(filepath.Dir(path))
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

// EnsureConfigFile writes the config.yaml template, unless the file
// already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}
