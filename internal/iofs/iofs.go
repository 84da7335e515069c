// Package iofs prepares the file system layout used by gnmarine.
package iofs

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnames/gnmarine/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache and log directories if they are missing.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
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

// EnsureConfigFile writes default config.yaml unless it already exists.
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

// SnapshotPath resolves the location of an SQLite snapshot. Relative
// paths are placed into the cache directory.
func SnapshotPath(homeDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(config.CacheDir(homeDir), path)
}

// CheckSnapshot makes sure the snapshot is a readable regular file.
func CheckSnapshot(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return SnapshotError(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return SnapshotError(path, err)
	}
	if !info.Mode().IsRegular() {
		return SnapshotError(path, fmt.Errorf("%s is not a regular file", info.Mode().Type()))
	}
	return nil
}
