// Package config loads the versioned coverletter configuration file.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/lo"

	"github.com/zbiljic/vconfig-go"

	"github.com/zbiljic/coverletter/pkg/failure"
)

const fileName = "coverletter.json"

var (
	// Cached configuration to avoid loading multiple times
	cachedConfig *Config
	cachedPath   string
	// Mutex for thread-safe access to config file
	configMutex = &sync.Mutex{}
)

// Load loads the configuration. An explicit path must exist. Without one the
// search paths are tried in order, and defaults are used when none exists.
func Load(explicit string) (*Config, error) {
	configMutex.Lock()
	defer configMutex.Unlock()

	if cachedConfig != nil && cachedPath == explicit {
		return cachedConfig, nil
	}

	path := explicit
	if path == "" {
		found, err := FindFile()
		if err != nil {
			config := NewDefault()
			cachedConfig, cachedPath = config, explicit
			return config, nil
		}
		path = found
	} else if _, err := os.Stat(path); err != nil {
		return nil, failure.Configurationf(err, "config file %s is not readable", path)
	}

	config, err := loadMigrate(path)
	if err != nil {
		return nil, err
	}

	cachedConfig, cachedPath = config, explicit
	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, filename string) error {
	if config == nil || filename == "" {
		return errInvalidArgument
	}

	if err := config.Validate(); err != nil {
		return err
	}

	configMutex.Lock()
	defer configMutex.Unlock()

	// ensure directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errFailedToCreateDirectory(dir, err)
	}

	if err := vconfig.SaveConfig(config, filename); err != nil {
		return errFailedToSaveConfig(filename, err)
	}

	// the next Load re-reads the file
	cachedConfig = nil

	return nil
}

// FindFile searches for configuration file in hierarchical order
func FindFile() (string, error) {
	for _, path := range GetSearchPaths() {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}

	return "", os.ErrNotExist
}

// GetSearchPaths returns the list of paths to search for configuration files
func GetSearchPaths() []string {
	var paths []string

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	homeDir := lo.Must(os.UserHomeDir())

	// 1. ./.coverletter.json (current directory)
	paths = append(paths, filepath.Join(cwd, "."+fileName))

	// 2. ./coverletter.json (current directory)
	paths = append(paths, filepath.Join(cwd, fileName))

	// 3. ~/.config/coverletter/coverletter.json (user config)
	paths = append(paths, GetDefaultPath())

	// 4. ~/.coverletter.json (user home fallback)
	paths = append(paths, filepath.Join(homeDir, "."+fileName))

	return paths
}

// GetPath returns the path configuration is loaded from. The second result
// is false when explicit is empty and no file exists.
func GetPath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	path, err := FindFile()
	return path, err == nil
}

// GetDefaultPath returns the default path for user configuration
func GetDefaultPath() string {
	homeDir := lo.Must(os.UserHomeDir())

	return filepath.Join(homeDir, ".config", "coverletter", fileName)
}

// ResetCache clears the cached configuration (useful for testing)
func ResetCache() {
	configMutex.Lock()
	defer configMutex.Unlock()

	cachedConfig = nil
	cachedPath = ""
}
