package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "GEOFILEMAKER_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "geofilemaker.yaml"
	// ConfigDirName is the directory under the XDG and system config roots
	ConfigDirName = "geofilemaker"

	dirConfigFile = "config.yaml"
)

// SearchPaths lists the config file candidates in priority order.
// Unset environment variables contribute no entry.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, ConfigFileName)
	paths = append(paths, userConfigPaths()...)
	return append(paths, filepath.Join("/etc", ConfigDirName, dirConfigFile))
}

// userConfigPaths returns $XDG_CONFIG_HOME then ~/.config
func userConfigPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, ConfigDirName, dirConfigFile))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, dirConfigFile))
	}
	return paths
}

// FindConfigPath returns the first existing SearchPaths entry, or "".
// A file found in the working directory is returned as an absolute path.
func FindConfigPath() string {
	for _, p := range SearchPaths() {
		if !fileExists(p) {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	return ""
}

// DefaultConfigPath is where config init writes: the first user config
// location, or the working directory when neither XDG_CONFIG_HOME nor HOME is set.
func DefaultConfigPath() string {
	if paths := userConfigPaths(); len(paths) > 0 {
		return paths[0]
	}
	return ConfigFileName
}

// EnsureConfigDir creates the directory that will hold configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
