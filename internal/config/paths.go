// ABOUTME: Standard filesystem paths for dialogstream configuration
// ABOUTME: Resolves ~/.dialogstream/ for global and .dialogstream/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".dialogstream"
	projectDirName = ".dialogstream"
)

// GlobalDir returns the user-global config directory (~/.dialogstream/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.dialogstream/ in cwd).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.json")
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "config.json")
}

// GlobalPresetsFile returns the path to the sampling presets file.
func GlobalPresetsFile() string {
	return filepath.Join(GlobalDir(), "presets.yaml")
}
