// ABOUTME: Settings loading with global + project config deep merge
// ABOUTME: JSON-based configuration; project values override global ones

package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings holds the merged configuration.
type Settings struct {
	BaseURL          string  `json:"base_url,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
	TopP             float64 `json:"top_p,omitempty"`
	Preset           string  `json:"preset,omitempty"`
	CardPath         string  `json:"card_path,omitempty"`
	CardFallbackPath string  `json:"card_fallback_path,omitempty"`
	LogLevel         string  `json:"log_level,omitempty"`
}

// Defaults used when neither config file nor flags set a value.
const (
	DefaultBaseURL     = "http://localhost:8080"
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
)

// Load reads and merges global and project-local settings.
// Project settings override global settings. Missing files are not errors.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return merge(global, project), nil
}

// loadFile reads a Settings from a JSON file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge deep-merges project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.BaseURL != "" {
		result.BaseURL = project.BaseURL
	}
	if project.Temperature != 0 {
		result.Temperature = project.Temperature
	}
	if project.TopP != 0 {
		result.TopP = project.TopP
	}
	if project.Preset != "" {
		result.Preset = project.Preset
	}
	if project.CardPath != "" {
		result.CardPath = project.CardPath
	}
	if project.CardFallbackPath != "" {
		result.CardFallbackPath = project.CardFallbackPath
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}

	return &result
}

// ApplyDefaults fills unset fields with the package defaults.
func (s *Settings) ApplyDefaults() {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Temperature == 0 {
		s.Temperature = DefaultTemperature
	}
	if s.TopP == 0 {
		s.TopP = DefaultTopP
	}
}
