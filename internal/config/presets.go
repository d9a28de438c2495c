// ABOUTME: Named sampling presets loaded from a YAML file
// ABOUTME: A preset bundles temperature and top_p under a mnemonic name

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named pair of sampling parameters.
type Preset struct {
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`
}

// presetsFile is the on-disk shape: a flat map of name -> preset.
type presetsFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

// BuiltinPresets are always available, overridable by the presets file.
func BuiltinPresets() map[string]Preset {
	return map[string]Preset{
		"precise":  {Temperature: 0.2, TopP: 0.9},
		"balanced": {Temperature: DefaultTemperature, TopP: DefaultTopP},
		"creative": {Temperature: 1.1, TopP: 0.95},
	}
}

// LoadPresets merges presets from path onto the builtins. A missing file
// yields the builtins alone.
func LoadPresets(path string) (map[string]Preset, error) {
	presets := BuiltinPresets()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return presets, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading presets %s: %w", path, err)
	}

	var f presetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing presets %s: %w", path, err)
	}

	for name, p := range f.Presets {
		if err := validatePreset(name, p); err != nil {
			return nil, err
		}
		presets[name] = p
	}

	return presets, nil
}

// validatePreset rejects out-of-range sampling values.
func validatePreset(name string, p Preset) error {
	if p.Temperature < 0 || p.Temperature > 2 {
		return fmt.Errorf("preset %q: temperature %v out of range [0, 2]", name, p.Temperature)
	}
	if p.TopP <= 0 || p.TopP > 1 {
		return fmt.Errorf("preset %q: top_p %v out of range (0, 1]", name, p.TopP)
	}
	return nil
}
