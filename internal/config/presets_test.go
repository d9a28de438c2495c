// ABOUTME: Tests for YAML sampling preset loading and validation
// ABOUTME: Covers builtin fallback, file overrides, and range checks

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPresetsMissingFileYieldsBuiltins(t *testing.T) {
	t.Parallel()

	presets, err := LoadPresets(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"precise", "balanced", "creative"} {
		if _, ok := presets[name]; !ok {
			t.Errorf("builtin preset %q missing", name)
		}
	}
}

func TestLoadPresetsFileOverridesBuiltin(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `
presets:
  balanced:
    temperature: 0.55
    top_p: 0.85
  custom:
    temperature: 1.0
    top_p: 0.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing presets: %v", err)
	}

	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := presets["balanced"]; got.Temperature != 0.55 || got.TopP != 0.85 {
		t.Errorf("balanced = %+v, want override", got)
	}
	if got := presets["custom"]; got.Temperature != 1.0 || got.TopP != 0.5 {
		t.Errorf("custom = %+v", got)
	}
}

func TestLoadPresetsValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "temperature out of range",
			content: "presets:\n  bad:\n    temperature: 3.0\n    top_p: 0.9\n",
		},
		{
			name:    "top_p zero",
			content: "presets:\n  bad:\n    temperature: 0.7\n    top_p: 0\n",
		},
		{
			name:    "not yaml",
			content: "{{{{",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "presets.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing presets: %v", err)
			}
			if _, err := LoadPresets(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
