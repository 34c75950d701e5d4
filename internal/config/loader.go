package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads the catcher configuration.
// Search order: customPath -> ~/.catcher/configs/catch.yaml -> ./configs/catch.yaml -> embedded default.
// Files are overlaid on the defaults, so a partial file only changes what it
// names. Categories are merged by name, field by field. A file that exists
// but does not parse or validate is an error, not a silent fallback.
func Load(customPath string) (CatchConfig, error) {
	// Try custom path first
	if customPath != "" {
		return loadFile(ExpandHome(customPath))
	}

	// Try user config directory
	if userCfgPath := userConfigPath("catch.yaml"); userCfgPath != "" {
		if _, err := os.Stat(userCfgPath); err == nil {
			return loadFile(userCfgPath)
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", "catch.yaml")
	if _, err := os.Stat(localPath); err == nil {
		return loadFile(localPath)
	}

	// Use embedded default YAML
	cfg, err := parse(defaultCatchYAML)
	if err != nil {
		return DefaultCatchConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func loadFile(path string) (CatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CatchConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return CatchConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parse overlays YAML data on the defaults and validates the result.
func parse(data []byte) (CatchConfig, error) {
	cfg := DefaultCatchConfig()
	defaults := slices.Clone(cfg.Categories)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CatchConfig{}, err
	}

	// yaml.v3 replaces slices wholesale; merge categories onto the defaults.
	var overlay struct {
		Categories []yaml.Node `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return CatchConfig{}, err
	}
	if overlay.Categories != nil {
		merged, err := mergeCategories(defaults, overlay.Categories)
		if err != nil {
			return CatchConfig{}, err
		}
		cfg.Categories = merged
	}

	if err := cfg.Validate(); err != nil {
		return CatchConfig{}, err
	}
	return cfg, nil
}

// mergeCategories decodes each node on top of the default category with the
// same name. Unnamed defaults are kept; new names are appended.
func mergeCategories(defaults []CategoryConfig, nodes []yaml.Node) ([]CategoryConfig, error) {
	out := slices.Clone(defaults)
	for i := range nodes {
		var named struct {
			Name string `yaml:"name"`
		}
		if err := nodes[i].Decode(&named); err != nil {
			return nil, err
		}

		idx := slices.IndexFunc(out, func(c CategoryConfig) bool { return c.Name == named.Name })
		if idx < 0 {
			out = append(out, CategoryConfig{})
			idx = len(out) - 1
		}
		if err := nodes[i].Decode(&out[idx]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".catcher", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
// The path is returned unchanged if it has no ~ or home is unavailable.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
