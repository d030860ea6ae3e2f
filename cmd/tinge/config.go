package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tinge/internal/lang"
	"tinge/internal/render"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Theme map[string]string `toml:"theme"`
	Modes []modeConfig      `toml:"modes"`
}

type modeConfig struct {
	Name       string   `toml:"name"`
	Extensions []string `toml:"extensions"`
	Keywords   []string `toml:"keywords"`
	Types      []string `toml:"types"`
}

func findTingeToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "tinge.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest walks up from startDir looking for tinge.toml.
// Absence is not an error; defaults apply.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findTingeToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for i, mc := range cfg.Modes {
		if strings.TrimSpace(mc.Name) == "" {
			return projectConfig{}, fmt.Errorf("%s: [[modes]] entry %d is missing name", path, i+1)
		}
	}
	return cfg, nil
}

// registryFor builds the mode registry: custom manifest modes first so
// they win extension ties, then the builtins.
func registryFor(manifest *projectManifest) *lang.Registry {
	reg := lang.NewRegistry()
	if manifest != nil {
		for _, mc := range manifest.Config.Modes {
			reg.Register(&lang.Mode{
				Name:       mc.Name,
				Extensions: mc.Extensions,
				Keywords:   lang.Table(mc.Keywords),
				Types:      lang.Table(mc.Types),
			})
		}
	}
	for _, m := range lang.Builtin().Modes() {
		reg.Register(m)
	}
	return reg
}

func themeFor(manifest *projectManifest) (render.Theme, error) {
	if manifest == nil || len(manifest.Config.Theme) == 0 {
		return render.DefaultTheme(), nil
	}
	theme, err := render.ThemeFromColors(manifest.Config.Theme)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifest.Path, err)
	}
	return theme, nil
}
