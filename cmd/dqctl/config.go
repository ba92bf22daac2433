package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds dqctl's configuration options.
type Config struct {
	QueueRoot       string `json:"queue_root"`                  //nolint:tagliatelle
	HandleTableSize int    `json:"handle_table_size,omitempty"` //nolint:tagliatelle
	LutWidth        int    `json:"lut_width,omitempty"`         //nolint:tagliatelle
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string
	Project string
}

// DefaultConfig returns the built-in default configuration.
func DefaultConfig() Config {
	return Config{
		QueueRoot:       ".dqueues",
		HandleTableSize: 10,
		LutWidth:        4,
	}
}

// ConfigFileName is the default project-local config file name.
const ConfigFileName = ".dqctl.jsonc"

// getGlobalConfigPath returns $XDG_CONFIG_HOME/dqctl/config.jsonc, falling
// back to ~/.config/dqctl/config.jsonc.
func getGlobalConfigPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok {
			return filepath.Join(after, "dqctl", "config.jsonc")
		}
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dqctl", "config.jsonc")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "dqctl", "config.jsonc")
	}

	return ""
}

// LoadConfig loads configuration with the following precedence (highest
// wins): defaults, global user config, project config (or an explicit
// config path), CLI overrides.
func LoadConfig(
	workDir, configPath string, cliOverrides Config, hasQueueRootOverride bool, env []string,
) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	globalCfg, globalPath, err := loadGlobalConfig(env)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, configPath)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if hasQueueRootOverride {
		cfg.QueueRoot = cliOverrides.QueueRoot
	}

	if validateErr := validateConfig(cfg); validateErr != nil {
		return Config{}, ConfigSources{}, validateErr
	}

	return cfg, sources, nil
}

func loadGlobalConfig(env []string) (Config, string, error) {
	path := getGlobalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, explicitEmpty, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["queue_root"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", errConfigInvalid, path, errQueueRootEmpty)
	}

	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		if _, statErr := os.Stat(cfgFile); statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", errConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	cfg, explicitEmpty, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["queue_root"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", errConfigInvalid, cfgFile, errQueueRootEmpty)
	}

	return cfg, cfgFile, nil
}

func loadConfigFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, nil, false, nil
		}

		if mustExist {
			return Config{}, nil, false, fmt.Errorf("%w: %s", errConfigFileRead, path)
		}

		return Config{}, nil, false, nil
	}

	cfg, explicitEmpty, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, parseErr)
	}

	return cfg, explicitEmpty, true, nil
}

func parseConfig(data []byte) (Config, map[string]bool, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	if val, exists := raw["queue_root"]; exists {
		if str, ok := val.(string); ok && str == "" {
			explicitEmpty["queue_root"] = true
		}
	}

	return cfg, explicitEmpty, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.QueueRoot != "" {
		base.QueueRoot = overlay.QueueRoot
	}

	if overlay.HandleTableSize != 0 {
		base.HandleTableSize = overlay.HandleTableSize
	}

	if overlay.LutWidth != 0 {
		base.LutWidth = overlay.LutWidth
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.QueueRoot == "" {
		return errQueueRootEmpty
	}

	return nil
}

// FormatConfig returns cfg as formatted JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
