package keybox

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/keebox/internal/fs"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Indent string `json:"indent,omitempty"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global   string // Path to global config if loaded, empty otherwise
	Explicit string // Path to --config file if given, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Indent: DefaultIndent,
	}
}

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/keebox/config.json if set, otherwise ~/.config/keebox/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "keebox", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "keebox", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	FS         fs.FS             // filesystem to read config files from
	ConfigPath string            // -c/--config flag value
	Env        map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/keebox/config.json or $XDG_CONFIG_HOME/keebox/config.json)
// 3. Explicit config file via ConfigPath (if non-empty).
//
// An unreadable config file, or a missing explicit one, is an [*IOError]; a
// file that does not parse or validate is a [*FormatError].
func LoadConfig(input LoadConfigInput) (Config, error) {
	cfg := DefaultConfig()

	globalPath := getGlobalConfigPath(input.Env)
	if globalPath != "" {
		globalCfg, loaded, err := loadConfigFile(input.FS, globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = mergeConfig(cfg, globalCfg)
		}
	}

	if input.ConfigPath != "" {
		// Check existence first to provide a clear "not found" error
		exists, err := input.FS.Exists(input.ConfigPath)
		if err != nil {
			return Config{}, &IOError{Op: "read", Path: input.ConfigPath, Err: err}
		}

		if !exists {
			return Config{}, &IOError{
				Op:   "read",
				Path: input.ConfigPath,
				Err:  fmt.Errorf("%w: %w", ErrConfigFileNotFound, os.ErrNotExist),
			}
		}

		explicitCfg, _, err := loadConfigFile(input.FS, input.ConfigPath, true)
		if err != nil {
			return Config{}, err
		}

		cfg.Sources.Explicit = input.ConfigPath
		cfg = mergeConfig(cfg, explicitCfg)
	}

	return cfg, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, whether file was loaded, and any error.
func loadConfigFile(fsys fs.FS, path string, mustExist bool) (Config, bool, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, &IOError{Op: "read", Path: path, Err: err}
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, &FormatError{Reason: reasonConfig, Path: path, Err: parseErr}
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	if strings.Trim(cfg.Indent, " \t") != "" {
		return Config{}, ErrIndentInvalid
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.Indent != "" {
		base.Indent = overlay.Indent
	}

	return base
}

// FormatConfig returns the config as formatted JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
