package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppDir is the directory name under the user config directory.
	AppDir = "launchify"

	// FileName is the configuration file name.
	FileName = "config.toml"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	expandPaths(cfg)
	return cfg
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	expandPaths(&cfg)

	return &cfg, nil
}

// LoadOrDefault loads the file at path when it is set. With an empty path it loads
// the default location and falls back to Default when that file does not exist.
// It returns the path actually read, or "" when defaults were used.
func LoadOrDefault(path string) (*Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	path = DefaultPath()
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), "", nil
		}
		return nil, path, err
	}
	return cfg, path, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/launchify/config.toml, or
// ~/.config/launchify/config.toml when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdg != "" {
		return filepath.Join(xdg, AppDir, FileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppDir, FileName)
}

// applyDefaults применяет значения по умолчанию
func applyDefaults(c *Config) {
	if c.Paths.LaunchAgentsDir == "" {
		c.Paths.LaunchAgentsDir = "~/Library/LaunchAgents"
	}
	if c.Paths.LogRoot == "" {
		c.Paths.LogRoot = "~/logs"
	}

	if c.Job.LabelPrefix == "" {
		c.Job.LabelPrefix = "com."
	}
	if c.Job.Launchctl == "" {
		c.Job.Launchctl = "launchctl"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
}

// expandPaths расширяет переменные окружения и ~ в путях
func expandPaths(c *Config) {
	c.Paths.LaunchAgentsDir = expandHome(expandEnv(c.Paths.LaunchAgentsDir))
	c.Paths.LogRoot = expandHome(expandEnv(c.Paths.LogRoot))
	c.Job.Launchctl = expandHome(expandEnv(c.Job.Launchctl))
	c.Logging.Output = expandEnv(c.Logging.Output)
}

// expandEnv расширяет переменную окружения формата ${VAR:default}
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	rest := s[end+1:]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		if val := os.Getenv(parts[0]); val != "" {
			return val + rest
		}
		return parts[1] + rest
	}

	// Без значения по умолчанию
	return os.Getenv(content) + rest
}

// expandHome расширяет ~ в пути
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
