package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings jobdeck needs to reach the job board API
// and to place its local files.
type Config struct {
	APIBase   string
	TokenPath string
	LogPath   string
	Theme     string
}

const (
	defaultConfigPath = "~/.config/jobdeck/config.toml"
	defaultTokenPath  = "~/.config/jobdeck/token.json"
	defaultLogPath    = "~/.local/state/jobdeck/jobdeck.log"
	defaultAPIBase    = "http://localhost:8000/api"

	// EnvAPIBase overrides the configured API base URL.
	EnvAPIBase = "JOBDECK_API_URL"
)

// Load locates and parses the jobdeck config, falling back to defaults when
// missing. The JOBDECK_API_URL environment variable wins over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase   string `toml:"api_url"`
		TokenPath string `toml:"token_path"`
		LogPath   string `toml:"log_path"`
		Theme     string `toml:"theme"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.TokenPath); v != "" {
		cfg.TokenPath = v
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = v
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = v
	}

	applyEnv(&cfg)

	cfg.TokenPath = mustExpand(cfg.TokenPath)
	cfg.LogPath = mustExpand(cfg.LogPath)
	return cfg, nil
}

func defaults() Config {
	return Config{
		APIBase:   defaultAPIBase,
		TokenPath: mustExpand(defaultTokenPath),
		LogPath:   mustExpand(defaultLogPath),
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBase)); v != "" {
		cfg.APIBase = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
