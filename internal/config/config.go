package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings jukebox reads from its config file.
type Config struct {
	PlayerURL      string
	APIPath        string
	PollInterval   time.Duration
	VolumeDebounce time.Duration
	RequestTimeout time.Duration
	ListenAddr     string
	LogFile        string
}

const (
	defaultConfigPath     = "~/.config/jukebox/config.toml"
	defaultPlayerURL      = "http://volumio.local"
	defaultAPIPath        = "/api/v1"
	defaultPollInterval   = 5 * time.Second
	defaultVolumeDebounce = 300 * time.Millisecond
	defaultListenAddr     = "127.0.0.1:8088"
	defaultLogFile        = "~/.local/state/jukebox/jukebox.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		PlayerURL:      defaultPlayerURL,
		APIPath:        defaultAPIPath,
		PollInterval:   defaultPollInterval,
		VolumeDebounce: defaultVolumeDebounce,
		ListenAddr:     defaultListenAddr,
		LogFile:        mustExpand(defaultLogFile),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
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
		PlayerURL        string `toml:"player_url"`
		APIPath          string `toml:"api_path"`
		PollSeconds      int    `toml:"poll_seconds"`
		VolumeDebounceMS int    `toml:"volume_debounce_ms"`
		RequestTimeout   int    `toml:"request_timeout_seconds"`
		ListenAddr       string `toml:"listen_addr"`
		LogFile          string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.PlayerURL); v != "" {
		cfg.PlayerURL = v
	}
	if v := strings.TrimSpace(raw.APIPath); v != "" {
		cfg.APIPath = v
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.VolumeDebounceMS > 0 {
		cfg.VolumeDebounce = time.Duration(raw.VolumeDebounceMS) * time.Millisecond
	}
	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	}
	if v := strings.TrimSpace(raw.ListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	return cfg, nil
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

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
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
