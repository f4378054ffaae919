// Package config resolves Zepp API credentials. Precedence follows 12-factor
// convention: environment variables first, then the config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Environment variable names. The HUAMI_* aliases match other community
// tooling for the same API.
const (
	EnvToken      = "ZEPP_TOKEN"
	EnvTokenAlias = "HUAMI_APP_TOKEN"
	EnvUserID     = "ZEPP_USER_ID"
	EnvUserAlias  = "HUAMI_USER_ID"
	EnvBaseURL    = "ZEPP_BASE_URL"
)

// Source identifies where a credential came from.
type Source string

const (
	SourceEnv  Source = "environment"
	SourceFile Source = "file"
	SourceNone Source = "none"
)

// Config holds the resolved credentials and endpoint.
type Config struct {
	Token   string `toml:"token"`
	UserID  string `toml:"user_id"`
	BaseURL string `toml:"base_url,omitempty"`

	TokenSource Source `toml:"-"`
}

// DefaultPath returns the default config file location, ~/.zeppex/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".zeppex", "config.toml"), nil
}

// Load resolves credentials from the environment, then fills anything still
// missing from the config file at path (default location when empty). A
// missing file is not an error; the caller decides whether empty credentials
// are fatal.
func Load(path string) (Config, error) {
	cfg := Config{TokenSource: SourceNone}

	if v := firstEnv(EnvToken, EnvTokenAlias); v != "" {
		cfg.Token = v
		cfg.TokenSource = SourceEnv
	}
	if v := firstEnv(EnvUserID, EnvUserAlias); v != "" {
		cfg.UserID = v
	}
	cfg.BaseURL = os.Getenv(EnvBaseURL)

	if cfg.Token != "" && cfg.UserID != "" && cfg.BaseURL != "" {
		return cfg, nil
	}

	resolved := path
	if resolved == "" {
		var err error
		resolved, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Token == "" && file.Token != "" {
		cfg.Token = file.Token
		cfg.TokenSource = SourceFile
	}
	if cfg.UserID == "" {
		cfg.UserID = file.UserID
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = file.BaseURL
	}

	return cfg, nil
}

// Save writes the credentials to the config file at path (default location
// when empty), creating the directory as needed. The file is written with
// owner-only permissions since it holds a live token.
func Save(cfg Config, path string) (string, error) {
	resolved := path
	if resolved == "" {
		var err error
		resolved, err = DefaultPath()
		if err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0700); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0600); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return resolved, nil
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
