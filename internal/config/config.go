// Package config loads settings from embedded defaults, an optional config.yaml in the
// store dir and USERDIR_* environment variables, in that order of precedence (last wins).
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"userdir-cli/internal/store"
)

const EnvPrefix = "USERDIR"

//go:embed config.yaml
var defaults []byte

type Config struct {
	API struct {
		URL string
	}
	Storage struct {
		Backend string
		Dir     string
	}
	Log struct {
		Level string
		File  string
	}
	Locale struct {
		Default string
	}
	Directory struct {
		PageSize int
	}
}

// DefaultDir returns ~/.userdir, or $USERDIR_DIR when set.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".userdir"), nil
}

// Load builds the configuration. dir may be empty, in which case storage.dir (or DefaultDir)
// is used to look for an override file.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, fmt.Errorf("read default config: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir == "" {
		dir = v.GetString("storage.dir")
	}
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return Config{}, err
		}
		dir = d
	}
	override := filepath.Join(dir, "config.yaml")
	if f, err := os.Open(override); err == nil {
		err = v.MergeConfig(f)
		_ = f.Close()
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", override, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = dir
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendSQLite, store.BackendFile, store.BackendMemory:
	default:
		return fmt.Errorf("invalid storage.backend %q (want sqlite|file|memory)", c.Storage.Backend)
	}
	if strings.TrimSpace(c.API.URL) == "" {
		return errors.New("api.url is required")
	}
	if c.Directory.PageSize < 0 {
		return fmt.Errorf("invalid directory.pageSize %d", c.Directory.PageSize)
	}
	return nil
}
