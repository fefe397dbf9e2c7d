/*
Package config reads the node configuration of splitd from splitd.toml in the
home directory.
*/
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/remitwise/splitledger/errors"
)

// FileName is the name of the configuration file inside the home directory.
const FileName = "splitd.toml"

// Store backends.
const (
	BackendIavl   = "iavl"
	BackendPebble = "pebble"
	BackendMemory = "memory"
)

// Config holds all splitd configuration.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// StoreConfig selects where the ledger state is kept.
type StoreConfig struct {
	// Backend is one of iavl, pebble or memory.
	Backend string `toml:"backend"`
	// Dir is the data directory, relative to the home directory unless
	// absolute.
	Dir string `toml:"dir"`
}

// ServerConfig holds the ABCI server settings.
type ServerConfig struct {
	Bind  string `toml:"bind"`
	Debug bool   `toml:"debug"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, error or none.
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendIavl,
			Dir:     "data",
		},
		Server: ServerConfig{
			Bind: "tcp://localhost:26658",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Path returns the configuration file path for the given home directory.
func Path(home string) string {
	return filepath.Join(home, FileName)
}

// Load reads the config file from home, returning defaults if it doesn't
// exist. Missing values keep their defaults.
func Load(home string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path(home))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(errors.ErrInput, "reading config: %s", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(errors.ErrInput, "parsing config: %s", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to home, creating the directory if needed.
func Save(home string, cfg Config) error {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return errors.Wrapf(errors.ErrInput, "creating home dir: %s", err)
	}
	f, err := os.OpenFile(Path(home), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "creating config file: %s", err)
	}
	return write(f, cfg)
}

// write encodes cfg and closes w. A failed close is reported, as the file
// may not be flushed.
func write(w io.WriteCloser, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		w.Close()
		return errors.Wrapf(errors.ErrInput, "writing config: %s", err)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(errors.ErrInput, "closing config file: %s", err)
	}
	return nil
}

// Validate checks that all enumerated values are known.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendIavl, BackendPebble, BackendMemory:
	default:
		return errors.Wrapf(errors.ErrInput, "unknown store backend %q", c.Store.Backend)
	}
	switch c.Log.Level {
	case "debug", "info", "error", "none":
	default:
		return errors.Wrapf(errors.ErrInput, "unknown log level %q", c.Log.Level)
	}
	return nil
}

// DataDir resolves the store directory against home.
func (c Config) DataDir(home string) string {
	if filepath.IsAbs(c.Store.Dir) {
		return c.Store.Dir
	}
	return filepath.Join(home, c.Store.Dir)
}
