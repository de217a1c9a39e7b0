// Package config loads the editor's TOML configuration file and
// supplies defaults when no file is present.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mizuiro-games/gamedata/pkg/errors"
)

// Config holds everything the server and CLI commands need to find and
// serve the data directory.
type Config struct {
	// DataDir is the directory holding the collection JSON files.
	DataDir string `toml:"data_dir"`

	// Listen is the host:port the HTTP server binds to.
	Listen string `toml:"listen"`

	// CORSOrigins lists the origins allowed to call the API from a
	// browser. "*" allows any origin.
	CORSOrigins []string `toml:"cors_origins"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DataDir:     "data",
		Listen:      "127.0.0.1:8000",
		CORSOrigins: []string{"*"},
	}
}

// Load reads the TOML file at path, layering it over [Default]. A
// missing file is not an error: the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeStorage, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	if err := errors.ValidateDataDir(cfg.DataDir); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
