package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the optional ~/.atp.toml file.
type Config struct {
	Log   LogConfig   `toml:"log"`
	Store StoreConfig `toml:"store"`
}

type LogConfig struct {
	// Verbosity maps onto commonlog verbosity levels; 0 is errors and
	// warnings only.
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

type StoreConfig struct {
	// Path overrides the default ~/.atp/pipelines.db location.
	Path string `toml:"path"`
}

// LoadConfig reads path, or ~/.atp.toml when path is empty. A missing file
// yields the zero config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".atp.toml")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
