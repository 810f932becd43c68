package engineconfig

import (
	"os"

	"github.com/pelletier/go-toml"
)

// Load reads a TOML config file at path, starting from DefaultConfig
// and overriding only the fields present in the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
