package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultConfigFile is the optional JSON override checked at startup.
const DefaultConfigFile = "config/config.json"

// FileConfig is the shape of the optional JSON config file.
type FileConfig struct {
	BaseURL string `json:"base_url"`
}

// FileResult reports what the file load actually did, so the caller decides
// whether and when to log the fallback warning instead of relying on hidden
// process-wide state.
type FileResult struct {
	Config      FileConfig
	Path        string
	UsedDefault bool
}

// LoadFile reads the optional JSON config file. A missing file is not an
// error: the result carries the default base URL with UsedDefault set. A
// present but malformed file is an error.
func LoadFile(path string) (FileResult, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return FileResult{
			Config:      FileConfig{BaseURL: DefaultBaseURL},
			Path:        path,
			UsedDefault: true,
		}, nil
	}
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc FileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return FileResult{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if fc.BaseURL == "" {
		fc.BaseURL = DefaultBaseURL
	}

	return FileResult{Config: fc, Path: path}, nil
}

// ApplyFile overrides the CoinGecko base URL from the config file unless the
// environment set it explicitly. Precedence: default < file < environment.
func (c *Config) ApplyFile(fr FileResult) {
	if fr.UsedDefault {
		return
	}
	if os.Getenv("COINGECKO_BASE_URL") != "" {
		return
	}
	c.CoinGecko.BaseURL = fr.Config.BaseURL
}
