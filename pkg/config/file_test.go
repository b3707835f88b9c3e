package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingFallsBackToDefault(t *testing.T) {
	fr, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.True(t, fr.UsedDefault)
	assert.Equal(t, DefaultBaseURL, fr.Config.BaseURL)
}

func TestLoadFileReadsBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"base_url": "https://example.test/api/v3"}`), 0o644))

	fr, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, fr.UsedDefault)
	assert.Equal(t, "https://example.test/api/v3", fr.Config.BaseURL)
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestApplyFilePrecedence(t *testing.T) {
	cfg := &Config{CoinGecko: CoinGeckoConfig{BaseURL: DefaultBaseURL}}

	// File overrides the default.
	cfg.ApplyFile(FileResult{Config: FileConfig{BaseURL: "https://file.test"}})
	assert.Equal(t, "https://file.test", cfg.CoinGecko.BaseURL)

	// Environment beats the file.
	t.Setenv("COINGECKO_BASE_URL", "https://env.test")
	cfg.CoinGecko.BaseURL = "https://env.test"
	cfg.ApplyFile(FileResult{Config: FileConfig{BaseURL: "https://file.test"}})
	assert.Equal(t, "https://env.test", cfg.CoinGecko.BaseURL)

	// A default-only result changes nothing.
	cfg.ApplyFile(FileResult{UsedDefault: true, Config: FileConfig{BaseURL: DefaultBaseURL}})
	assert.Equal(t, "https://env.test", cfg.CoinGecko.BaseURL)
}
