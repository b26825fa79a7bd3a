package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Success(t *testing.T) {
	path := writeConfig(t, `{
		"api_url": "https://coach.example.com",
		"http_timeout_sec": 30,
		"advance_delay_sec": 1,
		"use_browser": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://coach.example.com", cfg.APIURL)
	assert.Equal(t, 30, cfg.HTTPTimeoutSec)
	assert.True(t, cfg.UseBrowser)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := writeConfig(t, `{broken`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_BadURL(t *testing.T) {
	cfg := Config{APIURL: "not a url"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_NegativeDurations(t *testing.T) {
	assert.Error(t, (&Config{HTTPTimeoutSec: -1}).Validate())
	assert.Error(t, (&Config{AdvanceDelaySec: -1}).Validate())
}

func TestMergeWithDefaults_FillsDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvStatePath, "")

	cfg := (&Config{}).MergeWithDefaults()
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.NotEmpty(t, cfg.StatePath)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout())
	assert.Equal(t, DefaultAdvanceDelay, cfg.AdvanceDelay())
}

func TestMergeWithDefaults_EnvFallback(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://env.example.com")
	t.Setenv(EnvStatePath, "/tmp/custom-state.db")

	cfg := (&Config{}).MergeWithDefaults()
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
	assert.Equal(t, "/tmp/custom-state.db", cfg.StatePath)
}

func TestMergeWithDefaults_ExplicitValuesWin(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://env.example.com")

	cfg := (&Config{APIURL: "https://flag.example.com", AdvanceDelaySec: 5}).MergeWithDefaults()
	assert.Equal(t, "https://flag.example.com", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.AdvanceDelay())
}
