package icon

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
endpoint: https://lisbon.net.solidwallet.io
nid: 0x2
step_limit: 200000
timeout: 15s
debug: true
`))
	require.NoError(t, err)

	assert.Equal(t, DEFAULT_LISBON_ENDPOINT, cfg.Endpoint)
	assert.Equal(t, LISBON_NID, cfg.NID)
	assert.Equal(t, uint64(200000), cfg.StepLimit)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.True(t, cfg.Debug)
	// Not in the file, so the default is kept.
	assert.Equal(t, DEFAULT_API_VERSION, cfg.APIVersion)
}

func TestConfigValidate(t *testing.T) {
	var invalidTests = []struct {
		name   string
		modify func(*Config)
	}{
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }},
		{"zero api version", func(c *Config) { c.APIVersion = 0 }},
		{"zero nid", func(c *Config) { c.NID = 0 }},
		{"zero step limit", func(c *Config) { c.StepLimit = 0 }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
	}

	require.NoError(t, DefaultConfig().Validate())

	for _, tc := range invalidTests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	_, err := ParseConfig([]byte("nid: 0"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ParseConfig([]byte("endpoint: [unterminated"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endpoint = DEFAULT_LISBON_ENDPOINT
	cfg.NID = LISBON_NID
	cfg.Timeout = 3 * time.Second

	marshalled, err := cfg.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, marshalled, 0o600))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewClientFromConfig(t *testing.T) {
	node := newTestNode(t)
	node.result(METHOD_GET_BALANCE, "0x64")

	cfg := DefaultConfig()
	cfg.Endpoint = node.URL
	cfg.NID = BERLIN_NID

	client, err := NewClientFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(BERLIN_NID), client.nid.Int64())

	balance, err := client.GetBalance(context.Background(), testToAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance.Int64())

	cfg.Endpoint = "ftp://example.com"
	_, err = NewClientFromConfig(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	// Options given by the caller override the config.
	cfg.Endpoint = node.URL
	client, err = NewClientFromConfig(cfg, WithNID(MAINNET_NID))
	require.NoError(t, err)
	assert.Equal(t, int64(MAINNET_NID), client.nid.Int64())
}

func TestNewLoggerTo(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLoggerTo(&buf, false, true)
	logger.Debug("hidden")
	logger.Info("shown")
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"shown"`)

	buf.Reset()
	logger = NewLoggerTo(&buf, true, false)
	logger.Debug("visible")
	_ = logger.Sync()
	assert.True(t, strings.Contains(buf.String(), "visible"))
}
