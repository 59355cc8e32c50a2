package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trumpswap.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.ListenAddr())
	assert.Equal(t, 6, cfg.Table.MaxSeats)
	assert.Equal(t, 1000, cfg.Table.StartChips)
}

func TestLoadConfigParsesHCL(t *testing.T) {
	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

table {
  max_seats    = 4
  start_chips  = 500
  bot_delay_ms = 100
}

bot "Maud" {
  count = 2
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 4, cfg.Table.MaxSeats)
	assert.Equal(t, 500, cfg.Table.StartChips)
	require.Len(t, cfg.Bots, 1)
	assert.Equal(t, "Maud", cfg.Bots[0].Name)
	assert.Equal(t, 2, cfg.Bots[0].Count)

	gameCfg := cfg.GameConfig()
	assert.Equal(t, 4, gameCfg.MaxSeats)
	assert.Equal(t, 500, gameCfg.StartChips)
}

func TestLoadConfigFillsPartialBlocks(t *testing.T) {
	path := writeConfig(t, `
server {
  port = 9000
}

table {}

bot "Solo" {}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 6, cfg.Table.MaxSeats)
	require.Len(t, cfg.Bots, 1)
	assert.Equal(t, 1, cfg.Bots[0].Count)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid port"},
		{"too few seats", func(c *Config) { c.Table.MaxSeats = 1 }, "max_seats"},
		{"too many seats", func(c *Config) { c.Table.MaxSeats = 9 }, "max_seats"},
		{"no chips", func(c *Config) { c.Table.StartChips = 0 }, "start_chips"},
		{"negative delay", func(c *Config) { c.Table.BotDelayMs = -1 }, "bot_delay_ms"},
		{"too many bots", func(c *Config) {
			c.Bots = []BotSeat{{Name: "a", Count: 7}}
		}, "bots configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}
