package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/trumpswap/internal/game"
)

// Config is the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Table  TableSettings  `hcl:"table,block"`
	Bots   []BotSeat      `hcl:"bot,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableSettings defines the table the server hosts
type TableSettings struct {
	MaxSeats   int `hcl:"max_seats,optional"`
	StartChips int `hcl:"start_chips,optional"`
	BotDelayMs int `hcl:"bot_delay_ms,optional"`
}

// BotSeat preseeds a bot at the table on startup
type BotSeat struct {
	Name  string `hcl:"name,label"`
	Count int    `hcl:"count,optional"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Table: TableSettings{
			MaxSeats:   game.DefaultMaxSeats,
			StartChips: game.DefaultStartChips,
			BotDelayMs: 800,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// fill gaps with the defaults
	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Table.MaxSeats == 0 {
		config.Table.MaxSeats = defaults.Table.MaxSeats
	}
	if config.Table.StartChips == 0 {
		config.Table.StartChips = defaults.Table.StartChips
	}
	if config.Table.BotDelayMs == 0 {
		config.Table.BotDelayMs = defaults.Table.BotDelayMs
	}
	for i := range config.Bots {
		if config.Bots[i].Count == 0 {
			config.Bots[i].Count = 1
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks configuration for errors
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Table.MaxSeats < 2 || c.Table.MaxSeats > game.DefaultMaxSeats {
		return fmt.Errorf("max_seats must be between 2 and %d, got %d", game.DefaultMaxSeats, c.Table.MaxSeats)
	}
	if c.Table.StartChips < 1 {
		return fmt.Errorf("start_chips must be positive, got %d", c.Table.StartChips)
	}
	if c.Table.BotDelayMs < 0 {
		return fmt.Errorf("bot_delay_ms must not be negative, got %d", c.Table.BotDelayMs)
	}

	totalBots := 0
	for _, b := range c.Bots {
		if b.Name == "" {
			return fmt.Errorf("bot blocks require a name label")
		}
		totalBots += b.Count
	}
	if totalBots > c.Table.MaxSeats {
		return fmt.Errorf("%d bots configured for %d seats", totalBots, c.Table.MaxSeats)
	}
	return nil
}

// ListenAddr returns the address:port string to bind
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GameConfig maps the table settings onto the engine's configuration
func (c *Config) GameConfig() game.Config {
	return game.Config{
		MaxSeats:   c.Table.MaxSeats,
		StartChips: c.Table.StartChips,
	}
}
