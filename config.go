package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds server tuning loaded from a TOML file. Every field has a
// sane default so the server runs with no config at all.
type Config struct {
	Server ServerConfig `toml:"server"`
	World  WorldConfig  `toml:"world"`
	Match  MatchConfig  `toml:"match"`
}

type ServerConfig struct {
	Name          string `toml:"name"`
	AdminPassword string `toml:"admin_password"` // empty disables the admin surface
}

type WorldConfig struct {
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	ObstacleCount int     `toml:"obstacle_count"`
}

type MatchConfig struct {
	DurationSec int `toml:"duration_sec"`
	MaxKills    int `toml:"max_kills"`
}

// DurationMs returns the configured match length in milliseconds
func (m MatchConfig) DurationMs() float64 {
	return float64(m.DurationSec) * 1000
}

// DefaultConfig returns the stock arena tuning
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Name: "Neon Arena"},
		World: WorldConfig{
			Width:         2000,
			Height:        2000,
			ObstacleCount: 15,
		},
		Match: MatchConfig{
			DurationSec: 600,
			MaxKills:    MaxKills,
		},
	}
}

// LoadConfig reads a TOML config over the defaults. A missing path is not
// an error; a present but unreadable or malformed file is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
