package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// DatabasePath is the sqlite file for chat history; empty disables
	// persistence entirely. World state is never persisted.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// JWTSecret signs guest display-name tokens. When empty a random
	// per-process secret is generated at startup.
	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret"`

	// ClientBuffer bounds each session's outbound event queue; overflowing
	// frames are dropped rather than stalling the world loop.
	ClientBuffer int `mapstructure:"client_buffer" yaml:"client_buffer"`

	// HistoryLimit is how many chat lines are replayed to a joining session.
	HistoryLimit int `mapstructure:"history_limit" yaml:"history_limit"`

	World WorldConfig `mapstructure:"world" yaml:"world"`
}

// Vec3 is a 3-component vector in configuration.
type Vec3 struct {
	X float64 `mapstructure:"x" yaml:"x"`
	Y float64 `mapstructure:"y" yaml:"y"`
	Z float64 `mapstructure:"z" yaml:"z"`
}

// WorldObject is one seeded object. Seeded ids are fixed (the reference
// client expects a literal "ground") and exempt from id generation.
type WorldObject struct {
	ID       string `mapstructure:"id" yaml:"id"`
	Type     string `mapstructure:"type" yaml:"type"`
	Position Vec3   `mapstructure:"position" yaml:"position"`
	Size     Vec3   `mapstructure:"size" yaml:"size"`
	Color    uint32 `mapstructure:"color" yaml:"color"`
}

// WorldConfig is the static world bootstrap: spawn point plus the objects
// that exist before any client connects.
type WorldConfig struct {
	SpawnPoint Vec3          `mapstructure:"spawn_point" yaml:"spawn_point"`
	Objects    []WorldObject `mapstructure:"objects" yaml:"objects"`
}

// Default returns configuration with reasonable starter defaults. The world
// seed matches the reference world: a ground plane and one demo cube.
func Default() Config {
	return Config{
		Addr:              ":3000",
		LogLevel:          "info",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		DatabasePath:      "worldsync.db",
		ClientBuffer:      32,
		HistoryLimit:      50,
		World: WorldConfig{
			SpawnPoint: Vec3{X: 0, Y: 2, Z: 0},
			Objects: []WorldObject{
				{
					ID:       "ground",
					Type:     "cube",
					Position: Vec3{X: 0, Y: 0, Z: 0},
					Size:     Vec3{X: 10, Y: 1, Z: 10},
					Color:    0x00ff00,
				},
				{
					ID:       "cube1",
					Type:     "cube",
					Position: Vec3{X: 2, Y: 1.5, Z: 0},
					Size:     Vec3{X: 1, Y: 1, Z: 1},
					Color:    0xff0000,
				},
			},
		},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.DatabasePath != "" {
		c.DatabasePath = other.DatabasePath
	}
}
