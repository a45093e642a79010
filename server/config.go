package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ajpkim/interactive-boids/flock"
)

// Fixed server settings
const (
	WebSocketPath = "/ws"

	// StatsEvery is how often (in ticks) the game loop logs a stats line.
	StatsEvery = 600

	// Environment overrides, applied after the config file
	EnvStaticDir = "BOIDS_STATIC_DIR"
	EnvAddr      = "BOIDS_ADDR"

	// BoidCeiling bounds max_boids. The distance index holds n² entries, so
	// 5000 boids already need 200 MB per tick.
	BoidCeiling = 5000
)

// Config holds the server settings and the flock parameters the simulation
// starts with. Viewers may change the flock parameters at runtime; the rest
// is fixed for the life of the process.
type Config struct {
	Addr          string `toml:"addr"`
	StaticDir     string `toml:"static_dir"`
	TickRate      int    `toml:"tick_rate"` // ticks per second
	MaxViewers    int    `toml:"max_viewers"`
	IPCooldownSec int    `toml:"ip_cooldown_sec"`
	TrustProxy    bool   `toml:"trust_proxy"` // take the client IP from X-Forwarded-For
	Seed          int64  `toml:"seed"`        // 0 seeds from the clock

	// Population caps for viewer param updates and the initial flock
	MaxBoids     int `toml:"max_boids"`
	MaxPredators int `toml:"max_predators"`

	Flock flock.Params `toml:"flock"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		StaticDir:     "client",
		TickRate:      60,
		MaxViewers:    50,
		IPCooldownSec: 2,
		MaxBoids:      1000,
		MaxPredators:  10,
		Flock:         flock.DefaultParams(),
	}
}

// LoadConfig decodes the TOML file at path over the defaults and applies the
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if path != "" {
		md, err := toml.DecodeFile(path, &conf)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
		}
	}
	conf.applyEnv()
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvStaticDir); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Addr = v
	}
}

// Validate checks the server settings and the initial flock parameters.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate = %d must be positive", c.TickRate))
	}
	if c.MaxViewers <= 0 {
		errs = append(errs, fmt.Errorf("max_viewers = %d must be positive", c.MaxViewers))
	}
	if c.IPCooldownSec < 0 {
		errs = append(errs, fmt.Errorf("ip_cooldown_sec = %d must not be negative", c.IPCooldownSec))
	}
	if c.MaxBoids < 1 || c.MaxBoids > BoidCeiling {
		errs = append(errs, fmt.Errorf("max_boids = %d must be within [1, %d]", c.MaxBoids, BoidCeiling))
	}
	if c.MaxPredators < 0 {
		errs = append(errs, fmt.Errorf("max_predators = %d must not be negative", c.MaxPredators))
	}
	if err := c.Limits().check(c.Flock); err != nil {
		errs = append(errs, err)
	}
	if c.Flock.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers = %d must be at least 1", c.Flock.Workers))
	}
	if err := c.Flock.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}

// Limits returns the population caps enforced on the flock parameters.
func (c Config) Limits() Limits {
	return Limits{MaxBoids: c.MaxBoids, MaxPredators: c.MaxPredators}
}
