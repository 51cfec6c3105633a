package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Log struct {
		Level string `yaml:"level"`
		Env   string `yaml:"env"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Game struct {
		LeaderboardLimit int   `yaml:"leaderboard_limit"`
		Seed             int64 `yaml:"seed"`
	} `yaml:"game"`
	Bank struct {
		File string `yaml:"file"`
		TTL  string `yaml:"ttl"`
	} `yaml:"bank"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Spectator struct {
		Addr string `yaml:"addr"`
	} `yaml:"spectator"`
}

// Default is used when no config file exists.
func Default() Config {
	cfg := Config{}
	cfg.Log.Level = "warn"
	cfg.Log.Env = "development"
	cfg.Game.LeaderboardLimit = 3
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
