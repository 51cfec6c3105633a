package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.LeaderboardLimit != 3 || cfg.Log.Level != "warn" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
log:
  level: debug
game:
  leaderboard_limit: 5
  seed: 99
bank:
  ttl: 30s
redis:
  addr: localhost:6379
spectator:
  addr: ":8081"
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Env != "development" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Game.LeaderboardLimit != 5 || cfg.Game.Seed != 99 {
		t.Fatalf("unexpected game config %+v", cfg.Game)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Spectator.Addr != ":8081" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if got := TTLDuration(cfg.Bank.TTL, time.Minute); got != 30*time.Second {
		t.Fatalf("expected 30s, got %s", got)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for empty, got %s", got)
	}
	if got := TTLDuration("soon", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for garbage, got %s", got)
	}
}
