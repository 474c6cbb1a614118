package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	if cfg.Addr != ":3000" {
		t.Fatalf("unexpected default addr: %q", cfg.Addr)
	}
	if cfg.ClientBuffer != 32 || cfg.HistoryLimit != 50 {
		t.Fatalf("unexpected buffer defaults: %+v", cfg)
	}
	if len(cfg.World.Objects) != 2 || cfg.World.Objects[0].ID != "ground" {
		t.Fatalf("world seed missing ground: %+v", cfg.World.Objects)
	}
	if cfg.World.SpawnPoint.Y != 2 {
		t.Fatalf("unexpected spawn point: %+v", cfg.World.SpawnPoint)
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("WORLDSYNC_ADDR", ":4000")

	cfg, _, err := Load(nil, filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":4000" {
		t.Fatalf("env override ignored: %q", cfg.Addr)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
addr: ":5000"
read_header_timeout: 2s
world:
  spawn_point:
    x: 1
    y: 3
    z: 0
  objects:
    - id: ground
      type: plane
      position: {x: 0, y: 0, z: 0}
      size: {x: 20, y: 1, z: 20}
      color: 65280
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Fatalf("file addr ignored: %q", cfg.Addr)
	}
	if cfg.ReadHeaderTimeout != 2*time.Second {
		t.Fatalf("duration not parsed: %v", cfg.ReadHeaderTimeout)
	}
	if cfg.World.SpawnPoint.Y != 3 {
		t.Fatalf("spawn point not loaded: %+v", cfg.World.SpawnPoint)
	}
	if len(cfg.World.Objects) != 1 || cfg.World.Objects[0].Type != "plane" {
		t.Fatalf("world objects not loaded: %+v", cfg.World.Objects)
	}
	if cfg.World.Objects[0].Color != 0x00ff00 {
		t.Fatalf("color not loaded: %#x", cfg.World.Objects[0].Color)
	}
	// Untouched keys keep their defaults.
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("default shutdown timeout lost: %v", cfg.ShutdownTimeout)
	}
}

func TestUpdateFrom(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":9999", LogLevel: "debug"})

	if cfg.Addr != ":9999" || cfg.LogLevel != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.DatabasePath != "worldsync.db" {
		t.Fatalf("zero-value override clobbered default: %q", cfg.DatabasePath)
	}
}
