package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	var fromYAML TunnelConfig
	if err := yaml.Unmarshal(defaultTunnelYAML, &fromYAML); err != nil {
		t.Fatalf("embedded tunnel.yaml does not parse: %v", err)
	}
	if fromYAML != DefaultTunnelConfig() {
		t.Errorf("embedded YAML and DefaultTunnelConfig differ:\n%+v\n%+v", fromYAML, DefaultTunnelConfig())
	}
}

func TestLoadTunnelCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunnel.yaml")
	data := []byte("tunnel:\n  rotation_speed: 120\nphysics:\n  gravity: -20\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTunnel(path)
	if err != nil {
		t.Fatalf("LoadTunnel() failed: %v", err)
	}
	if cfg.Tunnel.RotationSpeed != 120 {
		t.Errorf("rotation_speed = %v, want 120", cfg.Tunnel.RotationSpeed)
	}
	if cfg.Physics.Gravity != -20 {
		t.Errorf("gravity = %v, want -20", cfg.Physics.Gravity)
	}
	// Unset fields keep defaults
	if cfg.Tunnel.Radius != 12 {
		t.Errorf("radius = %v, want default 12", cfg.Tunnel.Radius)
	}
	if cfg.Physics.JumpImpulse != 15 {
		t.Errorf("jump_impulse = %v, want default 15", cfg.Physics.JumpImpulse)
	}
}

func TestLoadTunnelCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTunnel(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("tunnel: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTunnel(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := []struct {
		name string
		yaml string
	}{
		{"inverted strip range", "generator:\n  min_strip: 8\n  max_strip: 3\n"},
		{"negative spawn distance", "generator:\n  initial_spawn_distance: -1000\n"},
		{"zero spawn distance", "generator:\n  initial_spawn_distance: 0\n"},
		{"negative block speed", "generator:\n  initial_block_speed: -1\n"},
		{"negative spawn distance rate", "difficulty:\n  spawn_distance_rate: -1\n"},
		{"negative block speed rate", "difficulty:\n  block_speed_rate: -0.5\n"},
		{"negative variance rate", "difficulty:\n  variance_rate: -5\n"},
		{"negative spawn distance cap", "difficulty:\n  max_spawn_distance: -30\n"},
		{"empty collision band", "collision:\n  band_low: 3\n  band_high: 2\n"},
	}
	for _, tt := range invalid {
		path := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadTunnel(path); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := DefaultTunnelConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want DifficultyPreset
	}{
		{"", true, ""},
		{"easy", true, DifficultyEasy},
		{"normal", true, DifficultyNormal},
		{"hard", true, DifficultyHard},
		{"fixed", true, DifficultyFixed},
		{"nightmare", false, ""},
	}
	for _, tt := range tests {
		got, ok := ParsePreset(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParsePreset(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestApplyTunnelPreset(t *testing.T) {
	cfg := DefaultTunnelConfig()
	ApplyTunnelPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: enabled=%v level=%v", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
	}

	ApplyTunnelPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	before := cfg
	ApplyTunnelPreset(&cfg, "")
	if cfg != before {
		t.Error("empty preset should leave config unchanged")
	}
}

func TestDifficultyProgress(t *testing.T) {
	d := NewDifficultyManager(DefaultTunnelConfig().Difficulty)
	p := Params{BlockSpeed: 5, SpawnDistance: 5, SpawnAngleVariance: 60}

	d.Progress(&p, 1)
	if !approx(p.BlockSpeed, 5.1) {
		t.Errorf("BlockSpeed = %v, want 5.1", p.BlockSpeed)
	}
	if !approx(p.SpawnDistance, 6) {
		t.Errorf("SpawnDistance = %v, want 6", p.SpawnDistance)
	}
	if !approx(p.SpawnAngleVariance, 65) {
		t.Errorf("SpawnAngleVariance = %v, want 65", p.SpawnAngleVariance)
	}

	// Caps hold after a long session
	d.Progress(&p, 1000)
	if p.SpawnDistance != 30 {
		t.Errorf("SpawnDistance = %v, want cap 30", p.SpawnDistance)
	}
	if p.SpawnAngleVariance != 90 {
		t.Errorf("SpawnAngleVariance = %v, want cap 90", p.SpawnAngleVariance)
	}
	if p.BlockSpeed != 40 {
		t.Errorf("BlockSpeed = %v, want cap 40", p.BlockSpeed)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DefaultTunnelConfig().Difficulty)
	d.SetEnabled(false)
	p := Params{BlockSpeed: 5, SpawnDistance: 5, SpawnAngleVariance: 60}
	d.Progress(&p, 10)
	d.WarmStart(&p)
	if p != (Params{BlockSpeed: 5, SpawnDistance: 5, SpawnAngleVariance: 60}) {
		t.Errorf("disabled manager changed params: %+v", p)
	}
}

func TestDifficultyWarmStart(t *testing.T) {
	cfg := DefaultTunnelConfig().Difficulty
	cfg.InitialLevel = 0.5 // 30 seconds of warmup
	d := NewDifficultyManager(cfg)
	p := Params{BlockSpeed: 5, SpawnDistance: 5, SpawnAngleVariance: 60}
	d.WarmStart(&p)
	if !approx(p.BlockSpeed, 8) {
		t.Errorf("BlockSpeed = %v, want 8", p.BlockSpeed)
	}
	if p.SpawnDistance != 30 {
		t.Errorf("SpawnDistance = %v, want 30", p.SpawnDistance)
	}

	cfg.InitialLevel = 3 // clamped to 1.0
	if d := NewDifficultyManager(cfg); d.initialLevel != 1.0 {
		t.Errorf("initialLevel = %v, want 1.0", d.initialLevel)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
