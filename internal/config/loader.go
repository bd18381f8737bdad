package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTunnel loads the tunnel configuration.
// Search order: customPath -> ~/.cattunnel/configs/tunnel.yaml -> ./configs/tunnel.yaml -> embedded default
func LoadTunnel(customPath string) (TunnelConfig, error) {
	// Start from defaults so partial files only override what they set
	cfg := DefaultTunnelConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, validate(cfg, customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tunnel.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := cfg
			if err := yaml.Unmarshal(data, &candidate); err == nil && validate(candidate, userCfgPath) == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/tunnel.yaml"); err == nil {
		candidate := cfg
		if err := yaml.Unmarshal(data, &candidate); err == nil && validate(candidate, "configs/tunnel.yaml") == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTunnelYAML, &cfg); err != nil {
		return DefaultTunnelConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cattunnel", "configs", filename)
}

// Validate rejects configurations the generator cannot run with. A strip
// must always land beyond the current horizon, otherwise filling the track
// never terminates, so spawn distance and the growth rates must not shrink it.
func (c TunnelConfig) Validate() error {
	g, d := c.Generator, c.Difficulty
	switch {
	case c.Tunnel.Radius <= 0:
		return errors.New("tunnel.radius must be positive")
	case g.TileSpacing <= 0:
		return errors.New("generator.tile_spacing must be positive")
	case g.MinStrip < 1 || g.MaxStrip < g.MinStrip:
		return fmt.Errorf("generator strip size range [%d, %d] is invalid", g.MinStrip, g.MaxStrip)
	case g.MaxDepth <= 0:
		return errors.New("generator.max_depth must be positive")
	case g.RecycleDepth <= 0:
		return errors.New("generator.recycle_depth must be positive")
	case g.InitialSpawnDistance <= 0:
		return errors.New("generator.initial_spawn_distance must be positive")
	case g.InitialBlockSpeed < 0:
		return errors.New("generator.initial_block_speed must not be negative")
	case d.BlockSpeedRate < 0, d.SpawnDistanceRate < 0, d.VarianceRate < 0:
		return errors.New("difficulty rates must not be negative")
	case d.MaxBlockSpeed < 0, d.MaxSpawnDistance < 0, d.MaxVariance < 0:
		return errors.New("difficulty caps must not be negative")
	case c.Collision.BandHigh < c.Collision.BandLow:
		return errors.New("collision band is empty")
	}
	return nil
}

func validate(cfg TunnelConfig, source string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", source, err)
	}
	return nil
}

// ApplyTunnelPreset modifies the config based on a difficulty preset.
func ApplyTunnelPreset(cfg *TunnelConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
