package config

import (
	_ "embed"
)

//go:embed defaults/tunnel.yaml
var defaultTunnelYAML []byte

// DefaultTunnelConfig returns the built-in tunnel configuration. It mirrors
// defaults/tunnel.yaml and is used when the embedded file cannot be parsed.
func DefaultTunnelConfig() TunnelConfig {
	return TunnelConfig{
		Tunnel: TunnelGeometry{
			Radius:        12,
			RotationSpeed: 90,
		},
		Physics: TunnelPhysics{
			Gravity:     -30,
			JumpImpulse: 15,
			DeathHeight: -15,
			StartHeight: 3,
		},
		Collision: TunnelCollision{
			SupportDepth: 5,
			SupportAngle: 15,
			BandLow:      2.0,
			BandHigh:     2.85,
		},
		Generator: TunnelGenerator{
			MaxDepth:             150,
			RecycleDepth:         20,
			TileSpacing:          5,
			MinStrip:             3,
			MaxStrip:             7,
			InnerVariance:        5,
			OpeningVariance:      0,
			BaseVariance:         60,
			SkewVariance:         10,
			InitialBlockSpeed:    5,
			InitialSpawnDistance: 5,
		},
		Difficulty: DifficultyConfig{
			Enabled:           true,
			InitialLevel:      0.0,
			WarmupSeconds:     60,
			BlockSpeedRate:    0.1,
			MaxBlockSpeed:     40,
			SpawnDistanceRate: 1,
			MaxSpawnDistance:  30,
			VarianceRate:      5,
			MaxVariance:       90,
		},
	}
}
