// Package config provides YAML-based tuning for the tunnel game and the
// difficulty progression applied over a session.
package config

// TunnelConfig contains all tuning for the cat tunnel game.
type TunnelConfig struct {
	Tunnel     TunnelGeometry   `yaml:"tunnel"`
	Physics    TunnelPhysics    `yaml:"physics"`
	Collision  TunnelCollision  `yaml:"collision"`
	Generator  TunnelGenerator  `yaml:"generator"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TunnelGeometry defines the tunnel's shape and how fast the player turns it.
type TunnelGeometry struct {
	Radius        float64 `yaml:"radius"`
	RotationSpeed float64 `yaml:"rotation_speed"` // degrees per second
}

// TunnelPhysics defines the cat's vertical motion.
type TunnelPhysics struct {
	Gravity     float64 `yaml:"gravity"`      // units/s², negative pulls down
	JumpImpulse float64 `yaml:"jump_impulse"` // units/s
	DeathHeight float64 `yaml:"death_height"` // falling below ends the run
	StartHeight float64 `yaml:"start_height"`
}

// TunnelCollision defines when a tile supports the cat.
type TunnelCollision struct {
	SupportDepth float64 `yaml:"support_depth"` // max |depth| of a supporting tile
	SupportAngle float64 `yaml:"support_angle"` // max |angle| in degrees after rotation
	BandLow      float64 `yaml:"band_low"`      // cat height band just above the tile
	BandHigh     float64 `yaml:"band_high"`
}

// TunnelGenerator defines procedural track generation.
type TunnelGenerator struct {
	MaxDepth             float64 `yaml:"max_depth"`     // horizon kept filled ahead of the cat
	RecycleDepth         float64 `yaml:"recycle_depth"` // tiles past this are retired
	TileSpacing          float64 `yaml:"tile_spacing"`
	MinStrip             int     `yaml:"min_strip"`
	MaxStrip             int     `yaml:"max_strip"`
	InnerVariance        float64 `yaml:"inner_variance"`   // angle jitter inside a strip
	OpeningVariance      float64 `yaml:"opening_variance"` // variance of the very first strip
	BaseVariance         float64 `yaml:"base_variance"`    // variance once the opening strip is down
	SkewVariance         float64 `yaml:"skew_variance"`
	InitialBlockSpeed    float64 `yaml:"initial_block_speed"`
	InitialSpawnDistance float64 `yaml:"initial_spawn_distance"`
}

// DifficultyConfig defines the difficulty progression system.
// Progression is time based: each parameter grows at a fixed rate per second
// of play until it reaches its cap.
type DifficultyConfig struct {
	Enabled           bool    `yaml:"enabled"`
	InitialLevel      float64 `yaml:"initial_level"`  // 0.0 = easy, 1.0 = hard
	WarmupSeconds     float64 `yaml:"warmup_seconds"` // progression applied at level 1.0 before play starts
	BlockSpeedRate    float64 `yaml:"block_speed_rate"`
	MaxBlockSpeed     float64 `yaml:"max_block_speed"`
	SpawnDistanceRate float64 `yaml:"spawn_distance_rate"`
	MaxSpawnDistance  float64 `yaml:"max_spawn_distance"`
	VarianceRate      float64 `yaml:"variance_rate"`
	MaxVariance       float64 `yaml:"max_variance"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means "use the
// config as is".
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
