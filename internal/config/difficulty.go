package config

import "math"

// Params are the generator parameters the difficulty system moves.
type Params struct {
	BlockSpeed         float64
	SpawnDistance      float64
	SpawnAngleVariance float64
}

// DifficultyManager grows generator parameters with elapsed play time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetEnabled switches progression on or off for the rest of the session.
// Practice mode turns it off regardless of the loaded config.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Progress advances p by elapsed seconds of play. Each parameter grows at
// its rate and stops at its cap; a parameter already above its cap is left
// alone. Does nothing when progression is disabled.
func (d *DifficultyManager) Progress(p *Params, elapsed float64) {
	if !d.cfg.Enabled || elapsed <= 0 {
		return
	}
	p.BlockSpeed = grow(p.BlockSpeed, d.cfg.BlockSpeedRate*elapsed, d.cfg.MaxBlockSpeed)
	p.SpawnDistance = grow(p.SpawnDistance, d.cfg.SpawnDistanceRate*elapsed, d.cfg.MaxSpawnDistance)
	p.SpawnAngleVariance = grow(p.SpawnAngleVariance, d.cfg.VarianceRate*elapsed, d.cfg.MaxVariance)
}

// WarmStart pre-advances p by initialLevel × warmup_seconds, so harder
// presets start the run further along the progression.
func (d *DifficultyManager) WarmStart(p *Params) {
	d.Progress(p, d.initialLevel*d.cfg.WarmupSeconds)
}

// grow adds delta to v without crossing limit. A non-positive limit means
// the parameter is uncapped.
func grow(v, delta, limit float64) float64 {
	if limit <= 0 {
		return v + delta
	}
	if v >= limit {
		return v
	}
	return math.Min(v+delta, limit)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
