package tunnel

// Snapshot captures the observable game state for determinism testing and
// the run history.
type Snapshot struct {
	Tick               uint64
	Score              float64
	Rotation           float64
	AvatarZ            float64
	AvatarVelocity     float64
	Grounded           bool
	GameOver           bool
	Paused             bool
	AliveBlocks        int
	PoolSize           int
	BlockSpeed         float64
	SpawnDistance      float64
	SpawnAngle         float64
	SpawnAngleVariance float64
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	t := g.gen.Tunnel()
	return Snapshot{
		Tick:               g.tick,
		Score:              g.score,
		Rotation:           t.Rotation,
		AvatarZ:            g.avatar.Position,
		AvatarVelocity:     g.avatar.Velocity,
		Grounded:           g.avatar.Grounded,
		GameOver:           g.gameOver,
		Paused:             g.paused,
		AliveBlocks:        g.gen.AliveCount(),
		PoolSize:           g.gen.Len(),
		BlockSpeed:         t.BlockSpeed,
		SpawnDistance:      t.SpawnDistance,
		SpawnAngle:         t.SpawnAngle,
		SpawnAngleVariance: t.SpawnAngleVariance,
	}
}
