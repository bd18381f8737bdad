package tunnel

import (
	"math/rand"

	"github.com/vovakirdan/cat-tunnel/internal/config"
	"github.com/vovakirdan/cat-tunnel/internal/scene"
	"github.com/vovakirdan/cat-tunnel/internal/vec"
)

// Tunnel holds the rotation and the generator parameters of a session.
type Tunnel struct {
	Rotation          float64 // Degrees, cumulative
	SpawnAngle        float64 // Running angle of the last spawned tile
	SpawnSkewVariance float64
	config.Params             // BlockSpeed, SpawnDistance, SpawnAngleVariance
}

// Generator owns the block pool and keeps the track filled up to the horizon.
type Generator struct {
	blocks     []*Block
	tunnel     Tunnel
	rng        *rand.Rand // Shared with the session
	cfg        config.TunnelGenerator
	radius     float64
	binding    *scene.Binding // Nil in headless use; blocks then have no node
	tileScale  vec.Vec3
	difficulty *config.DifficultyManager
}

// NewGenerator creates an empty generator. binding may be nil.
func NewGenerator(cfg config.TunnelConfig, rng *rand.Rand, binding *scene.Binding, diff *config.DifficultyManager) *Generator {
	gen := &Generator{
		blocks:     make([]*Block, 0, 64),
		rng:        rng,
		cfg:        cfg.Generator,
		radius:     cfg.Tunnel.Radius,
		binding:    binding,
		tileScale:  vec.V3(1, 1, 1),
		difficulty: diff,
		tunnel: Tunnel{
			SpawnSkewVariance: cfg.Generator.SkewVariance,
			Params: config.Params{
				BlockSpeed:         cfg.Generator.InitialBlockSpeed,
				SpawnDistance:      cfg.Generator.InitialSpawnDistance,
				SpawnAngleVariance: cfg.Generator.OpeningVariance,
			},
		},
	}
	if binding != nil {
		gen.tileScale = binding.TileTemplate().Scale
	}
	return gen
}

// Tunnel returns a copy of the current tunnel state.
func (gen *Generator) Tunnel() Tunnel {
	return gen.tunnel
}

// Blocks returns the whole pool, dead blocks included.
func (gen *Generator) Blocks() []*Block {
	return gen.blocks
}

// Len returns the pool size.
func (gen *Generator) Len() int {
	return len(gen.blocks)
}

// AliveCount returns how many blocks are currently on the track.
func (gen *Generator) AliveCount() int {
	n := 0
	for _, b := range gen.blocks {
		if b.Alive {
			n++
		}
	}
	return n
}

// AcquireOrCreate places a block at (angle, depth). The first dead block in
// the pool is reused; only when none is free is a new block allocated with a
// fresh tile node.
func (gen *Generator) AcquireOrCreate(angle, depth float64) *Block {
	for _, b := range gen.blocks {
		if !b.Alive {
			b.Angle = angle
			b.Depth = depth
			b.Alive = true
			b.UpdatePosition(gen.tunnel.Rotation)
			return b
		}
	}

	b := &Block{
		Angle:  angle,
		Depth:  depth,
		Alive:  true,
		node:   scene.NoNode,
		radius: gen.radius,
		scale:  gen.tileScale,
	}
	if gen.binding != nil {
		b.node = gen.binding.CloneTile()
		b.graph = gen.binding.Graph
	}
	b.UpdatePosition(gen.tunnel.Rotation)
	gen.blocks = append(gen.blocks, b)
	return b
}

// horizon returns the distance to the farthest alive block ahead of the cat.
func (gen *Generator) horizon() float64 {
	maxDepth := 0.0
	for _, b := range gen.blocks {
		if b.Alive && b.Depth < 0 && -b.Depth > maxDepth {
			maxDepth = -b.Depth
		}
	}
	return maxDepth
}

// TrySpawnStrip appends one strip of tiles beyond the farthest one. Returns
// false without spawning once the track reaches the horizon.
func (gen *Generator) TrySpawnStrip() bool {
	maxDepth := gen.horizon()
	if maxDepth >= gen.cfg.MaxDepth {
		return false
	}

	size := gen.cfg.MinStrip
	if span := gen.cfg.MaxStrip - gen.cfg.MinStrip; span > 0 {
		size += gen.rng.Intn(span + 1)
	}
	skew := gen.uniform(gen.tunnel.SpawnSkewVariance)

	depth := maxDepth + gen.tunnel.SpawnDistance
	variance := gen.tunnel.SpawnAngleVariance
	for i := 0; i < size; i++ {
		gen.tunnel.SpawnAngle += gen.uniform(variance) + skew
		gen.AcquireOrCreate(gen.tunnel.SpawnAngle, -depth)
		depth += gen.cfg.TileSpacing
		variance = gen.cfg.InnerVariance
	}
	return true
}

// Fill spawns strips until the horizon is reached and returns how many were
// spawned.
func (gen *Generator) Fill() int {
	n := 0
	for gen.TrySpawnStrip() {
		n++
	}
	return n
}

// Open lays the first strip straight under the cat, then switches to the
// regular angle variance and fills the rest of the horizon. The difficulty
// warm start is applied after the opening so it never bends the first strip.
func (gen *Generator) Open() int {
	n := 0
	if gen.TrySpawnStrip() {
		n++
	}
	gen.tunnel.SpawnAngleVariance = gen.cfg.BaseVariance
	if gen.difficulty != nil {
		gen.difficulty.WarmStart(&gen.tunnel.Params)
	}
	return n + gen.Fill()
}

// Advance moves every alive block toward and past the cat.
func (gen *Generator) Advance(elapsed float64) {
	for _, b := range gen.blocks {
		if !b.Alive {
			continue
		}
		b.Depth += elapsed * gen.tunnel.BlockSpeed
		b.UpdatePosition(gen.tunnel.Rotation)
	}
}

// Progress makes the track faster, sparser and more twisted over time.
func (gen *Generator) Progress(elapsed float64) {
	if gen.difficulty == nil {
		return
	}
	gen.difficulty.Progress(&gen.tunnel.Params, elapsed)
}

// Recycle retires blocks that passed behind the cat and returns how many
// were retired. Their nodes stay where they are until reused.
func (gen *Generator) Recycle() int {
	n := 0
	for _, b := range gen.blocks {
		if b.Alive && b.Depth > gen.cfg.RecycleDepth {
			b.Alive = false
			n++
		}
	}
	return n
}

// Reposition sets the tunnel rotation and re-places every alive block.
func (gen *Generator) Reposition(rotation float64) {
	gen.tunnel.Rotation = rotation
	for _, b := range gen.blocks {
		if b.Alive {
			b.UpdatePosition(rotation)
		}
	}
}

// uniform returns a value drawn uniformly from [-v, v].
func (gen *Generator) uniform(v float64) float64 {
	if v == 0 {
		return 0
	}
	return (gen.rng.Float64()*2 - 1) * v
}
