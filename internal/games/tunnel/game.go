// Package tunnel implements the cat tunnel endless runner. The cat stands at
// the bottom of a circular tunnel of grass tiles that scrolls toward the
// camera; the player rotates the tunnel to keep tiles under the cat and jumps
// across gaps.
package tunnel

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/cat-tunnel/internal/config"
	"github.com/vovakirdan/cat-tunnel/internal/core"
	"github.com/vovakirdan/cat-tunnel/internal/registry"
	"github.com/vovakirdan/cat-tunnel/internal/scene"
	"github.com/vovakirdan/cat-tunnel/internal/vec"
)

// Game mode identifiers.
const (
	ModeID         = "tunnel"
	PracticeModeID = "tunnel_practice"
)

// Game implements the cat tunnel. All randomness comes from a per-session
// RNG seeded from the runtime config, so equal seeds and inputs replay
// identically.
type Game struct {
	practice bool
	opts     *Options // Non-nil when the caller fixed config and scene

	runtime    core.RuntimeConfig
	cfg        config.TunnelConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	binding    *scene.Binding
	gen        *Generator
	collision  CollisionDetector
	avatar     Avatar
	pawBase    map[scene.NodeID]vec.Vec3
	noise      *grassNoise

	score    float64
	maxSpeed float64
	tick     uint64
	gameOver bool
	paused   bool
}

// Options fixes the tuning and scene of a game instead of loading them.
type Options struct {
	Config   config.TunnelConfig
	Scene    *scene.Scene // Nil means the embedded cat scene
	Practice bool
}

var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	customScene      *scene.Scene
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the config's own settings.
func SetDifficultyPreset(preset string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetScenePath loads a scene file used by every new session. The scene is
// bound once here so a bad file is reported before play starts. An empty
// path restores the embedded scene.
func SetScenePath(path string) error {
	var s *scene.Scene
	if path != "" {
		var err error
		s, err = scene.LoadFile(path)
		if err != nil {
			return err
		}
		if _, err := scene.Bind(s); err != nil {
			return fmt.Errorf("scene %s: %w", path, err)
		}
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	customScene = s
	return nil
}

// New creates a new tunnel game instance.
func New() *Game {
	return &Game{}
}

// NewPractice creates a tunnel game with difficulty progression disabled.
func NewPractice() *Game {
	return &Game{practice: true}
}

// NewWithOptions creates a game that uses opts instead of the CLI settings.
// The config is validated and a custom scene bound up front, so Reset
// cannot fail later.
func NewWithOptions(opts Options) (*Game, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("tunnel: config: %w", err)
	}
	if opts.Scene != nil {
		if _, err := scene.Bind(opts.Scene); err != nil {
			return nil, fmt.Errorf("tunnel: scene: %w", err)
		}
	}
	return &Game{practice: opts.Practice, opts: &opts}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.practice {
		return PracticeModeID
	}
	return ModeID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.practice {
		return "Cat Tunnel (Practice)"
	}
	return "Cat Tunnel"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, sc := g.settings()
	g.cfg = cfg

	binding, err := scene.Bind(sc)
	if err != nil {
		// Custom scenes are bound in SetScenePath or NewWithOptions before
		// they get here; the embedded one always binds.
		panic(fmt.Sprintf("tunnel: bind scene: %v", err))
	}
	g.binding = binding

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	if g.practice {
		g.difficulty.SetEnabled(false)
	}
	g.collision = NewCollisionDetector(cfg.Collision)
	g.avatar = NewAvatar(cfg.Physics)
	g.noise = newGrassNoise(runtime.Seed)

	g.pawBase = make(map[scene.NodeID]vec.Vec3, 4)
	for _, r := range scene.Paws() {
		id := binding.Node(r)
		g.pawBase[id] = binding.Graph.Local(id).Position
	}

	g.score = 0
	g.tick = 0
	g.gameOver = false
	g.paused = false
	g.placeCat()

	g.gen = NewGenerator(cfg, g.rng, binding, g.difficulty)
	g.gen.Open()
	g.maxSpeed = g.gen.Tunnel().BlockSpeed
}

// settings resolves the config and scene for the next session.
func (g *Game) settings() (config.TunnelConfig, *scene.Scene) {
	if g.opts != nil {
		sc := g.opts.Scene
		if sc == nil {
			sc = mustDefaultScene()
		}
		return g.opts.Config, sc
	}

	settingsMu.RLock()
	path, preset, sc := configPath, difficultyPreset, customScene
	settingsMu.RUnlock()

	cfg, err := config.LoadTunnel(path)
	if err != nil {
		cfg = config.DefaultTunnelConfig()
	}
	config.ApplyTunnelPreset(&cfg, preset)

	if sc == nil {
		sc = mustDefaultScene()
	}
	return cfg, sc
}

func mustDefaultScene() *scene.Scene {
	sc, err := scene.Default()
	if err != nil {
		panic(fmt.Sprintf("tunnel: embedded scene: %v", err))
	}
	return sc
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	elapsed := g.runtime.Elapsed()
	g.tick++
	g.score += elapsed

	// Rotate the tunnel; left wins when both are held
	rotation := g.gen.Tunnel().Rotation
	switch {
	case in.Held(core.ActionLeft):
		rotation += g.cfg.Tunnel.RotationSpeed * elapsed
	case in.Held(core.ActionRight):
		rotation -= g.cfg.Tunnel.RotationSpeed * elapsed
	}
	if rotation != g.gen.Tunnel().Rotation {
		g.gen.Reposition(rotation)
	}

	supported := g.collision.Supported(g.gen.Blocks(), rotation, g.avatar.Position)
	g.avatar.Integrate(supported, in.Has(core.ActionJump), elapsed)
	g.placeCat()

	if g.avatar.Dead() {
		g.gameOver = true
		return core.StepResult{State: g.State()}
	}

	g.wobblePaws(elapsed)

	g.gen.Advance(elapsed)
	g.gen.Progress(elapsed)
	g.gen.Recycle()
	g.gen.Fill()

	if s := g.gen.Tunnel().BlockSpeed; s > g.maxSpeed {
		g.maxSpeed = s
	}

	return core.StepResult{State: g.State()}
}

// placeCat moves the body node to the avatar height.
func (g *Game) placeCat() {
	body := g.binding.Body()
	pos := g.binding.Graph.Local(body).Position
	pos.X, pos.Y, pos.Z = 0, 0, g.avatar.Position
	g.binding.Graph.SetPosition(body, pos)
}

// wobblePaws animates the paws around their bound positions.
func (g *Game) wobblePaws(elapsed float64) {
	offset := g.avatar.Wobble(elapsed)
	for id, base := range g.pawBase {
		g.binding.Graph.SetPosition(id, base.Add(offset))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(g.score),
		Ticks:    g.tick,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Seed returns the seed the current session was started with.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// MaxSpeed returns the highest block speed reached this session.
func (g *Game) MaxSpeed() float64 {
	return g.maxSpeed
}

// Register the game modes with the registry
func init() {
	registry.Register(ModeID, func() registry.Game {
		return New()
	})
	registry.Register(PracticeModeID, func() registry.Game {
		return NewPractice()
	})
}
