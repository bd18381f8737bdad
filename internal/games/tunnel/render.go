package tunnel

import (
	"fmt"
	"math"
	"unicode/utf8"

	perlin "github.com/aquilax/go-perlin"

	"github.com/vovakirdan/cat-tunnel/internal/core"
	"github.com/vovakirdan/cat-tunnel/internal/scene"
	"github.com/vovakirdan/cat-tunnel/internal/vec"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 0.5

// Glyphs
const (
	TileNear  = '█'
	TileMid   = '▓'
	TileFar   = '▒'
	TileHaze  = '░'
	GrassTuft = '"'
	CatBody   = '█'
	CatPaw    = '●'
	CatEar    = '▲'
	CatTail   = '~'
)

// grassNoise gives tiles a stable grass texture. Perlin parameters follow
// the usual alpha=2, beta=2, n=3 setup.
type grassNoise struct {
	p *perlin.Perlin
}

func newGrassNoise(seed int64) *grassNoise {
	return &grassNoise{p: perlin.NewPerlin(2, 2, 3, seed)}
}

// tuft reports whether a tile surface sample shows a grass tuft.
func (n *grassNoise) tuft(node scene.NodeID, u, v float64) bool {
	return n.p.Noise2D(float64(node)*3.7+u*4, v*4) > 0.25
}

// raster is a screen plus a depth buffer used for occlusion.
type raster struct {
	dst   *core.Screen
	cam   *scene.Camera
	depth []float64
	w, h  int
}

func newRaster(dst *core.Screen, cam *scene.Camera) *raster {
	w, h := dst.Width(), dst.Height()
	r := &raster{dst: dst, cam: cam, w: w, h: h, depth: make([]float64, w*h)}
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
	return r
}

// project maps a world point to a screen cell.
func (r *raster) project(p vec.Vec3) (x, y int, depth float64, ok bool) {
	nx, ny, d, ok := r.cam.Project(p)
	if !ok {
		return 0, 0, d, false
	}
	x = int(math.Floor((nx + 1) / 2 * float64(r.w)))
	y = int(math.Floor((1 - ny) / 2 * float64(r.h)))
	if x < 0 || x >= r.w || y < 0 || y >= r.h {
		return x, y, d, false
	}
	return x, y, d, true
}

// plot writes a glyph if it is nearer than what the cell already shows.
func (r *raster) plot(p vec.Vec3, ch rune, c core.Color) {
	x, y, d, ok := r.project(p)
	if !ok {
		return
	}
	i := y*r.w + x
	if d >= r.depth[i] {
		return
	}
	r.depth[i] = d
	r.dst.SetColored(x, y, ch, c)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.binding == nil {
		return
	}

	cam := g.binding.Camera
	cam.SetAspect(float64(dst.Width())*cellAspect, float64(dst.Height()))
	r := newRaster(dst, cam)

	for _, b := range g.gen.Blocks() {
		if b.Alive {
			g.drawTile(r, b)
		}
	}
	g.drawCat(r)
	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorYellow)
	}
	if g.gameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", int(g.score)), core.ColorRed)
	}
}

// drawTile samples the inner face of a tile densely enough to leave no holes
// at its projected size.
func (g *Game) drawTile(r *raster, b *Block) {
	world := g.binding.Graph.World(b.Node())

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{-0.5, -0.5}, {0.5, -0.5}, {-0.5, 0.5}, {0.5, 0.5}} {
		nx, ny, _, ok := r.cam.Project(world.Apply(vec.V3(c[0], c[1], 0.5)))
		if !ok {
			continue
		}
		x := (nx + 1) / 2 * float64(r.w)
		y := (1 - ny) / 2 * float64(r.h)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	if math.IsInf(span, 0) || math.IsNaN(span) {
		span = 8
	}
	steps := int(core.ClampF(span*1.5, 2, 48))

	for i := 0; i <= steps; i++ {
		u := float64(i)/float64(steps) - 0.5
		for j := 0; j <= steps; j++ {
			v := float64(j)/float64(steps) - 0.5
			p := world.Apply(vec.V3(u, v, 0.5))
			_, _, d, ok := r.cam.Project(p)
			if !ok {
				continue
			}
			ch, c := tileGlyph(d)
			if d < 40 && g.noise.tuft(b.Node(), u, v) {
				ch = GrassTuft
			}
			r.plot(p, ch, c)
		}
	}
}

// tileGlyph fades tiles with distance from the camera.
func tileGlyph(depth float64) (rune, core.Color) {
	switch {
	case depth < 25:
		return TileNear, core.ColorBrightGreen
	case depth < 45:
		return TileMid, core.ColorGreen
	case depth < 80:
		return TileFar, core.ColorDarkGreen
	default:
		return TileHaze, core.ColorDarkGray
	}
}

// drawCat draws the body as a sampled ellipsoid and each decoration as a
// single glyph at its world position.
func (g *Game) drawCat(r *raster) {
	graph := g.binding.Graph
	body := graph.World(g.binding.Body())

	const rings, segments = 8, 16
	for i := 0; i <= rings; i++ {
		lat := math.Pi * (float64(i)/rings - 0.5)
		for j := 0; j < segments; j++ {
			lon := 2 * math.Pi * float64(j) / segments
			p := vec.V3(
				0.5*math.Cos(lat)*math.Cos(lon),
				0.5*math.Cos(lat)*math.Sin(lon),
				0.5*math.Sin(lat),
			)
			r.plot(body.Apply(p), CatBody, core.ColorOrange)
		}
	}

	decorations := []struct {
		role scene.Role
		ch   rune
	}{
		{scene.RoleTail, CatTail},
		{scene.RoleLeftBackPaw, CatPaw},
		{scene.RoleRightBackPaw, CatPaw},
		{scene.RoleLeftFrontPaw, CatPaw},
		{scene.RoleRightFrontPaw, CatPaw},
		{scene.RoleLeftEar, CatEar},
		{scene.RoleRightEar, CatEar},
	}
	for _, d := range decorations {
		pos := graph.World(g.binding.Node(d.role)).Position
		x, y, _, ok := r.project(pos)
		if !ok {
			continue
		}
		// Decorations sit on the body surface; draw them over it
		r.depth[y*r.w+x] = 0
		r.dst.SetColored(x, y, d.ch, core.ColorYellow)
	}
}

// drawHUD draws the score, the speed and the controls line.
func (g *Game) drawHUD(dst *core.Screen) {
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", int(g.score)), core.ColorBrightWhite)

	var right string
	if g.difficulty.IsEnabled() {
		right = fmt.Sprintf(" Spd: %.1f ", g.gen.Tunnel().BlockSpeed)
	} else {
		right = " PRACTICE "
	}
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(right)-2, 0, right, core.ColorCyan)

	controls := "←/→ A/D rotate  Space jump  P pause  Q quit"
	x := (dst.Width() - utf8.RuneCountInString(controls)) / 2
	dst.DrawTextColored(x, dst.Height()-1, controls, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	titleLen := utf8.RuneCountInString(title)
	subtitleLen := utf8.RuneCountInString(subtitle)

	// Calculate box dimensions
	boxW := core.Max(titleLen, subtitleLen) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), c)

	// Draw text
	dst.DrawTextColored(boxX+(boxW-titleLen)/2, boxY+1, title, c)
	dst.DrawTextColored(boxX+(boxW-subtitleLen)/2, boxY+3, subtitle, core.ColorWhite)
}
