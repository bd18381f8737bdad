package tunnel

import (
	"math"

	"github.com/vovakirdan/cat-tunnel/internal/scene"
	"github.com/vovakirdan/cat-tunnel/internal/vec"
)

// tunnelAxis is the long axis of the tunnel; tiles rotate about it.
var tunnelAxis = vec.V3(0, 1, 0)

// Block is one track tile. Its world placement depends only on Angle, Depth
// and the tunnel rotation. Blocks are never destroyed: a dead block keeps its
// node and waits in the pool to be reused.
type Block struct {
	Angle float64 // Degrees around the tunnel before rotation
	Depth float64 // Along the tunnel axis; negative is ahead of the cat
	Alive bool

	node   scene.NodeID
	graph  *scene.Graph // Not owned
	radius float64
	scale  vec.Vec3
}

// Node returns the scene node that displays this block.
func (b *Block) Node() scene.NodeID {
	return b.node
}

// Placement returns the tile transform for the given tunnel rotation without
// touching the scene.
func (b *Block) Placement(rotation float64) vec.Transform {
	return placement(b.Angle, b.Depth, rotation, b.radius, b.scale)
}

// UpdatePosition writes the block's placement into its scene node.
func (b *Block) UpdatePosition(rotation float64) {
	if b.graph == nil {
		return
	}
	b.graph.SetLocal(b.node, b.Placement(rotation))
}

// placement puts a tile on the inside of a cylinder of the given radius whose
// axis runs along y at height radius. Angle 0 is the bottom of the tunnel,
// directly below the cat.
func placement(angle, depth, rotation, radius float64, scale vec.Vec3) vec.Transform {
	world := (angle + rotation) * vec.DegToRad
	return vec.Transform{
		Position: vec.V3(
			-radius*math.Sin(world),
			depth,
			-radius*math.Cos(world)+radius,
		),
		Rotation: vec.AngleAxis(world, tunnelAxis),
		Scale:    scale,
	}
}
