package scene

import (
	"math"

	"github.com/vovakirdan/cat-tunnel/internal/vec"
)

// Camera is a perspective camera looking from Position toward Target with Z up.
type Camera struct {
	Name     string
	Position vec.Vec3
	Target   vec.Vec3
	FovY     float64 // degrees
	Near     float64
	Aspect   float64 // width / height, refreshed by the renderer every frame
}

// NewCamera creates a camera from its scene description.
func NewCamera(spec CameraSpec) *Camera {
	return &Camera{
		Name:     spec.Name,
		Position: spec.Position,
		Target:   spec.Target,
		FovY:     spec.FovY,
		Near:     spec.Near,
		Aspect:   1,
	}
}

// SetAspect updates the aspect ratio from the viewport size.
func (c *Camera) SetAspect(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = width / height
}

// Project maps a world point to normalized device coordinates in [-1, 1]
// (x right, y up). ok is false for points behind the near plane.
func (c *Camera) Project(p vec.Vec3) (x, y float64, depth float64, ok bool) {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(vec.V3(0, 0, 1)).Normalize()
	if right.Len() == 0 {
		right = vec.V3(1, 0, 0)
	}
	up := right.Cross(forward)

	rel := p.Sub(c.Position)
	depth = rel.Dot(forward)
	if depth < c.Near {
		return 0, 0, depth, false
	}

	f := 1 / math.Tan(c.FovY*vec.DegToRad/2)
	x = rel.Dot(right) * f / (depth * c.Aspect)
	y = rel.Dot(up) * f / depth
	return x, y, depth, true
}
