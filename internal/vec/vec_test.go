package vec

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name     string
		q        Quat
		in       Vec3
		expected Vec3
	}{
		{"identity", IdentityQuat(), V3(1, 2, 3), V3(1, 2, 3)},
		{"90 about z", AngleAxis(math.Pi/2, V3(0, 0, 1)), V3(1, 0, 0), V3(0, 1, 0)},
		{"180 about y", AngleAxis(math.Pi, V3(0, 1, 0)), V3(1, 0, 0), V3(-1, 0, 0)},
		{"axis is normalized", AngleAxis(math.Pi/2, V3(0, 0, 5)), V3(1, 0, 0), V3(0, 1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.q.Rotate(tc.in)
			if !got.ApproxEqual(tc.expected, eps) {
				t.Errorf("Rotate(%v) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestQuatInverse(t *testing.T) {
	q := AngleAxis(0.7, V3(1, 2, 3))
	p := V3(4, -1, 2)

	back := q.Inverse().Rotate(q.Rotate(p))
	if !back.ApproxEqual(p, eps) {
		t.Errorf("inverse rotation = %v, expected %v", back, p)
	}

	if !q.Mul(q.Inverse()).ApproxEqual(IdentityQuat(), eps) {
		t.Error("q * q^-1 should be identity")
	}
}

func TestTransformRelativeRoundTrip(t *testing.T) {
	parent := Transform{
		Position: V3(0, 0, 3),
		Rotation: AngleAxis(0.4, V3(0, 1, 0)),
		Scale:    V3(2, 2, 2),
	}
	world := Transform{
		Position: V3(1, -2, 4),
		Rotation: AngleAxis(1.1, V3(0, 0, 1)),
		Scale:    V3(1, 1, 1),
	}

	got := parent.Compose(parent.Relative(world))
	if !got.Position.ApproxEqual(world.Position, eps) {
		t.Errorf("position = %v, expected %v", got.Position, world.Position)
	}
	if !got.Rotation.ApproxEqual(world.Rotation, eps) {
		t.Errorf("rotation = %v, expected %v", got.Rotation, world.Rotation)
	}
	if !got.Scale.ApproxEqual(world.Scale, eps) {
		t.Errorf("scale = %v, expected %v", got.Scale, world.Scale)
	}
}

func TestVecDivByZero(t *testing.T) {
	got := V3(1, 2, 3).Div(V3(0, 2, 0))
	if got != V3(0, 1, 0) {
		t.Errorf("Div() = %v, expected (0, 1, 0)", got)
	}
}
