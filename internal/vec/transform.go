package vec

// Transform is a position/rotation/scale triple. Points are mapped as
// Position + Rotation * (Scale * p).
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{Rotation: IdentityQuat(), Scale: V3(1, 1, 1)}
}

// Apply maps a local point into this transform's parent space.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Position.Add(t.Rotation.Rotate(p.Mul(t.Scale)))
}

// InverseApply maps a parent-space point into this transform's local space.
func (t Transform) InverseApply(p Vec3) Vec3 {
	return t.Rotation.Inverse().Rotate(p.Sub(t.Position)).Div(t.Scale)
}

// Compose returns the transform of child expressed in t's parent space.
// Non-uniform scale combined with rotation is approximated component-wise,
// which is exact for the uniform scales the scenes use.
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Position: t.Apply(child.Position),
		Rotation: t.Rotation.Mul(child.Rotation),
		Scale:    t.Scale.Mul(child.Scale),
	}
}

// Relative expresses world transform w in the local space of t, so that
// t.Compose(t.Relative(w)) reproduces w.
func (t Transform) Relative(w Transform) Transform {
	return Transform{
		Position: t.InverseApply(w.Position),
		Rotation: t.Rotation.Inverse().Mul(w.Rotation),
		Scale:    w.Scale.Div(t.Scale),
	}
}
