// Package scene loads the cat scene description and binds its objects to the
// roles the game needs. Objects live in a Graph, an arena of transform nodes
// addressed by stable NodeIDs; parent links are stored as indices.
package scene

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/cat-tunnel/internal/vec"
)

//go:embed assets/cat.yaml
var defaultSceneYAML []byte

// Scene is a parsed scene file: named objects with transforms and cameras.
type Scene struct {
	Name    string
	Objects []Object
	Cameras []CameraSpec
}

// Object is a named, positioned visual object.
type Object struct {
	Name      string
	Transform vec.Transform
}

// CameraSpec describes a camera in the scene file.
type CameraSpec struct {
	Name     string
	Position vec.Vec3
	Target   vec.Vec3
	FovY     float64 // Vertical field of view in degrees
	Near     float64
}

// yamlScene is the on-disk layout.
type yamlScene struct {
	Name    string       `yaml:"name"`
	Objects []yamlObject `yaml:"objects"`
	Cameras []yamlCamera `yaml:"cameras"`
}

type yamlObject struct {
	Name     string        `yaml:"name"`
	Position []float64     `yaml:"position"`
	Rotation *yamlRotation `yaml:"rotation,omitempty"`
	Scale    []float64     `yaml:"scale,omitempty"`
}

type yamlRotation struct {
	Axis    []float64 `yaml:"axis"`
	Degrees float64   `yaml:"degrees"`
}

type yamlCamera struct {
	Name     string    `yaml:"name"`
	Position []float64 `yaml:"position"`
	Target   []float64 `yaml:"target"`
	FovY     float64   `yaml:"fovy"`
	Near     float64   `yaml:"near"`
}

// Load parses a YAML scene.
func Load(data []byte) (*Scene, error) {
	var ys yamlScene
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, fmt.Errorf("scene: yaml unmarshal: %w", err)
	}

	s := &Scene{Name: ys.Name}

	for _, yo := range ys.Objects {
		t, err := yo.transform()
		if err != nil {
			return nil, fmt.Errorf("scene: object %q: %w", yo.Name, err)
		}
		s.Objects = append(s.Objects, Object{Name: yo.Name, Transform: t})
	}

	for _, yc := range ys.Cameras {
		pos, err := toVec3(yc.Position, vec.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("scene: camera %q position: %w", yc.Name, err)
		}
		target, err := toVec3(yc.Target, pos.Add(vec.V3(0, -1, 0)))
		if err != nil {
			return nil, fmt.Errorf("scene: camera %q target: %w", yc.Name, err)
		}
		cam := CameraSpec{
			Name:     yc.Name,
			Position: pos,
			Target:   target,
			FovY:     yc.FovY,
			Near:     yc.Near,
		}
		if cam.FovY <= 0 {
			cam.FovY = 60
		}
		if cam.Near <= 0 {
			cam.Near = 0.1
		}
		s.Cameras = append(s.Cameras, cam)
	}

	return s, nil
}

// LoadFile reads and parses a YAML scene file.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: failed to read %s: %w", path, err)
	}
	return Load(data)
}

// Default returns the embedded cat scene.
func Default() (*Scene, error) {
	return Load(defaultSceneYAML)
}

func (yo yamlObject) transform() (vec.Transform, error) {
	t := vec.Identity()

	pos, err := toVec3(yo.Position, vec.Vec3{})
	if err != nil {
		return t, fmt.Errorf("position: %w", err)
	}
	t.Position = pos

	scale, err := toVec3(yo.Scale, vec.V3(1, 1, 1))
	if err != nil {
		return t, fmt.Errorf("scale: %w", err)
	}
	t.Scale = scale

	if yo.Rotation != nil {
		axis, err := toVec3(yo.Rotation.Axis, vec.V3(0, 0, 1))
		if err != nil {
			return t, fmt.Errorf("rotation axis: %w", err)
		}
		t.Rotation = vec.AngleAxis(yo.Rotation.Degrees*vec.DegToRad, axis)
	}

	return t, nil
}

// toVec3 converts a YAML triple, using def when the field was omitted.
func toVec3(v []float64, def vec.Vec3) (vec.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return vec.V3(v[0], v[1], v[2]), nil
	default:
		return vec.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(v))
	}
}
