package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cat-tunnel/internal/vec"
)

func TestDefaultSceneBinds(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	b, err := Bind(s)
	require.NoError(t, err)
	require.NotNil(t, b.Camera)

	for _, id := range b.Decorations() {
		assert.Equal(t, b.Body(), b.Graph.Node(id).Parent, "decoration %q should hang off the body", b.Graph.Node(id).Name)
	}

	tile := b.Graph.Local(b.Node(RoleGroundTile))
	assert.Equal(t, vec.Vec3{}, tile.Scale, "template should be hidden")
	assert.NotEqual(t, vec.Vec3{}, b.TileTemplate().Scale)
}

func TestBindKeepsDecorationWorldTransform(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	original := make(map[string]vec.Transform)
	for _, obj := range s.Objects {
		original[obj.Name] = obj.Transform
	}

	b, err := Bind(s)
	require.NoError(t, err)

	for _, id := range b.Decorations() {
		n := b.Graph.Node(id)
		world := b.Graph.World(id)
		assert.True(t, world.Position.ApproxEqual(original[n.Name].Position, 1e-9),
			"%s world position %v, expected %v", n.Name, world.Position, original[n.Name].Position)
	}

	// Moving the body carries the children with it.
	body := b.Body()
	before := b.Graph.World(b.Node(RoleTail)).Position
	b.Graph.SetPosition(body, b.Graph.Local(body).Position.Add(vec.V3(0, 0, 2)))
	after := b.Graph.World(b.Node(RoleTail)).Position
	assert.InDelta(t, before.Z+2, after.Z, 1e-9)
}

func TestBindErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code string
	}{
		{
			name: "no camera",
			yaml: fullObjects,
			code: ErrCodeCameraCount,
		},
		{
			name: "two cameras",
			yaml: fullObjects + "cameras:\n  - name: A\n  - name: B\n",
			code: ErrCodeCameraCount,
		},
		{
			name: "unknown object",
			yaml: fullObjects + "  - name: Hat\ncameras:\n  - name: A\n",
			code: ErrCodeUnknownObject,
		},
		{
			name: "missing role",
			yaml: "objects:\n  - name: Body\ncameras:\n  - name: A\n",
			code: ErrCodeMissingRole,
		},
		{
			name: "duplicate role",
			yaml: fullObjects + "  - name: Tail\ncameras:\n  - name: A\n",
			code: ErrCodeDuplicateRole,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Load([]byte(tc.yaml))
			require.NoError(t, err)

			_, err = Bind(s)
			require.Error(t, err)

			var bindErr *BindError
			require.True(t, errors.As(err, &bindErr), "expected *BindError, got %T", err)
			assert.Equal(t, tc.code, bindErr.Code)
		})
	}
}

func TestLoadRejectsBadVector(t *testing.T) {
	_, err := Load([]byte("objects:\n  - name: Body\n    position: [1, 2]\n"))
	assert.Error(t, err)
}

func TestCloneTile(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)
	b, err := Bind(s)
	require.NoError(t, err)

	n := b.Graph.Len()
	a := b.CloneTile()
	c := b.CloneTile()

	assert.NotEqual(t, a, c)
	assert.Equal(t, n+2, b.Graph.Len())
	assert.Equal(t, 2, b.Clones())
	assert.Equal(t, b.TileTemplate(), b.Graph.Local(a))
}

func TestAttachRejectsCycle(t *testing.T) {
	g := NewGraph()
	a := g.Add("a", vec.Identity())
	c := g.Add("c", vec.Identity())
	require.NoError(t, g.Attach(c, a))
	assert.Error(t, g.Attach(a, c))
	assert.Equal(t, a, g.Node(c).Parent)
	assert.Equal(t, NoNode, g.Node(a).Parent)
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera(CameraSpec{
		Position: vec.V3(0, 10, 0),
		Target:   vec.V3(0, 0, 0),
		FovY:     90,
		Near:     0.1,
	})
	cam.SetAspect(2, 1)

	x, y, depth, ok := cam.Project(vec.V3(0, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
	assert.InDelta(t, 10, depth, 1e-9)

	// Up in world is up on screen.
	_, y, _, ok = cam.Project(vec.V3(0, 0, 5))
	require.True(t, ok)
	assert.Greater(t, y, 0.0)

	// Behind the camera.
	_, _, _, ok = cam.Project(vec.V3(0, 20, 0))
	assert.False(t, ok)
}

const fullObjects = `objects:
  - name: Body
  - name: Left Front Paw
  - name: Right Front Paw
  - name: Left Back Paw
  - name: Right Back Paw
  - name: Left Ear
  - name: Right Ear
  - name: Tail
  - name: Ground Tile
`
