package scene

import (
	"fmt"

	"github.com/vovakirdan/cat-tunnel/internal/vec"
)

// Role is a semantic slot the game binds a scene object to.
type Role int

const (
	RoleBody Role = iota
	RoleLeftFrontPaw
	RoleRightFrontPaw
	RoleLeftBackPaw
	RoleRightBackPaw
	RoleLeftEar
	RoleRightEar
	RoleTail
	RoleGroundTile
	roleCount
)

// roleNames is the closed set of object names a scene may contain.
var roleNames = [roleCount]string{
	RoleBody:          "Body",
	RoleLeftFrontPaw:  "Left Front Paw",
	RoleRightFrontPaw: "Right Front Paw",
	RoleLeftBackPaw:   "Left Back Paw",
	RoleRightBackPaw:  "Right Back Paw",
	RoleLeftEar:       "Left Ear",
	RoleRightEar:      "Right Ear",
	RoleTail:          "Tail",
	RoleGroundTile:    "Ground Tile",
}

var roleByName = func() map[string]Role {
	m := make(map[string]Role, roleCount)
	for r, name := range roleNames {
		m[name] = Role(r)
	}
	return m
}()

// String returns the scene object name bound to the role.
func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return "Unknown"
	}
	return roleNames[r]
}

// Paws lists the four paw roles.
func Paws() []Role {
	return []Role{RoleLeftFrontPaw, RoleRightFrontPaw, RoleLeftBackPaw, RoleRightBackPaw}
}

// Error codes reported by Bind.
const (
	ErrCodeUnknownObject = "UNKNOWN_OBJECT"
	ErrCodeDuplicateRole = "DUPLICATE_ROLE"
	ErrCodeMissingRole   = "MISSING_ROLE"
	ErrCodeCameraCount   = "CAMERA_COUNT"
)

// BindError describes why a scene cannot be bound.
type BindError struct {
	Code    string
	Message string
}

func (e *BindError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Binding holds the scene objects resolved to roles, the transform arena and
// the single camera.
type Binding struct {
	Graph    *Graph
	Camera   *Camera
	nodes    [roleCount]NodeID
	template vec.Transform
	clones   int
}

// Bind validates the scene against the role table and builds the arena.
// Every object must map to a role, every role must be present exactly once,
// and the scene must have exactly one camera. The decorative parts are
// attached to the body keeping their world transforms, and the ground tile
// template is hidden.
func Bind(s *Scene) (*Binding, error) {
	if len(s.Cameras) != 1 {
		return nil, &BindError{
			Code:    ErrCodeCameraCount,
			Message: fmt.Sprintf("expecting scene to have exactly one camera, but it has %d", len(s.Cameras)),
		}
	}

	b := &Binding{
		Graph:  NewGraph(),
		Camera: NewCamera(s.Cameras[0]),
	}
	for i := range b.nodes {
		b.nodes[i] = NoNode
	}

	for _, obj := range s.Objects {
		role, ok := roleByName[obj.Name]
		if !ok {
			return nil, &BindError{
				Code:    ErrCodeUnknownObject,
				Message: fmt.Sprintf("found unexpected object %q", obj.Name),
			}
		}
		if b.nodes[role] != NoNode {
			return nil, &BindError{
				Code:    ErrCodeDuplicateRole,
				Message: fmt.Sprintf("object %q appears more than once", obj.Name),
			}
		}
		b.nodes[role] = b.Graph.Add(obj.Name, obj.Transform)
	}

	for r := Role(0); r < roleCount; r++ {
		if b.nodes[r] == NoNode {
			return nil, &BindError{
				Code:    ErrCodeMissingRole,
				Message: fmt.Sprintf("scene has no %q object", r.String()),
			}
		}
	}

	body := b.nodes[RoleBody]
	for _, id := range b.Decorations() {
		if err := b.Graph.Attach(id, body); err != nil {
			return nil, fmt.Errorf("scene: bind decorations: %w", err)
		}
	}

	tile := b.nodes[RoleGroundTile]
	b.template = b.Graph.Local(tile)
	hidden := b.template
	hidden.Scale = vec.Vec3{}
	b.Graph.SetLocal(tile, hidden)

	return b, nil
}

// Node returns the node bound to a role.
func (b *Binding) Node(r Role) NodeID {
	return b.nodes[r]
}

// Body returns the avatar body node.
func (b *Binding) Body() NodeID {
	return b.nodes[RoleBody]
}

// Decorations returns the nodes attached to the body.
func (b *Binding) Decorations() []NodeID {
	return []NodeID{
		b.nodes[RoleLeftFrontPaw],
		b.nodes[RoleRightFrontPaw],
		b.nodes[RoleLeftBackPaw],
		b.nodes[RoleRightBackPaw],
		b.nodes[RoleLeftEar],
		b.nodes[RoleRightEar],
		b.nodes[RoleTail],
	}
}

// TileTemplate returns the ground tile's original transform.
func (b *Binding) TileTemplate() vec.Transform {
	return b.template
}

// CloneTile creates a new node styled as a ground tile. The clone starts at
// the template transform and is positioned independently afterwards.
func (b *Binding) CloneTile() NodeID {
	b.clones++
	return b.Graph.Add(fmt.Sprintf("Ground Tile Copy %d", b.clones), b.template)
}

// Clones returns how many tile nodes have been created.
func (b *Binding) Clones() int {
	return b.clones
}
