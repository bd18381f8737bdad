package scene

import (
	"fmt"

	"github.com/vovakirdan/cat-tunnel/internal/vec"
)

// NodeID addresses a node in a Graph. IDs are stable for the graph's lifetime.
type NodeID int

// NoNode marks the absence of a parent.
const NoNode NodeID = -1

// Node is one transform in the arena.
type Node struct {
	Name   string
	Local  vec.Transform
	Parent NodeID
}

// Graph is an arena of transform nodes. Nodes are only ever appended.
type Graph struct {
	nodes []Node
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make([]Node, 0, 64)}
}

// Add appends a root node and returns its ID.
func (g *Graph) Add(name string, local vec.Transform) NodeID {
	g.nodes = append(g.nodes, Node{Name: name, Local: local, Parent: NoNode})
	return NodeID(len(g.nodes) - 1)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns a copy of the node. Panics on an invalid ID.
func (g *Graph) Node(id NodeID) Node {
	return g.nodes[id]
}

// Local returns the node's transform relative to its parent.
func (g *Graph) Local(id NodeID) vec.Transform {
	return g.nodes[id].Local
}

// SetLocal replaces the node's local transform.
func (g *Graph) SetLocal(id NodeID, t vec.Transform) {
	g.nodes[id].Local = t
}

// SetPosition replaces only the node's local position.
func (g *Graph) SetPosition(id NodeID, p vec.Vec3) {
	g.nodes[id].Local.Position = p
}

// World composes the node's transform with all of its ancestors.
func (g *Graph) World(id NodeID) vec.Transform {
	n := g.nodes[id]
	if n.Parent == NoNode {
		return n.Local
	}
	return g.World(n.Parent).Compose(n.Local)
}

// Attach makes child a child of parent while keeping its current world
// transform: the child's new local transform is its world transform with the
// parent's world transform removed.
func (g *Graph) Attach(child, parent NodeID) error {
	if !g.valid(child) || !g.valid(parent) {
		return fmt.Errorf("scene: attach %d to %d: invalid node", child, parent)
	}
	for p := parent; p != NoNode; p = g.nodes[p].Parent {
		if p == child {
			return fmt.Errorf("scene: attach %q to %q would create a cycle",
				g.nodes[child].Name, g.nodes[parent].Name)
		}
	}

	world := g.World(child)
	g.nodes[child].Local = g.World(parent).Relative(world)
	g.nodes[child].Parent = parent
	return nil
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}
