// Package tree provides the rooted hierarchy consumed by treemap attribute
// computation. A Tree stores nodes keyed by ID with parent/child links and
// supports the pre-order traversal that attribute construction requires:
// every parent is visited before any of its children, so a child can read
// its parent's already-resolved colour.
package tree

import "errors"

var (
	// ErrInvalidNodeID is returned by [Tree.AddRoot] and [Tree.AddChild] when
	// the node ID is empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Tree.AddRoot] and [Tree.AddChild]
	// when a node with the same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownParent is returned by [Tree.AddChild] when the parent node
	// does not exist in the tree.
	ErrUnknownParent = errors.New("unknown parent node")

	// ErrDuplicateRoot is returned by [Tree.AddRoot] when the tree already
	// has a root. A tree has exactly one root.
	ErrDuplicateRoot = errors.New("tree already has a root")

	// ErrNoRoot is returned by [Tree.Validate] when the tree is empty or no
	// root was ever added.
	ErrNoRoot = errors.New("tree has no root")

	// ErrUnreachableNode is returned by [Tree.Validate] when a node cannot be
	// reached from the root. This indicates index corruption.
	ErrUnreachableNode = errors.New("node not reachable from root")
)

// Node is a single entry in the hierarchy. Label is the display text; Dummy
// marks a non-data spacer node inserted for visual padding.
//
// The zero value is not usable - ID must be set before adding to a Tree.
type Node struct {
	ID    string
	Label string
	Dummy bool
}

// Tree is a rooted hierarchy of nodes. The zero value is not usable - use
// New to create a valid instance. Tree is not safe for concurrent use
// without external synchronization.
type Tree struct {
	nodes    map[string]*Node
	children map[string][]string
	parent   map[string]string
	root     string
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		nodes:    make(map[string]*Node),
		children: make(map[string][]string),
		parent:   make(map[string]string),
	}
}

// AddRoot adds the root node. Returns ErrInvalidNodeID for an empty ID,
// ErrDuplicateRoot if a root already exists, or ErrDuplicateNodeID if the
// ID is taken.
func (t *Tree) AddRoot(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if t.root != "" {
		return ErrDuplicateRoot
	}
	if _, exists := t.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	t.nodes[node.ID] = node
	t.root = node.ID
	return nil
}

// AddChild adds a node under the given parent. Children keep insertion
// order, which is also their visit order during traversal.
func (t *Tree) AddChild(parentID string, n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, ok := t.nodes[parentID]; !ok {
		return ErrUnknownParent
	}
	if _, exists := t.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	t.nodes[node.ID] = node
	t.children[parentID] = append(t.children[parentID], node.ID)
	t.parent[node.ID] = parentID
	return nil
}

// Node returns the node with the given ID and true, or nil and false.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Root returns the root node ID, or "" for an empty tree.
func (t *Tree) Root() string { return t.root }

// Children returns the IDs of the node's children in insertion order.
// The returned slice should not be modified.
func (t *Tree) Children(id string) []string { return t.children[id] }

// Parent returns the parent ID of a node and true, or "" and false for the
// root or an unknown node.
func (t *Tree) Parent(id string) (string, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// IsLeaf reports whether the node has no children.
// Unknown nodes report true.
func (t *Tree) IsLeaf(id string) bool { return len(t.children[id]) == 0 }

// Depth returns the number of edges between the node and the root.
// The root has depth 0. Unknown nodes report 0.
func (t *Tree) Depth(id string) int {
	depth := 0
	for {
		p, ok := t.parent[id]
		if !ok {
			return depth
		}
		id = p
		depth++
	}
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Validate checks tree integrity: a root exists and every node is reachable
// from it. Structural cycles cannot be introduced through AddRoot/AddChild,
// so reachability is the only invariant left to verify.
func (t *Tree) Validate() error {
	if t.root == "" {
		return ErrNoRoot
	}
	seen := 0
	t.PreOrder(func(*Node, string, int) { seen++ })
	if seen != len(t.nodes) {
		return ErrUnreachableNode
	}
	return nil
}

// PreOrder visits every node reachable from the root, parents before
// children, siblings in insertion order. The visit callback receives the
// node, its parent's ID ("" for the root), and its depth.
func (t *Tree) PreOrder(visit func(n *Node, parentID string, depth int)) {
	if t.root == "" {
		return
	}
	var walk func(id, parentID string, depth int)
	walk = func(id, parentID string, depth int) {
		visit(t.nodes[id], parentID, depth)
		for _, child := range t.children[id] {
			walk(child, id, depth+1)
		}
	}
	walk(t.root, "", 0)
}
