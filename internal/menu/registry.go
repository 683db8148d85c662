package menu

import (
	"errors"
	"fmt"
)

// DefaultMaxDepth bounds how deep a forest may nest before it is rejected.
const DefaultMaxDepth = 32

var (
	ErrEmptyID     = errors.New("menu node has empty id")
	ErrDuplicateID = errors.New("duplicate menu node id")
	ErrTooDeep     = errors.New("menu nesting exceeds maximum depth")
)

type entry struct {
	node   *Node
	parent string
	depth  int
}

// Index is an id-keyed arena over a forest. It never copies or mutates the
// nodes; lookups return pointers into the caller's forest.
type Index struct {
	nodes    map[string]entry
	order    []string
	maxDepth int
}

// NewIndex validates the forest and builds the lookup table. Ids must be
// non-empty and unique across the whole forest.
func NewIndex(forest Forest, maxDepth int) (*Index, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	idx := &Index{nodes: make(map[string]entry), maxDepth: maxDepth}

	type frame struct {
		node   *Node
		parent string
		depth  int
	}
	stack := make([]frame, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: &forest[i]})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.depth >= maxDepth {
			return nil, fmt.Errorf("%w: node %q at depth %d", ErrTooDeep, top.node.ID, top.depth)
		}
		if top.node.ID == "" {
			return nil, fmt.Errorf("%w (label %q)", ErrEmptyID, top.node.Label)
		}
		if _, dup := idx.nodes[top.node.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, top.node.ID)
		}
		idx.nodes[top.node.ID] = entry{node: top.node, parent: top.parent, depth: top.depth}
		idx.order = append(idx.order, top.node.ID)
		children := top.node.Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &children[i], parent: top.node.ID, depth: top.depth + 1})
		}
	}
	return idx, nil
}

// Find locates a node by id.
func (x *Index) Find(id string) (*Node, bool) {
	if x == nil {
		return nil, false
	}
	e, ok := x.nodes[id]
	if !ok {
		return nil, false
	}
	return e.node, true
}

// Parent returns the id of the node's parent. Top-level nodes report false.
func (x *Index) Parent(id string) (string, bool) {
	if x == nil {
		return "", false
	}
	e, ok := x.nodes[id]
	if !ok || e.parent == "" {
		return "", false
	}
	return e.parent, true
}

// Depth returns the nesting level of a node, 0 for top-level nodes and -1
// for unknown ids.
func (x *Index) Depth(id string) int {
	if x == nil {
		return -1
	}
	e, ok := x.nodes[id]
	if !ok {
		return -1
	}
	return e.depth
}

// Len returns the number of nodes in the forest.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.nodes)
}

// IDs lists every node id in pre-order.
func (x *Index) IDs() []string {
	if x == nil {
		return nil
	}
	return append([]string(nil), x.order...)
}

// MaxDepth reports the depth limit the index was built with.
func (x *Index) MaxDepth() int {
	if x == nil {
		return DefaultMaxDepth
	}
	return x.maxDepth
}
