package menu

// Row is one rendered line of the visible tree.
type Row struct {
	Node     *Node
	Depth    int
	Expanded bool
	Parent   string
}

// ID is shorthand for the row's node id.
func (r Row) ID() string {
	if r.Node == nil {
		return ""
	}
	return r.Node.ID
}

// Visible flattens the open part of the forest in pre-order. Children of a
// node are emitted one level deeper only while that node is expandable and
// expanded; collapsed subtrees produce no rows at all. The walk uses an
// explicit stack and stops descending once maxDepth is reached; a row at the
// cap never reports Expanded.
func Visible(forest Forest, isExpanded func(string) bool, maxDepth int) []Row {
	if len(forest) == 0 {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if isExpanded == nil {
		isExpanded = func(string) bool { return false }
	}
	type frame struct {
		node   *Node
		depth  int
		parent string
	}
	rows := make([]Row, 0, len(forest))
	stack := make([]frame, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: &forest[i]})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		open := top.node.Expandable() && isExpanded(top.node.ID) && top.depth+1 < maxDepth
		rows = append(rows, Row{Node: top.node, Depth: top.depth, Expanded: open, Parent: top.parent})
		if !open {
			continue
		}
		children := top.node.Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &children[i], depth: top.depth + 1, parent: top.node.ID})
		}
	}
	return rows
}

// IndexOfRow returns the position of id among rows, or -1.
func IndexOfRow(rows []Row, id string) int {
	if id == "" {
		return -1
	}
	for i, row := range rows {
		if row.ID() == id {
			return i
		}
	}
	return -1
}
