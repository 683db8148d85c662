package menu

import "sort"

// Expansion tracks which branch ids are currently expanded. Membership is
// independent per id: toggling a parent never touches its descendants.
type Expansion struct {
	ids map[string]struct{}
}

// NewExpansion returns an empty set; every node starts collapsed.
func NewExpansion() *Expansion {
	return &Expansion{ids: make(map[string]struct{})}
}

// Toggle flips membership for id and returns the new state.
func (e *Expansion) Toggle(id string) bool {
	if _, ok := e.ids[id]; ok {
		delete(e.ids, id)
		return false
	}
	e.ids[id] = struct{}{}
	return true
}

// Set forces membership for id.
func (e *Expansion) Set(id string, expanded bool) {
	if expanded {
		e.ids[id] = struct{}{}
		return
	}
	delete(e.ids, id)
}

// IsExpanded is a pure membership query.
func (e *Expansion) IsExpanded(id string) bool {
	if e == nil {
		return false
	}
	_, ok := e.ids[id]
	return ok
}

// Len returns the number of expanded ids.
func (e *Expansion) Len() int {
	return len(e.ids)
}

// IDs returns the expanded ids in sorted order.
func (e *Expansion) IDs() []string {
	out := make([]string, 0, len(e.ids))
	for id := range e.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
