package hierarchy

import (
	"bytes"
	"encoding/json"
)

// Node is one named vertex of a built forest. Children keep the order in
// which the taxonomy first declared them.
type Node struct {
	Name     string  `json:"name"`
	Abstract bool    `json:"abstract"`
	Children []*Node `json:"children"`
}

// Hierarchy is an insertion-ordered forest: root name to root node. Root
// order and child order drive display order downstream and must survive
// marshaling, so iteration always follows the recorded name order.
type Hierarchy struct {
	names []string
	roots map[string]*Node
}

// New returns an empty Hierarchy.
func New() *Hierarchy {
	return &Hierarchy{roots: make(map[string]*Node)}
}

// Add inserts a root node. A root with a known name replaces the stored node
// but keeps its original position.
func (h *Hierarchy) Add(root *Node) {
	if _, ok := h.roots[root.Name]; !ok {
		h.names = append(h.names, root.Name)
	}
	h.roots[root.Name] = root
}

// Get returns the root node for a name.
func (h *Hierarchy) Get(name string) (*Node, bool) {
	n, ok := h.roots[name]
	return n, ok
}

// RootNames returns the root names in insertion order.
func (h *Hierarchy) RootNames() []string {
	return append([]string(nil), h.names...)
}

// Len returns the number of roots.
func (h *Hierarchy) Len() int {
	return len(h.names)
}

// Merge folds another forest into this one, scope by scope. A root absent
// here is inserted wholesale; a root already present has the other root's
// children appended to its own. No de-duplication is attempted: a child
// contributed by two scopes appears twice, which mirrors how each scope
// declared it. Flattening those duplicates is a presentation concern.
func (h *Hierarchy) Merge(other *Hierarchy) {
	for _, name := range other.names {
		incoming := other.roots[name]
		existing, ok := h.roots[name]
		if !ok {
			h.Add(incoming)
			continue
		}
		existing.Children = append(existing.Children, incoming.Children...)
	}
}

// MarshalJSON renders the forest as a JSON object whose keys appear in
// insertion order. encoding/json sorts map keys, so the object is assembled
// by hand.
func (h *Hierarchy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range h.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(h.roots[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
