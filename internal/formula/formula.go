// Package formula walks formula object graphs (assertion sets, variable
// sets, filters) and builds nested, insertion-ordered hierarchies per root
// object. The walk is bounded twice: by the current descent path, which
// breaks cycles while preserving diamond fan-in, and by an explicit maximum
// depth, because formula networks are authored data and can nest absurdly.
package formula

import (
	"bytes"
	"encoding/json"
)

// Node is one formula object in a built hierarchy. Type is the object's
// element name, e.g. "assertionSet" or "valueAssertion"; Label is its xlink
// label when present.
type Node struct {
	Type     string  `json:"type"`
	Label    string  `json:"label,omitempty"`
	Children []*Node `json:"children"`
}

// Hierarchy is an insertion-ordered mapping from a node's identity key (its
// label, falling back to its type) to the node.
type Hierarchy struct {
	keys  []string
	nodes map[string]*Node
}

// NewHierarchy returns an empty Hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{nodes: make(map[string]*Node)}
}

// Get returns the node stored under key.
func (h *Hierarchy) Get(key string) (*Node, bool) {
	n, ok := h.nodes[key]
	return n, ok
}

// add stores a node under key on first sight; later additions are ignored.
func (h *Hierarchy) add(key string, n *Node) {
	if _, ok := h.nodes[key]; ok {
		return
	}
	h.keys = append(h.keys, key)
	h.nodes[key] = n
}

// Keys returns the identity keys in insertion order.
func (h *Hierarchy) Keys() []string {
	return append([]string(nil), h.keys...)
}

// Nodes returns the stored nodes in insertion order.
func (h *Hierarchy) Nodes() []*Node {
	out := make([]*Node, len(h.keys))
	for i, k := range h.keys {
		out[i] = h.nodes[k]
	}
	return out
}

// Len returns the number of stored nodes.
func (h *Hierarchy) Len() int {
	return len(h.keys)
}

// MarshalJSON renders the hierarchy as an object with keys in insertion order.
func (h *Hierarchy) MarshalJSON() ([]byte, error) {
	return marshalOrdered(h.keys, func(k string) (any, bool) {
		n, ok := h.nodes[k]
		return n, ok
	})
}

// Forest maps a root formula object's label to the hierarchy accumulated for
// it across every formula arc-role.
type Forest struct {
	labels  []string
	byLabel map[string]*Hierarchy
}

// NewForest returns an empty Forest.
func NewForest() *Forest {
	return &Forest{byLabel: make(map[string]*Hierarchy)}
}

// GetOrCreate returns the hierarchy for a root label, creating it on first
// use so successive arc-role passes accumulate into the same output.
func (f *Forest) GetOrCreate(label string) *Hierarchy {
	if h, ok := f.byLabel[label]; ok {
		return h
	}
	h := NewHierarchy()
	f.labels = append(f.labels, label)
	f.byLabel[label] = h
	return h
}

// Get returns the hierarchy for a root label.
func (f *Forest) Get(label string) (*Hierarchy, bool) {
	h, ok := f.byLabel[label]
	return h, ok
}

// Labels returns the root labels in insertion order.
func (f *Forest) Labels() []string {
	return append([]string(nil), f.labels...)
}

// Len returns the number of roots.
func (f *Forest) Len() int {
	return len(f.labels)
}

// MarshalJSON renders the forest as an object with keys in insertion order.
func (f *Forest) MarshalJSON() ([]byte, error) {
	return marshalOrdered(f.labels, func(k string) (any, bool) {
		h, ok := f.byLabel[k]
		return h, ok
	})
}

// marshalOrdered assembles a JSON object by hand because encoding/json sorts
// map keys and the key order here is display order.
func marshalOrdered(keys []string, lookup func(string) (any, bool)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		v, _ := lookup(k)
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
