package hierarchy

// entry is the working record for one name while a scope is being built.
type entry struct {
	abstract bool
	children []string
	childSet map[string]bool
	parent   string
}

// addChild appends a child name, ignoring re-additions under the same parent.
func (e *entry) addChild(name string) {
	if e.childSet[name] {
		return
	}
	e.childSet[name] = true
	e.children = append(e.children, name)
}

// ParentChildMap is the transient adjacency structure built once per scope
// and discarded after its forest is extracted. Names are recorded in
// first-reference order; each name is unique within the map.
type ParentChildMap struct {
	names   []string
	entries map[string]*entry
}

func newParentChildMap() *ParentChildMap {
	return &ParentChildMap{entries: make(map[string]*entry)}
}

// get returns the entry for a name, creating a default one on first
// reference. The auto-vivified default is a non-abstract leaf with no parent.
func (m *ParentChildMap) get(name string) *entry {
	if e, ok := m.entries[name]; ok {
		return e
	}
	e := &entry{childSet: make(map[string]bool)}
	m.entries[name] = e
	m.names = append(m.names, name)
	return e
}

// lookup returns the entry for a name without creating one.
func (m *ParentChildMap) lookup(name string) (*entry, bool) {
	e, ok := m.entries[name]
	return e, ok
}

// Len returns the number of distinct names.
func (m *ParentChildMap) Len() int {
	return len(m.names)
}

// Roots returns the forest roots: every name that never appears as a child,
// in first-reference order. When no such name exists (a pure ring, or every
// node is someone's child) it falls back to every name, trading duplicated
// subtrees for the guarantee that a non-empty map never yields an empty
// forest.
func (m *ParentChildMap) Roots() []string {
	isChild := make(map[string]bool)
	for _, e := range m.entries {
		for _, c := range e.children {
			isChild[c] = true
		}
	}

	var roots []string
	for _, name := range m.names {
		if !isChild[name] {
			roots = append(roots, name)
		}
	}
	if len(roots) == 0 {
		roots = append(roots, m.names...)
	}
	return roots
}
