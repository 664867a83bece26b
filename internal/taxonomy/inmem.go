package taxonomy

// MemObject is the in-memory Object used by the snapshot loader and by
// tests. Identity is the struct pointer, so the same declared object must be
// reused for every arc that references it.
type MemObject struct {
	qname      string
	localName  string
	xlinkLabel string
	abstract   bool
}

// NewMemObject builds an in-memory taxonomy object.
func NewMemObject(qname, localName, xlinkLabel string, abstract bool) *MemObject {
	return &MemObject{
		qname:      qname,
		localName:  localName,
		xlinkLabel: xlinkLabel,
		abstract:   abstract,
	}
}

func (o *MemObject) QName() string      { return o.qname }
func (o *MemObject) LocalName() string  { return o.localName }
func (o *MemObject) XLinkLabel() string { return o.xlinkLabel }
func (o *MemObject) IsAbstract() bool   { return o.abstract }

// memRel is one stored arc together with its scope.
type memRel struct {
	arcRole  string
	linkRole string
	from     Object
	to       Object
}

func (r *memRel) From() Object { return r.from }
func (r *memRel) To() Object   { return r.to }

// MemSource is an in-memory Source populated arc by arc. The snapshot loader
// translates parsed files into one, and tests build them directly.
type MemSource struct {
	concepts []Concept
	rels     []*memRel
}

// NewMemSource returns an empty in-memory taxonomy.
func NewMemSource() *MemSource {
	return &MemSource{}
}

// AddConcept appends one concept row. Document order is preserved.
func (s *MemSource) AddConcept(c Concept) {
	s.concepts = append(s.concepts, c)
}

// AddRelationship appends one arc. Nil endpoints are stored as-is; the
// extraction core is responsible for skipping them.
func (s *MemSource) AddRelationship(arcRole, linkRole string, from, to Object) {
	s.rels = append(s.rels, &memRel{arcRole: arcRole, linkRole: linkRole, from: from, to: to})
}

// Concepts implements Source.
func (s *MemSource) Concepts() []Concept {
	return s.concepts
}

// RelationshipSet implements Source. An empty linkRole matches every
// extended link role of the arc-role.
func (s *MemSource) RelationshipSet(arcRole, linkRole string) RelationshipSet {
	var matched []*memRel
	for _, r := range s.rels {
		if r.arcRole != arcRole {
			continue
		}
		if linkRole != "" && r.linkRole != linkRole {
			continue
		}
		matched = append(matched, r)
	}
	if len(matched) == 0 {
		return nil
	}
	return &memSet{rels: matched}
}

// RootFormulaObjects implements Source: every object that appears in a
// formula arc but never as a target, in first-seen order.
func (s *MemSource) RootFormulaObjects() []Object {
	var order []Object
	seen := make(map[Object]bool)
	targets := make(map[Object]bool)

	for _, arcRole := range FormulaArcroles() {
		for _, r := range s.rels {
			if r.arcRole != arcRole {
				continue
			}
			for _, o := range []Object{r.from, r.to} {
				if o == nil || seen[o] {
					continue
				}
				seen[o] = true
				order = append(order, o)
			}
			if r.to != nil {
				targets[r.to] = true
			}
		}
	}

	var roots []Object
	for _, o := range order {
		if !targets[o] {
			roots = append(roots, o)
		}
	}
	return roots
}

// memSet is the RelationshipSet over a filtered slice of stored arcs.
type memSet struct {
	rels []*memRel
}

func (m *memSet) Relationships() []Relationship {
	out := make([]Relationship, len(m.rels))
	for i, r := range m.rels {
		out[i] = r
	}
	return out
}

func (m *memSet) LinkRoleURIs() []string {
	var order []string
	seen := make(map[string]bool)
	for _, r := range m.rels {
		if seen[r.linkRole] {
			continue
		}
		seen[r.linkRole] = true
		order = append(order, r.linkRole)
	}
	return order
}

func (m *memSet) FromObject(o Object) []Relationship {
	var out []Relationship
	for _, r := range m.rels {
		if r.from == o {
			out = append(out, r)
		}
	}
	return out
}
