package hierarchy

import (
	"strings"

	"github.com/vk/texo/internal/taxonomy"
)

// Scope identifies one hierarchy build: an arc-role, optionally narrowed to a
// single extended link role.
type Scope struct {
	ArcRole  string
	LinkRole string
}

// roleTag derives the bracketed parent prefix from the link role URI tail,
// e.g. ".../role/Balance" yields "[Balance] ". Unscoped builds carry no tag.
func (s Scope) roleTag() string {
	if s.LinkRole == "" {
		return ""
	}
	tail := s.LinkRole
	if i := strings.LastIndex(tail, "/"); i >= 0 {
		tail = tail[i+1:]
	}
	return "[" + tail + "] "
}

// ParentName renders an object's name in parent position. Link-role-scoped
// builds tag the local name with the role so the same concept can head
// different trees under different roles; unscoped builds use the full
// qualified name.
func (s Scope) ParentName(o taxonomy.Object) string {
	if s.LinkRole == "" {
		return o.QName()
	}
	return s.roleTag() + o.LocalName()
}

// ChildName renders an object's name in child position. Children are never
// tagged: the same concept is a bare child in one place and a tagged parent
// elsewhere.
func (s Scope) ChildName(o taxonomy.Object) string {
	if s.LinkRole == "" {
		return o.QName()
	}
	return o.LocalName()
}
