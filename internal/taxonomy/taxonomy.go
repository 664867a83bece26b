// Package taxonomy defines the boundary between texo and the external
// taxonomy engine. The extraction core sees engine objects only through the
// narrow interfaces declared here: identity, abstractness, and a display
// name. Loading, XML parsing, and XBRL semantic validation all live on the
// far side of this boundary.
package taxonomy

import "context"

// Arc-role URIs the extractor queries. These are the wire-level relationship
// categories of the XBRL 2.1, Dimensions 1.0, and Formula 1.0 specifications.
const (
	ArcroleParentChild        = "http://www.xbrl.org/2003/arcrole/parent-child"
	ArcroleHypercubeDimension = "http://xbrl.org/int/dim/arcrole/hypercube-dimension"
	ArcroleDimensionDomain    = "http://xbrl.org/int/dim/arcrole/dimension-domain"
	ArcroleDomainMember       = "http://xbrl.org/int/dim/arcrole/domain-member"
	ArcroleAssertionSet       = "http://xbrl.org/arcrole/2008/assertion-set"
	ArcroleVariableSet        = "http://xbrl.org/arcrole/2008/variable-set"
	ArcroleVariableSetFilter  = "http://xbrl.org/arcrole/2008/variable-set-filter"
)

// DimensionArcroles returns the three dimensional arc-roles in their fixed
// processing order. The order drives merge determinism downstream.
func DimensionArcroles() []string {
	return []string{
		ArcroleHypercubeDimension,
		ArcroleDimensionDomain,
		ArcroleDomainMember,
	}
}

// FormulaArcroles returns the formula arc-roles in their fixed processing order.
func FormulaArcroles() []string {
	return []string{
		ArcroleAssertionSet,
		ArcroleVariableSet,
		ArcroleVariableSetFilter,
	}
}

// Object is one engine-owned taxonomy object. Implementations must be
// comparable (pointer receivers) because formula traversal tracks the
// current descent path by object identity.
type Object interface {
	// QName returns the object's qualified name, or "" when the object has
	// no schema-level identity (formula resources, broken references).
	QName() string
	// LocalName returns the display name: a concept's local name, or a
	// formula object's element type such as "valueAssertion".
	LocalName() string
	// XLinkLabel returns the xlink label, or "" for plain concepts.
	XLinkLabel() string
	// IsAbstract reports whether the concept is a pure grouping node.
	IsAbstract() bool
}

// Relationship is one directed arc between two engine objects. Either
// endpoint may be nil when the underlying reference did not resolve.
type Relationship interface {
	From() Object
	To() Object
}

// RelationshipSet is the engine's answer to one arc-role query, optionally
// narrowed to a single extended link role.
type RelationshipSet interface {
	// Relationships returns the arcs in document order.
	Relationships() []Relationship
	// LinkRoleURIs returns the extended link roles present in this set.
	LinkRoleURIs() []string
	// FromObject returns the outgoing arcs of the given object.
	FromObject(o Object) []Relationship
}

// Concept is one row of the concepts table handed to the presentation layer.
type Concept struct {
	QName             string
	Name              string
	Type              string
	SubstitutionGroup string
	PeriodType        string
	Balance           string
	Abstract          bool
}

// Source is a loaded taxonomy. A valid Source handle is the precondition for
// the whole extraction; obtaining one is the only fatal step in the pipeline.
type Source interface {
	// Concepts returns every declared concept in document order.
	Concepts() []Concept
	// RelationshipSet returns the arcs for an arc-role, narrowed to one
	// extended link role when linkRole is non-empty. It returns nil when
	// the taxonomy has no such relationships.
	RelationshipSet(arcRole, linkRole string) RelationshipSet
	// RootFormulaObjects returns the formula objects with no incoming arc
	// under any formula arc-role.
	RootFormulaObjects() []Object
}

// Loader produces a Source from an engine-specific location. A load failure
// aborts the extraction; the core never swallows it.
type Loader interface {
	Load(ctx context.Context, path string) (Source, error)
}
