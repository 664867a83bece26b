// Package snapshot is the HCL implementation of the taxonomy.Loader
// boundary. A snapshot is the external taxonomy engine's export of one
// loaded taxonomy: concept declarations, formula object declarations, and
// the flat list of arcs between them. texo never parses taxonomy XML itself;
// it consumes these files.
package snapshot

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Concept is a `concept "<qname>" { ... }` block.
type Concept struct {
	QName             string     `hcl:"qname,label"`
	Name              string     `hcl:"name,optional"`
	Type              string     `hcl:"type,optional"`
	SubstitutionGroup string     `hcl:"substitution_group,optional"`
	PeriodType        string     `hcl:"period_type,optional"`
	Balance           string     `hcl:"balance,optional"`
	Abstract          *cty.Value `hcl:"abstract,optional"`
}

// FormulaObject is an `object "<type>" "<label>" { }` block declaring a
// formula resource such as an assertion set or a filter.
type FormulaObject struct {
	Type  string   `hcl:"type,label"`
	Label string   `hcl:"label,label"`
	Body  hcl.Body `hcl:",remain"`
}

// Relationship is a `relationship { ... }` block: one directed arc. From and
// To reference a formula object by label or a concept by qualified name.
type Relationship struct {
	ArcRole  string `hcl:"arcrole"`
	LinkRole string `hcl:"link_role,optional"`
	From     string `hcl:"from"`
	To       string `hcl:"to"`
}

// File is the top-level structure of one snapshot file.
type File struct {
	Concepts      []*Concept       `hcl:"concept,block"`
	Objects       []*FormulaObject `hcl:"object,block"`
	Relationships []*Relationship  `hcl:"relationship,block"`
	Body          hcl.Body         `hcl:",remain"`
}
