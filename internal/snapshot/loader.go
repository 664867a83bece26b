package snapshot

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/texo/internal/ctxlog"
	"github.com/vk/texo/internal/fsutil"
	"github.com/vk/texo/internal/taxonomy"
)

// Loader reads snapshot files into an in-memory taxonomy.Source. It
// implements taxonomy.Loader; a failure here is the fatal boundary of the
// whole extraction.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a snapshot loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load parses every .hcl file under path (or path itself when it is a file)
// and translates the merged declarations into a Source. Files merge in
// lexical path order.
func (l *Loader) Load(ctx context.Context, path string) (taxonomy.Source, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to locate snapshot files under %q: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no snapshot files found under %q", path)
	}
	logger.Debug("Snapshot files located.", "count", len(files))

	merged := &File{}
	for _, name := range files {
		f, diags := l.parser.ParseHCLFile(name)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse snapshot file %q: %w", name, diags)
		}
		var file File
		if diags := gohcl.DecodeBody(f.Body, nil, &file); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode snapshot file %q: %w", name, diags)
		}
		merged.Concepts = append(merged.Concepts, file.Concepts...)
		merged.Objects = append(merged.Objects, file.Objects...)
		merged.Relationships = append(merged.Relationships, file.Relationships...)
	}

	src, err := translate(merged)
	if err != nil {
		return nil, err
	}
	logger.Info("Taxonomy snapshot loaded.",
		"files", len(files),
		"concepts", len(merged.Concepts),
		"objects", len(merged.Objects),
		"relationships", len(merged.Relationships))
	return src, nil
}

// translate turns merged declarations into a MemSource. Arc endpoints
// resolve against formula objects by label first, then concepts by qualified
// name; an unresolved reference becomes a nil endpoint, which the extraction
// core skips and reports rather than failing on.
func translate(file *File) (*taxonomy.MemSource, error) {
	src := taxonomy.NewMemSource()

	concepts := make(map[string]*taxonomy.MemObject)
	for _, c := range file.Concepts {
		if c.QName == "" {
			return nil, fmt.Errorf("concept block with empty qname")
		}
		if _, ok := concepts[c.QName]; ok {
			return nil, fmt.Errorf("duplicate concept %q", c.QName)
		}

		abstract, err := boolAttr(c.Abstract)
		if err != nil {
			return nil, fmt.Errorf("concept %q: invalid abstract value: %w", c.QName, err)
		}

		name := c.Name
		if name == "" {
			name = localPart(c.QName)
		}
		concepts[c.QName] = taxonomy.NewMemObject(c.QName, name, "", abstract)
		src.AddConcept(taxonomy.Concept{
			QName:             c.QName,
			Name:              name,
			Type:              c.Type,
			SubstitutionGroup: c.SubstitutionGroup,
			PeriodType:        c.PeriodType,
			Balance:           c.Balance,
			Abstract:          abstract,
		})
	}

	objects := make(map[string]*taxonomy.MemObject)
	for _, o := range file.Objects {
		if o.Label == "" {
			return nil, fmt.Errorf("object block %q with empty label", o.Type)
		}
		if _, ok := objects[o.Label]; ok {
			return nil, fmt.Errorf("duplicate formula object %q", o.Label)
		}
		objects[o.Label] = taxonomy.NewMemObject("", o.Type, o.Label, false)
	}

	resolve := func(ref string) taxonomy.Object {
		if o, ok := objects[ref]; ok {
			return o
		}
		if c, ok := concepts[ref]; ok {
			return c
		}
		// Typed nil would survive the interface nil checks downstream.
		return nil
	}

	for _, r := range file.Relationships {
		if r.ArcRole == "" {
			return nil, fmt.Errorf("relationship block without arcrole (from %q to %q)", r.From, r.To)
		}
		src.AddRelationship(r.ArcRole, r.LinkRole, resolve(r.From), resolve(r.To))
	}

	return src, nil
}

// boolAttr reads an optional boolean attribute, converting compatible cty
// values the way the engine's own exporters write them.
func boolAttr(v *cty.Value) (bool, error) {
	if v == nil || v.IsNull() {
		return false, nil
	}
	converted, err := convert.Convert(*v, cty.Bool)
	if err != nil {
		return false, err
	}
	return converted.True(), nil
}

// localPart returns the segment after the namespace prefix of a qname.
func localPart(qname string) string {
	if i := strings.LastIndex(qname, ":"); i >= 0 {
		return qname[i+1:]
	}
	return qname
}
