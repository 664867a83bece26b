package formula

import (
	"context"

	"github.com/vk/texo/internal/diag"
	"github.com/vk/texo/internal/taxonomy"
)

// DefaultMaxDepth bounds a formula descent when the caller does not say
// otherwise.
const DefaultMaxDepth = 100

// Walker traverses formula object graphs depth-first under a single
// arc-role's relationship set.
type Walker struct {
	maxDepth int
	obs      diag.Observer
}

// NewWalker builds a Walker. maxDepth values below one fall back to
// DefaultMaxDepth; obs may be nil.
func NewWalker(maxDepth int, obs diag.Observer) *Walker {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	if obs == nil {
		obs = diag.Nop{}
	}
	return &Walker{maxDepth: maxDepth, obs: obs}
}

// Walk visits root and its descendants under rs, accumulating into out.
// Calling Walk again with the same out and a different relationship set
// layers that arc-role's contributions onto the existing hierarchy.
func (w *Walker) Walk(ctx context.Context, root taxonomy.Object, rs taxonomy.RelationshipSet, out *Hierarchy) {
	path := make(map[taxonomy.Object]bool)
	w.visit(ctx, root, rs, out, path, 0)
}

// visit descends one object. Both guards return early with a defined partial
// result: over-depth is reported, a path revisit is silently pruned. The
// path set is entered on the way in and left on the way out, so fan-in
// across branches survives while true cycles do not.
func (w *Walker) visit(ctx context.Context, obj taxonomy.Object, rs taxonomy.RelationshipSet, out *Hierarchy, path map[taxonomy.Object]bool, depth int) {
	if depth > w.maxDepth {
		w.obs.DepthExceeded(ctx, identityKey(obj), depth)
		return
	}
	if path[obj] {
		return
	}
	path[obj] = true
	defer delete(path, obj)

	key := identityKey(obj)
	node, ok := out.Get(key)
	if !ok {
		node = &Node{Type: obj.LocalName(), Label: obj.XLinkLabel(), Children: make([]*Node, 0)}
		out.add(key, node)
	}

	for _, rel := range rs.FromObject(obj) {
		child := rel.To()
		if child == nil {
			continue
		}
		// Every child grows in its own fresh hierarchy, then hangs under
		// this node; siblings are never merged into each other.
		nested := NewHierarchy()
		w.visit(ctx, child, rs, nested, path, depth+1)
		node.Children = append(node.Children, nested.Nodes()...)
	}
}

// identityKey is the stable name of a formula object: its xlink label, or
// its type when no label exists.
func identityKey(o taxonomy.Object) string {
	if l := o.XLinkLabel(); l != "" {
		return l
	}
	return o.LocalName()
}
