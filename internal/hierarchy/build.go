package hierarchy

import (
	"context"

	"github.com/vk/texo/internal/diag"
)

// BuildParentChildMap folds clean edges into a scope's adjacency map. Both
// endpoints are vivified on first reference, the child's parent link is
// recorded, and the child is appended to the parent's ordered children.
func BuildParentChildMap(edges []Edge) *ParentChildMap {
	m := newParentChildMap()
	for _, e := range edges {
		parent := m.get(e.Parent)
		parent.abstract = e.ParentAbstract

		child := m.get(e.Child)
		child.abstract = e.ChildAbstract
		child.parent = e.Parent

		parent.addChild(e.Child)
	}
	return m
}

// Build materializes the forest for the given root names. The input edge set
// may contain cycles; the output never does. Each descent carries a
// path-visited set that is entered on the way down and left on the way up,
// so a node reached again through a different branch is rebuilt (fan-in
// preserved), while a node already on the current path is skipped (cycle
// broken).
func Build(ctx context.Context, scope Scope, m *ParentChildMap, roots []string, obs diag.Observer) *Hierarchy {
	h := New()
	path := make(map[string]bool)
	for _, name := range roots {
		if node := buildNode(ctx, scope, m, name, path, obs); node != nil {
			h.Add(node)
		}
	}
	return h
}

// buildNode returns the subtree rooted at name, or nil when name is already
// on the current descent path.
func buildNode(ctx context.Context, scope Scope, m *ParentChildMap, name string, path map[string]bool, obs diag.Observer) *Node {
	if path[name] {
		obs.CycleTruncated(ctx, scope.ArcRole, scope.LinkRole, name)
		return nil
	}
	path[name] = true
	defer delete(path, name)

	node := &Node{Name: name, Children: make([]*Node, 0)}

	e, ok := m.lookup(name)
	if !ok {
		// A root only ever referenced by name still yields a leaf.
		return node
	}
	node.Abstract = e.abstract

	for _, childName := range e.children {
		if child := buildNode(ctx, scope, m, childName, path, obs); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}
