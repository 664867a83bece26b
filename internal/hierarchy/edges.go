package hierarchy

import (
	"context"

	"github.com/vk/texo/internal/ctxlog"
	"github.com/vk/texo/internal/diag"
	"github.com/vk/texo/internal/taxonomy"
)

// Edge is one validated parent-to-child arc, already renamed for its scope.
// Edges are transient: they exist between collection and the parent-child
// map and are not retained afterwards.
type Edge struct {
	Parent         string
	Child          string
	ParentAbstract bool
	ChildAbstract  bool
}

// CollectEdges validates and normalizes a scope's relationships. A
// relationship with a missing endpoint or an endpoint without a qualified
// name is dropped and reported to the observer; dropping is never fatal.
func CollectEdges(ctx context.Context, scope Scope, rs taxonomy.RelationshipSet, obs diag.Observer) []Edge {
	logger := ctxlog.FromContext(ctx)

	rels := rs.Relationships()
	edges := make([]Edge, 0, len(rels))
	skipped := 0

	for _, rel := range rels {
		parent := rel.From()
		child := rel.To()

		if parent == nil || child == nil {
			obs.EdgeSkipped(ctx, scope.ArcRole, scope.LinkRole, diag.ReasonMissingEndpoint)
			skipped++
			continue
		}
		if parent.QName() == "" || child.QName() == "" {
			obs.EdgeSkipped(ctx, scope.ArcRole, scope.LinkRole, diag.ReasonMissingQName)
			skipped++
			continue
		}

		edges = append(edges, Edge{
			Parent:         scope.ParentName(parent),
			Child:          scope.ChildName(child),
			ParentAbstract: parent.IsAbstract(),
			ChildAbstract:  child.IsAbstract(),
		})
	}

	logger.Debug("Relationships collected.",
		"total", len(rels), "kept", len(edges), "skipped", skipped)
	return edges
}
