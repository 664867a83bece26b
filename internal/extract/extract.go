// Package extract orchestrates one full metadata extraction over a loaded
// taxonomy: the concepts table, the presentation forest, the unified
// dimensional forest, and the formula hierarchies. Everything here is
// skip-and-continue; the only fatal failure happened earlier, when the
// taxonomy source was loaded.
package extract

import (
	"context"
	"sort"

	"github.com/vk/texo/internal/ctxlog"
	"github.com/vk/texo/internal/diag"
	"github.com/vk/texo/internal/formula"
	"github.com/vk/texo/internal/hierarchy"
	"github.com/vk/texo/internal/taxonomy"
)

// Options tunes one extraction run.
type Options struct {
	// MaxDepth caps formula graph descent. Values below one mean
	// formula.DefaultMaxDepth.
	MaxDepth int
	// Observer receives diagnostic events. Nil means discard.
	Observer diag.Observer
}

// Extract runs the whole pipeline against a source and returns the in-memory
// structures the presentation layer consumes.
func Extract(ctx context.Context, src taxonomy.Source, opts Options) *Result {
	logger := ctxlog.FromContext(ctx)
	obs := opts.Observer
	if obs == nil {
		obs = diag.Nop{}
	}

	res := &Result{
		Concepts: src.Concepts(),
	}
	logger.Info("Concepts extracted.", "count", len(res.Concepts))

	res.Presentation = buildCategory(ctx, src, []string{taxonomy.ArcroleParentChild}, false, obs)
	logger.Info("Presentation relationships processed.", "roots", res.Presentation.Len())

	res.Dimensions = buildCategory(ctx, src, taxonomy.DimensionArcroles(), true, obs)
	logger.Info("Dimensions processed.", "roots", res.Dimensions.Len())

	res.Formulas = walkFormulas(ctx, src, opts.MaxDepth, obs)
	logger.Info("Formulas processed.", "roots", res.Formulas.Len())

	return res
}

// buildCategory builds and merges the forests of one category of arc-roles.
// perLinkRole selects the dimensional flavor: one build per extended link
// role, parents tagged with the role tail. Arc-roles merge in the order
// given; link roles merge in sorted order so repeated runs agree.
func buildCategory(ctx context.Context, src taxonomy.Source, arcRoles []string, perLinkRole bool, obs diag.Observer) *hierarchy.Hierarchy {
	unified := hierarchy.New()

	for _, arcRole := range arcRoles {
		actx := ctxlog.With(ctx, "arcrole", arcRole)
		rs := src.RelationshipSet(arcRole, "")
		if rs == nil || len(rs.Relationships()) == 0 {
			obs.EmptyScope(actx, arcRole, "")
			continue
		}

		var scopes []hierarchy.Scope
		if perLinkRole {
			roles := append([]string(nil), rs.LinkRoleURIs()...)
			sort.Strings(roles)
			for _, elr := range roles {
				scopes = append(scopes, hierarchy.Scope{ArcRole: arcRole, LinkRole: elr})
			}
		} else {
			scopes = []hierarchy.Scope{{ArcRole: arcRole}}
		}

		for _, scope := range scopes {
			sctx := actx
			srs := rs
			if scope.LinkRole != "" {
				sctx = ctxlog.With(actx, "link_role", scope.LinkRole)
				srs = src.RelationshipSet(arcRole, scope.LinkRole)
				if srs == nil {
					obs.EmptyScope(sctx, arcRole, scope.LinkRole)
					continue
				}
			}

			edges := hierarchy.CollectEdges(sctx, scope, srs, obs)
			m := hierarchy.BuildParentChildMap(edges)
			built := hierarchy.Build(sctx, scope, m, m.Roots(), obs)
			unified.Merge(built)
		}
	}
	return unified
}

// walkFormulas accumulates every root formula object's hierarchy across the
// three formula arc-roles, in their fixed order, into one forest keyed by
// root label.
func walkFormulas(ctx context.Context, src taxonomy.Source, maxDepth int, obs diag.Observer) *formula.Forest {
	logger := ctxlog.FromContext(ctx)

	roots := src.RootFormulaObjects()
	logger.Debug("Root formula objects found.", "count", len(roots))

	forest := formula.NewForest()
	walker := formula.NewWalker(maxDepth, obs)

	for _, arcRole := range taxonomy.FormulaArcroles() {
		actx := ctxlog.With(ctx, "arcrole", arcRole)
		rs := src.RelationshipSet(arcRole, "")
		if rs == nil {
			obs.EmptyScope(actx, arcRole, "")
			continue
		}
		for _, root := range roots {
			out := forest.GetOrCreate(rootLabel(root))
			walker.Walk(actx, root, rs, out)
		}
	}
	return forest
}

// rootLabel keys a root's output: the xlink label, or the type for the odd
// unlabeled root.
func rootLabel(o taxonomy.Object) string {
	if l := o.XLinkLabel(); l != "" {
		return l
	}
	return o.LocalName()
}
