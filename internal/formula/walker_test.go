package formula

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/texo/internal/ctxlog"
	"github.com/vk/texo/internal/diag"
	"github.com/vk/texo/internal/taxonomy"
)

func testCtx() context.Context {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func obj(typ, label string) *taxonomy.MemObject {
	return taxonomy.NewMemObject("", typ, label, false)
}

func TestWalk_BuildsNestedHierarchy(t *testing.T) {
	t.Parallel()

	set := obj("assertionSet", "as_1")
	va := obj("valueAssertion", "va_1")
	vb := obj("valueAssertion", "va_2")

	src := taxonomy.NewMemSource()
	src.AddRelationship(taxonomy.ArcroleAssertionSet, "", set, va)
	src.AddRelationship(taxonomy.ArcroleAssertionSet, "", set, vb)

	out := NewHierarchy()
	w := NewWalker(0, nil)
	w.Walk(testCtx(), set, src.RelationshipSet(taxonomy.ArcroleAssertionSet, ""), out)

	require.Equal(t, []string{"as_1"}, out.Keys())
	root, _ := out.Get("as_1")
	assert.Equal(t, "assertionSet", root.Type)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "va_1", root.Children[0].Label)
	assert.Equal(t, "va_2", root.Children[1].Label)
}

func TestWalk_CycleStopsDescent(t *testing.T) {
	t.Parallel()

	a := obj("assertionSet", "as_a")
	b := obj("valueAssertion", "va_b")

	src := taxonomy.NewMemSource()
	src.AddRelationship(taxonomy.ArcroleVariableSet, "", a, b)
	src.AddRelationship(taxonomy.ArcroleVariableSet, "", b, a)

	out := NewHierarchy()
	w := NewWalker(0, nil)
	w.Walk(testCtx(), a, src.RelationshipSet(taxonomy.ArcroleVariableSet, ""), out)

	root, ok := out.Get("as_a")
	require.True(t, ok)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "va_b", root.Children[0].Label)
	assert.Empty(t, root.Children[0].Children, "revisit of as_a must be pruned")
}

func TestWalk_DiamondFanInPreserved(t *testing.T) {
	t.Parallel()

	root := obj("assertionSet", "as_r")
	left := obj("valueAssertion", "va_l")
	right := obj("valueAssertion", "va_r")
	shared := obj("conceptName", "f_shared")

	src := taxonomy.NewMemSource()
	src.AddRelationship(taxonomy.ArcroleVariableSet, "", root, left)
	src.AddRelationship(taxonomy.ArcroleVariableSet, "", root, right)
	src.AddRelationship(taxonomy.ArcroleVariableSet, "", left, shared)
	src.AddRelationship(taxonomy.ArcroleVariableSet, "", right, shared)

	out := NewHierarchy()
	NewWalker(0, nil).Walk(testCtx(), root, src.RelationshipSet(taxonomy.ArcroleVariableSet, ""), out)

	r, _ := out.Get("as_r")
	require.Len(t, r.Children, 2)
	require.Len(t, r.Children[0].Children, 1, "shared filter under the left branch")
	require.Len(t, r.Children[1].Children, 1, "shared filter under the right branch too")
}

func TestWalk_DepthBound(t *testing.T) {
	t.Parallel()

	// A chain of 150 objects against the default cap of 100: the walk must
	// stop cleanly at the bound, not recurse away.
	const length = 150
	chain := make([]*taxonomy.MemObject, length)
	for i := range chain {
		chain[i] = obj("valueAssertion", fmt.Sprintf("va_%03d", i))
	}
	src := taxonomy.NewMemSource()
	for i := 0; i < length-1; i++ {
		src.AddRelationship(taxonomy.ArcroleVariableSet, "", chain[i], chain[i+1])
	}

	rec := &diag.Recorder{}
	out := NewHierarchy()
	NewWalker(DefaultMaxDepth, rec).Walk(testCtx(), chain[0], src.RelationshipSet(taxonomy.ArcroleVariableSet, ""), out)

	n, ok := out.Get("va_000")
	require.True(t, ok)
	depth := 0
	for len(n.Children) > 0 {
		n = n.Children[0]
		depth++
	}
	assert.Equal(t, DefaultMaxDepth, depth)
	assert.NotEmpty(t, rec.Depths)
}

func TestWalk_AccumulatesAcrossArcroles(t *testing.T) {
	t.Parallel()

	set := obj("assertionSet", "as_1")
	va := obj("valueAssertion", "va_1")
	filter := obj("conceptName", "f_1")

	src := taxonomy.NewMemSource()
	src.AddRelationship(taxonomy.ArcroleAssertionSet, "", set, va)
	src.AddRelationship(taxonomy.ArcroleVariableSetFilter, "", set, filter)

	out := NewHierarchy()
	w := NewWalker(0, nil)
	w.Walk(testCtx(), set, src.RelationshipSet(taxonomy.ArcroleAssertionSet, ""), out)
	w.Walk(testCtx(), set, src.RelationshipSet(taxonomy.ArcroleVariableSetFilter, ""), out)

	root, _ := out.Get("as_1")
	require.Len(t, root.Children, 2, "the second pass must extend the first root, not rebuild it")
	assert.Equal(t, "va_1", root.Children[0].Label)
	assert.Equal(t, "f_1", root.Children[1].Label)
}

func TestWalk_LabelFallsBackToType(t *testing.T) {
	t.Parallel()

	unlabeled := obj("parameter", "")
	child := obj("conceptName", "f_1")

	src := taxonomy.NewMemSource()
	src.AddRelationship(taxonomy.ArcroleVariableSet, "", unlabeled, child)

	out := NewHierarchy()
	NewWalker(0, nil).Walk(testCtx(), unlabeled, src.RelationshipSet(taxonomy.ArcroleVariableSet, ""), out)

	_, ok := out.Get("parameter")
	assert.True(t, ok)
}
