package hierarchy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forest(roots ...*Node) *Hierarchy {
	h := New()
	for _, r := range roots {
		h.Add(r)
	}
	return h
}

func TestMerge_InsertsAbsentRootsWholesale(t *testing.T) {
	t.Parallel()

	left := forest(&Node{Name: "A"})
	right := forest(&Node{Name: "B", Children: []*Node{{Name: "C"}}})

	left.Merge(right)

	require.Equal(t, []string{"A", "B"}, left.RootNames())
	b, _ := left.Get("B")
	require.Len(t, b.Children, 1)
	assert.Equal(t, "C", b.Children[0].Name)
}

func TestMerge_ExtendsChildrenWithoutDeduplication(t *testing.T) {
	t.Parallel()

	left := forest(&Node{Name: "A", Children: []*Node{{Name: "X"}}})
	right := forest(&Node{Name: "A", Children: []*Node{{Name: "X"}}})

	left.Merge(right)

	a, _ := left.Get("A")
	require.Len(t, a.Children, 2, "both scope contributions must be kept")
	assert.Equal(t, "X", a.Children[0].Name)
	assert.Equal(t, "X", a.Children[1].Name)
}

func TestMerge_KeepsScopeOrder(t *testing.T) {
	t.Parallel()

	unified := New()
	unified.Merge(forest(&Node{Name: "B"}, &Node{Name: "A"}))
	unified.Merge(forest(&Node{Name: "C"}, &Node{Name: "A"}))

	assert.Equal(t, []string{"B", "A", "C"}, unified.RootNames())
}

func TestHierarchy_MarshalJSONPreservesOrder(t *testing.T) {
	t.Parallel()

	h := forest(
		&Node{Name: "Z", Abstract: true, Children: []*Node{}},
		&Node{Name: "A", Children: []*Node{{Name: "B", Children: []*Node{}}}},
	)

	out, err := json.Marshal(h)
	require.NoError(t, err)

	want := `{"Z":{"name":"Z","abstract":true,"children":[]},` +
		`"A":{"name":"A","abstract":false,"children":[{"name":"B","abstract":false,"children":[]}]}}`
	assert.JSONEq(t, want, string(out))
	assert.Equal(t, want, string(out), "key order must be insertion order, not sorted")
}

func TestHierarchy_AddReplacesInPlace(t *testing.T) {
	t.Parallel()

	h := forest(&Node{Name: "A"}, &Node{Name: "B"})
	h.Add(&Node{Name: "A", Abstract: true})

	assert.Equal(t, []string{"A", "B"}, h.RootNames())
	a, _ := h.Get("A")
	assert.True(t, a.Abstract)
	assert.Equal(t, 2, h.Len())
}
