// Package hierarchy turns the flat, possibly cyclic, possibly incomplete arc
// sets of a taxonomy into ordered, cycle-free forests of named nodes.
//
// One build runs per (arc-role, extended link role) scope: relationships are
// validated into clean edges, folded into an insertion-ordered parent-child
// map, roots are resolved, and the forest is materialized by a depth-first
// walk guarded by the current descent path. Forests from many scopes are then
// merged into a single unified Hierarchy.
//
// Node identity is the name string alone. Two engine objects that render to
// the same name are the same node; a child reached through two branches
// appears under both parents. The path guard breaks true cycles without
// collapsing that legitimate fan-in, which is why it is a per-path set and
// never a global memo.
package hierarchy
