// Package filters turns a resolved module hierarchy into path-filter rules.
//
// Every module gets one rule:
//
//	a:
//	  - a/**
//	  - '!a/v2/**'
//
// The include pattern covers the module's whole subtree and there is one
// exclude pattern per direct child. Grandchildren are never listed: a file in
// a/v2/v3 is already excluded from a by the a/v2/** pattern, and a/v2's own
// rule excludes a/v2/v3/** in turn. Nesting depth is therefore unbounded
// without every ancestor enumerating all of its descendants.
//
// A file belongs to a rule when it matches the include and none of the
// excludes. The in-process evaluator in pkg/evaluator gets there by applying
// patterns in order with the last match deciding. The dorny/paths-filter
// action needs `predicate-quantifier: 'every'` for the same result: its
// default, 'some', ORs the patterns, and "!a/v2/**" then matches every path
// outside a/v2, so every module would report a change.
//
// A module at the repository root has the id "." and includes "**"; its
// excludes are the top-level modules.
package filters
