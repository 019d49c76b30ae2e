package types

// ExcludePrefix marks a pattern as an exclusion in evaluator input
const ExcludePrefix = "!"

// FilterRule is the include/exclude glob set of one module
type FilterRule struct {
	// ID is the module the rule belongs to
	ID ModulePath `json:"id" yaml:"id"`

	// Include matches the module's whole subtree
	Include string `json:"include" yaml:"include"`

	// Excludes holds one subtree glob per direct child, in child path order
	Excludes []string `json:"excludes" yaml:"excludes"`
}

// Patterns returns the evaluator form of the rule: the include pattern
// followed by every exclude pattern prefixed with "!".
func (r FilterRule) Patterns() []string {
	patterns := make([]string, 0, 1+len(r.Excludes))
	patterns = append(patterns, r.Include)
	for _, ex := range r.Excludes {
		patterns = append(patterns, ExcludePrefix+ex)
	}
	return patterns
}

// ChangeResult maps a rule id to whether the changeset touched that rule
type ChangeResult map[string]bool

// Changeset is an ordered, de-duplicated list of normalized
// repository-relative file paths.
type Changeset []string
