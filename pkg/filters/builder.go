package filters

import (
	"github.com/lucaspopp0/go-monorepo-test/pkg/hierarchy"
	"github.com/lucaspopp0/go-monorepo-test/pkg/logging"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
)

// Build emits one rule per module in lexicographic path order
func Build(h *hierarchy.Hierarchy) []types.FilterRule {
	logger := logging.GetLogger("filters")

	rules := make([]types.FilterRule, 0, h.Len())
	for _, node := range h.Nodes() {
		rules = append(rules, RuleFor(node))
	}

	logger.Debug().Int("rules", len(rules)).Msg("Built filter rules")
	return rules
}

// RuleFor builds the rule of a single node from its direct children
func RuleFor(node *types.ModuleNode) types.FilterRule {
	excludes := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		excludes = append(excludes, child.Path.SubtreeGlob())
	}
	return types.FilterRule{
		ID:       node.Path,
		Include:  node.Path.SubtreeGlob(),
		Excludes: excludes,
	}
}

// IDs returns the rule ids in rule order
func IDs(rules []types.FilterRule) []string {
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID.ID()
	}
	return ids
}
