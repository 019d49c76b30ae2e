package monomod

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Detect which nested modules of a monorepo changed"
	MsgModulesShort    = "List the modules of the repository"
	MsgModulesLong     = "List every directory holding a manifest file, with its parent module, direct children and filter patterns."
	MsgTreeShort       = "Show how the modules nest inside each other"
	MsgFiltersShort    = "Print the path filter of every module"
	MsgChangedShort    = "Print the modules touched by a set of changed files"
	MsgAggregateShort  = "Turn external filter results into changed modules"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Version output
	MsgVersionFormat = "monomod version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand     = "no command specified"
	MsgErrResolveRoot   = "failed to resolve repository root: %w"
	MsgErrOpenChanges   = "failed to open changed files: %w"
	MsgErrOpenResults   = "failed to open evaluator results: %w"
	MsgErrOutputFormat  = "invalid --output: %w"
	MsgErrResultsNeeded = "--results is required"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot           = "Repository root to scan"
	MsgFlagConfig         = "Config file (default: .monomod.toml in the repository root)"
	MsgFlagEnvFile        = "Env file with MONOMOD_* settings (default: .monomod.env in the repository root)"
	MsgFlagManifest       = "Manifest file name or glob marking a module root"
	MsgFlagIgnore         = "Directory name globs to skip (repeatable, replaces the configured list)"
	MsgFlagFollowSymlinks = "Follow symbolic links to directories"
	MsgFlagOutput         = "Output format: auto, term, text or json"
	MsgFlagFormat         = "Filter format: yaml, json or toml"
	MsgFlagChanges        = "File listing changed paths, or - for stdin"
	MsgFlagResults        = "JSON file with the evaluator results, or - for stdin"
	MsgFlagStrict         = "Fail when a module is missing from the evaluator results"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/changed-long.txt
	msgChangedLongRaw string
	MsgChangedLong    = strings.TrimSpace(msgChangedLongRaw)

	//go:embed msgs/changed-example.txt
	msgChangedExampleRaw string
	MsgChangedExample    = strings.TrimRight(msgChangedExampleRaw, "\n")

	//go:embed msgs/filters-long.txt
	msgFiltersLongRaw string
	MsgFiltersLong    = strings.TrimSpace(msgFiltersLongRaw)

	//go:embed msgs/filters-example.txt
	msgFiltersExampleRaw string
	MsgFiltersExample    = strings.TrimRight(msgFiltersExampleRaw, "\n")

	//go:embed msgs/aggregate-long.txt
	msgAggregateLongRaw string
	MsgAggregateLong    = strings.TrimSpace(msgAggregateLongRaw)

	//go:embed msgs/aggregate-example.txt
	msgAggregateExampleRaw string
	MsgAggregateExample    = strings.TrimRight(msgAggregateExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
