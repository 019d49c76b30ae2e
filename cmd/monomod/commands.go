package monomod

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lucaspopp0/go-monorepo-test/internal/version"
	"github.com/lucaspopp0/go-monorepo-test/pkg/aggregate"
	"github.com/lucaspopp0/go-monorepo-test/pkg/changeset"
	"github.com/lucaspopp0/go-monorepo-test/pkg/core"
	"github.com/lucaspopp0/go-monorepo-test/pkg/evaluator"
	"github.com/lucaspopp0/go-monorepo-test/pkg/filters"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
	"github.com/lucaspopp0/go-monorepo-test/pkg/ui"
	"github.com/lucaspopp0/go-monorepo-test/pkg/ui/display"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newModulesCmd(s *session) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "modules",
		Short:   MsgModulesShort,
		Long:    MsgModulesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scan, err := core.ScanRepository(s.scanOptions())
			if err != nil {
				return err
			}
			return s.render(cmd, output, display.NewModuleList(s.root, scan.Hierarchy, scan.Rules))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	return cmd
}

func newTreeCmd(s *session) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "tree",
		Short:   MsgTreeShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scan, err := core.ScanRepository(s.scanOptions())
			if err != nil {
				return err
			}
			return s.render(cmd, output, display.NewTree(types.RootID, scan.Hierarchy))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	return cmd
}

// render draws result in the --output format, falling back to output.format
func (s *session) render(cmd *cobra.Command, output string, result interface{}) error {
	if output == "" {
		output = s.cfg.Output.Format
	}
	format, err := ui.ParseFormat(output)
	if err != nil {
		return fmt.Errorf(MsgErrOutputFormat, err)
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

func newFiltersCmd(s *session) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "filters",
		Short:   MsgFiltersShort,
		Long:    MsgFiltersLong,
		Example: MsgFiltersExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = s.cfg.Output.FiltersFormat
			}
			rules, err := core.BuildFilters(s.scanOptions())
			if err != nil {
				return err
			}
			return filters.Encode(cmd.OutOrStdout(), rules, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(filters.Formats, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func newChangedCmd(s *session) *cobra.Command {
	var (
		changesFile string
		strict      bool
	)

	cmd := &cobra.Command{
		Use:     "changed [files...]",
		Short:   MsgChangedShort,
		Long:    MsgChangedLong,
		Example: MsgChangedExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, err := readChanges(cmd, args, changesFile)
			if err != nil {
				return err
			}

			glob, err := evaluator.NewGlob(s.cfg.Evaluator.CacheSize)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("strict") {
				s.cfg.Results.Strict = strict
			}

			result, err := core.DetectChanged(contextOrBackground(cmd), core.DetectOptions{
				ScanOptions: s.scanOptions(),
				Changes:     changes,
				Evaluator:   glob,
				Strict:      s.cfg.Results.Strict,
			})
			if err != nil {
				return err
			}
			return aggregate.Encode(cmd.OutOrStdout(), result.Changed)
		},
	}

	cmd.Flags().StringVar(&changesFile, "changes", "", MsgFlagChanges)
	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)
	return cmd
}

// readChanges collects the changeset from args, --changes or a piped stdin
func readChanges(cmd *cobra.Command, args []string, changesFile string) (types.Changeset, error) {
	if len(args) > 0 {
		return changeset.FromPaths(args), nil
	}

	switch changesFile {
	case "":
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			log.Debug().Msg("No changed files given")
			return types.Changeset{}, nil
		}
		return changeset.Parse(in)
	case "-":
		return changeset.Parse(cmd.InOrStdin())
	default:
		return parseFile(changesFile, MsgErrOpenChanges, changeset.Parse)
	}
}

func parseFile[T any](path, errFormat string, parse func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf(errFormat, err)
	}
	defer func() { _ = f.Close() }()
	return parse(f)
}

func newAggregateCmd(s *session) *cobra.Command {
	var (
		resultsFile string
		strict      bool
	)

	cmd := &cobra.Command{
		Use:     "aggregate",
		Short:   MsgAggregateShort,
		Long:    MsgAggregateLong,
		Example: MsgAggregateExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				result types.ChangeResult
				err    error
			)
			switch resultsFile {
			case "":
				return fmt.Errorf(MsgErrResultsNeeded)
			case "-":
				result, err = aggregate.ParseResults(cmd.InOrStdin())
			default:
				result, err = parseFile(resultsFile, MsgErrOpenResults, aggregate.ParseResults)
			}
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("strict") {
				s.cfg.Results.Strict = strict
			}

			changed, err := core.AggregateResults(s.scanOptions(), result, s.cfg.Results.Strict)
			if err != nil {
				return err
			}
			return aggregate.Encode(cmd.OutOrStdout(), changed)
		},
	}

	cmd.Flags().StringVar(&resultsFile, "results", "", MsgFlagResults)
	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       MsgVersionShort,
		GroupID:     "misc",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Annotations:           map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// contextOrBackground guards commands run without ExecuteContext
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
