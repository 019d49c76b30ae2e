package monomod

import (
	"fmt"
	"path/filepath"

	"github.com/lucaspopp0/go-monorepo-test/cmd/monomod/commands/genconfig"
	"github.com/lucaspopp0/go-monorepo-test/internal/version"
	"github.com/lucaspopp0/go-monorepo-test/pkg/config"
	"github.com/lucaspopp0/go-monorepo-test/pkg/core"
	"github.com/lucaspopp0/go-monorepo-test/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// annotationNoConfig marks commands that run without loading configuration
const annotationNoConfig = "monomod/no-config"

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity      int
	root           string
	configFile     string
	envFile        string
	manifest       string
	ignore         []string
	followSymlinks bool
}

// session is the state resolved before a command runs
type session struct {
	opts globalOptions

	root string
	cfg  *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	s := &session{}

	rootCmd := &cobra.Command{
		Use:     "monomod",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging based on verbosity
			logging.SetupLogger(s.opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			if cmd.Annotations[annotationNoConfig] == "true" {
				return nil
			}
			return s.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&s.opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&s.opts.root, "root", "C", ".", MsgFlagRoot)
	flags.StringVar(&s.opts.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&s.opts.envFile, "env-file", "", MsgFlagEnvFile)
	flags.StringVar(&s.opts.manifest, "manifest", "", MsgFlagManifest)
	flags.StringSliceVar(&s.opts.ignore, "ignore", nil, MsgFlagIgnore)
	flags.BoolVar(&s.opts.followSymlinks, "follow-symlinks", false, MsgFlagFollowSymlinks)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newModulesCmd(s))
	rootCmd.AddCommand(newTreeCmd(s))
	rootCmd.AddCommand(newFiltersCmd(s))
	rootCmd.AddCommand(newChangedCmd(s))
	rootCmd.AddCommand(newAggregateCmd(s))
	rootCmd.AddCommand(genconfig.NewCommand(func() string { return s.root }))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// load resolves the repository root and merges the configuration, with
// explicitly set flags taking precedence
func (s *session) load(cmd *cobra.Command) error {
	root, err := filepath.Abs(s.opts.root)
	if err != nil {
		return fmt.Errorf(MsgErrResolveRoot, err)
	}
	s.root = root

	cfg, err := config.Load(config.LoadOptions{
		Root:       root,
		ConfigFile: s.opts.configFile,
		EnvFile:    s.opts.envFile,
	})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("manifest") {
		cfg.Discovery.Manifest = s.opts.manifest
	}
	if flags.Changed("ignore") {
		cfg.Discovery.Ignore = s.opts.ignore
	}
	if flags.Changed("follow-symlinks") {
		cfg.Discovery.FollowSymlinks = s.opts.followSymlinks
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg

	log.Debug().
		Str("root", root).
		Str("config", cfg.Source).
		Str("manifest", cfg.Discovery.Manifest).
		Msg("Configuration loaded")
	return nil
}

func (s *session) scanOptions() core.ScanOptions {
	return core.ScanOptionsFromConfig(s.cfg, s.root)
}
