package genconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucaspopp0/go-monorepo-test/pkg/config"
	"github.com/spf13/cobra"
)

// NewCommand creates the gen-config command. root returns the resolved
// repository root once the root command has parsed its flags.
func NewCommand(root func() string) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GetDefaultConfigContent()
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			path := filepath.Join(root(), config.ConfigFileNames[0])
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf(MsgErrExists, path)
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgWritten, path)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}
