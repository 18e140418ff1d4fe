// Package cli implements taskflowctl, the operator tool that works directly
// against the TaskFlow database.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Database string
	Format   string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for taskflowctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "taskflowctl",
		Short: "TaskFlow administration",
		Long: `Administer a TaskFlow database: apply migrations, list accounts and
change roles. Run it against the same file the server uses.`,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", defaultDatabase(), "SQLite database file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewUsersCommand(opts))
	cmd.AddCommand(NewPromoteCommand(opts))

	return cmd
}

func defaultDatabase() string {
	if f := os.Getenv("TASKFLOW_DATABASE_FILE"); f != "" {
		return f
	}
	return "taskflow.db"
}
