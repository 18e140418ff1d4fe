package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/app"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "Apply pending schema migrations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.OpenStore(rootOpts.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", rootOpts.Database)
			return err
		},
	}
}
