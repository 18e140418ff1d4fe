package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/app"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/service"
)

// NewPromoteCommand creates the promote command.
func NewPromoteCommand(rootOpts *RootOptions) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "promote <email>",
		Short: "Change an account's role",
		Long: `Set the role of the account registered under email. The new role is
carried by access tokens issued after the change, so the user must sign in
or refresh to pick it up.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.OpenStore(rootOpts.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			auth := &service.AuthService{Store: db}
			u, err := auth.PromoteUser(cmd.Context(), args[0], domain.Role(role))
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return writeUsers(cmd.OutOrStdout(), "json", []domain.User{u})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", u.Email, u.Role)
			return err
		},
	}

	cmd.Flags().StringVar(&role, "role", string(domain.RoleAdmin), "role to assign (admin|member)")

	return cmd
}
