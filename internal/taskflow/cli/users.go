package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/app"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/service"
)

type userRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUsersCommand creates the users command.
func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "users",
		Short:        "List registered accounts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.OpenStore(rootOpts.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			empty, err := db.Users().IsEmpty(cmd.Context())
			if err != nil {
				return err
			}
			if empty && rootOpts.Format == "text" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no users registered")
				return err
			}

			auth := &service.AuthService{Store: db}
			users, err := auth.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			return writeUsers(cmd.OutOrStdout(), rootOpts.Format, users)
		},
	}
}

func writeUsers(w io.Writer, format string, users []domain.User) error {
	rows := make([]userRow, len(users))
	for i, u := range users {
		rows[i] = userRow{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role), CreatedAt: u.CreatedAt}
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Email, r.Role, r.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
