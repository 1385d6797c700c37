package cli

import (
	"fmt"

	"github.com/dmitrijs2005/todoauth/internal/client/services"
	"github.com/spf13/cobra"
)

// NewProvisionCmd creates the provision subcommand.
func NewProvisionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "provision <username> <file>",
		Short: "Write a credential file for a new account",
		Long: `Hash a password locally and write "<username>+<hash>" to file with
owner-only permissions. Point the server's root credential setting at the
file to create the account on startup.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := app.password()
			if err != nil {
				return err
			}

			cred, err := services.NewAuthService(nil).Provision(args[0], password, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(app.out, "wrote credential for %s to %s\n", cred.Username, args[1])
			return nil
		},
	}
}
