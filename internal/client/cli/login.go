package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrRejected is returned by test-login when the server refuses the
// credentials, so the process exits non-zero.
var ErrRejected = errors.New("credentials rejected")

// NewTestLoginCmd creates the test-login subcommand.
func NewTestLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "test-login [username]",
		Short: "Check whether a username and password are valid",
		Long: `Send the credentials to the server's test endpoint and report whether
they are valid. No token is issued.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.authService()
			if err != nil {
				return err
			}
			username, err := app.username(args)
			if err != nil {
				return err
			}
			password, err := app.password()
			if err != nil {
				return err
			}

			ok, err := svc.TestLogin(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(app.out, "invalid")
				return ErrRejected
			}
			fmt.Fprintln(app.out, "valid")
			return nil
		},
	}
}

// NewLoginCmd creates the login subcommand.
func NewLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Obtain a session token",
		Long: `Exchange a username and password for a signed session token and print
it. When --host is given the host is saved to the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.authService()
			if err != nil {
				return err
			}
			username, err := app.username(args)
			if err != nil {
				return err
			}
			password, err := app.password()
			if err != nil {
				return err
			}

			token, err := svc.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("host") {
				if err := app.config.Save(); err != nil {
					return fmt.Errorf("save host: %w", err)
				}
			}

			fmt.Fprintln(app.out, token)
			return nil
		},
	}
}
