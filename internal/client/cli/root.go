package cli

import (
	"bufio"

	"github.com/dmitrijs2005/todoauth/internal/client/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the login CLI.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Log in to a todo authorization server",
		Long: `todo talks to a todo authorization server: it checks credentials,
obtains session tokens, and provisions credential files for new servers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(app.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = app.host
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = app.timeout
			}

			app.config = cfg
			app.reader = bufio.NewReader(cmd.InOrStdin())
			app.out = cmd.OutOrStdout()
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "config file path (default <user config dir>/todo/config.json)")
	cmd.PersistentFlags().StringVar(&app.host, "host", "", "login server URL, e.g. http://127.0.0.1:4242/")
	cmd.PersistentFlags().DurationVar(&app.timeout, "timeout", 0, "HTTP request timeout")
	cmd.PersistentFlags().BoolVar(&app.passwordStdin, "password-stdin", false, "read the password from standard input")

	cmd.AddCommand(NewTestLoginCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewProvisionCmd(app))

	return cmd
}
