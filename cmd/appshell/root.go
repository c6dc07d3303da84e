package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// globalFlags override the environment configuration for one invocation.
type globalFlags struct {
	apiURL    string
	store     string
	logLevel  string
	ephemeral bool
}

// NewRootCmd creates the root command for the appshell CLI.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "appshell",
		Short: "Knowledge card application shell",
		Long: `appshell drives a session against the knowledge card API.

Every invocation restores the persisted token, validates it against the
backend and then runs the requested command. The serve command exposes the
same session behind a guarded HTTP shell.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "backend base URL (overrides API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&flags.store, "store", "", "token store: file, redis, mongo or memory (overrides TOKEN_STORE)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	cmd.PersistentFlags().BoolVar(&flags.ephemeral, "ephemeral", false, "keep the token in memory for this invocation only")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newLoginCmd(flags))
	cmd.AddCommand(newRegisterCmd(flags))
	cmd.AddCommand(newLogoutCmd(flags))
	cmd.AddCommand(newWhoamiCmd(flags))
	cmd.AddCommand(newStatusCmd(flags))
	cmd.AddCommand(newRoutesCmd(flags))
	cmd.AddCommand(newCardsCmd(flags))
	cmd.AddCommand(newNotebooksCmd(flags))
	cmd.AddCommand(newMediaCmd(flags))

	return cmd
}

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
