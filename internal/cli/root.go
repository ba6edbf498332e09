// Package cli provides the command-line interface for catfact.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (will be set by build flags in production).
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "catfact",
	Short: "Fetch random cat facts",
	Long: `catfact retrieves random facts from a JSON endpoint and keeps an ordered
history of every fact fetched during the session.

Settings come from the environment (CATFACT_URL, CATFACT_TIMEOUT,
CATFACT_LOG_LEVEL, CATFACT_LOG_FORMAT), optionally loaded from a .env file,
and can be overridden with the global flags below.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "catfact version %s\n", Version)
		_, _ = fmt.Fprintf(out, "  commit: %s\n", GitCommit)
		_, _ = fmt.Fprintf(out, "  built:  %s\n", BuildDate)
	},
}

func init() {
	globals.bind(rootCmd.PersistentFlags())
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and handles errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
