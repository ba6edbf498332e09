package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/princespaghetti/catfact/internal/config"
	catfacterrors "github.com/princespaghetti/catfact/internal/errors"
)

var statusJSON bool

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the resolved configuration",
	Long: `Display the settings catfact would use, without making network requests.

Shows:
  - Fact endpoint URL
  - Per-fetch timeout
  - Log level and format
  - Whether the dotenv file was found

Examples:
  catfact status
  catfact status --json`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
}

// StatusOutput represents the structured output of the status command.
type StatusOutput struct {
	URL       string        `json:"url"`
	Timeout   string        `json:"timeout"`
	LogLevel  string        `json:"log_level"`
	LogFormat string        `json:"log_format"`
	EnvFile   EnvFileStatus `json:"env_file"`
}

// EnvFileStatus represents dotenv file information.
type EnvFileStatus struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := globals.resolve(cmd.Root().PersistentFlags())
	if err != nil {
		Error(cmd.ErrOrStderr(), "Invalid configuration: %v", err)
		os.Exit(catfacterrors.ExitConfigError)
	}

	status := gatherStatus(cfg, globals.envFile)

	if statusJSON {
		if err := JSON(cmd.OutOrStdout(), status); err != nil {
			Error(cmd.ErrOrStderr(), "Failed to encode JSON: %v", err)
			os.Exit(catfacterrors.ExitGeneralError)
		}
	} else {
		printStatusHuman(cmd.OutOrStdout(), status)
	}

	return nil
}

// gatherStatus collects status information for cfg.
func gatherStatus(cfg *config.Config, envFile string) StatusOutput {
	status := StatusOutput{
		URL:       cfg.URL,
		Timeout:   "none",
		LogLevel:  cfg.LogLevel,
		LogFormat: cfg.LogFormat,
		EnvFile:   EnvFileStatus{Path: envFile},
	}
	if cfg.Timeout > 0 {
		status.Timeout = cfg.Timeout.String()
	}

	if envFile != "" {
		_, err := os.Stat(envFile)
		status.EnvFile.Exists = err == nil
	}

	return status
}

// printStatusHuman prints the status in a human-readable format.
func printStatusHuman(w io.Writer, status StatusOutput) {
	Header(w, "catfact Configuration")
	Field(w, "URL", status.URL)
	Field(w, "Timeout", status.Timeout)
	Field(w, "Log level", status.LogLevel)
	Field(w, "Log format", status.LogFormat)
	_, _ = fmt.Fprintln(w)

	Header(w, "Environment File")
	if status.EnvFile.Path == "" {
		Field(w, "Path", "(disabled)")
		return
	}
	Field(w, "Path", status.EnvFile.Path)
	Field(w, "Exists", fmt.Sprintf("%v", status.EnvFile.Exists))
}
