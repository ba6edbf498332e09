package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	catfacterrors "github.com/princespaghetti/catfact/internal/errors"
	"github.com/princespaghetti/catfact/internal/export"
	"github.com/princespaghetti/catfact/internal/factclient"
)

var (
	fetchCount  int
	fetchJSON   bool
	fetchOutput string
)

// fetchCmd represents the fetch command.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch one or more facts",
	Long: `Fetch facts from the configured endpoint, one request at a time.

Each successful fetch is appended to the session history, which is printed
once all requests have settled. Failed requests are reported as "no fact
available" and are not recorded.

Examples:
  catfact fetch
  catfact fetch --count 3
  catfact fetch --count 5 --output facts.json
  catfact fetch --json`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().IntVarP(&fetchCount, "count", "n", 1, "Number of facts to fetch")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Output in JSON format")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "Write the history to this JSON snapshot file")
}

// FetchOutput represents the structured output of the fetch command.
type FetchOutput struct {
	URL      string              `json:"url"`
	Results  []factclient.Result `json:"results"`
	History  []string            `json:"history"`
	Found    int                 `json:"found"`
	Snapshot string              `json:"snapshot,omitempty"`
}

func runFetch(cmd *cobra.Command, args []string) error {
	if fetchCount < 1 {
		Error(cmd.ErrOrStderr(), "--count must be at least 1, got %d", fetchCount)
		os.Exit(catfacterrors.ExitConfigError)
	}

	cfg, err := globals.resolve(cmd.Root().PersistentFlags())
	if err != nil {
		Error(cmd.ErrOrStderr(), "Invalid configuration: %v", err)
		os.Exit(catfacterrors.ExitConfigError)
	}

	sess, err := newSession(cfg, nil, cmd.ErrOrStderr())
	if err != nil {
		Error(cmd.ErrOrStderr(), "Failed to set up logging: %v", err)
		os.Exit(catfacterrors.ExitConfigError)
	}

	output := fetchFacts(cmd.Context(), sess.client, fetchCount)

	if fetchOutput != "" && output.Found > 0 {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := export.NewWriter().Write(ctx, fetchOutput, sess.client.URL(), output.History); err != nil {
			Error(cmd.ErrOrStderr(), "Failed to export history: %v", err)
			os.Exit(catfacterrors.ExitExportError)
		}
		output.Snapshot = fetchOutput
	}

	if fetchJSON {
		if err := JSON(cmd.OutOrStdout(), output); err != nil {
			Error(cmd.ErrOrStderr(), "Failed to encode JSON: %v", err)
			os.Exit(catfacterrors.ExitGeneralError)
		}
	} else {
		printFetchHuman(cmd.OutOrStdout(), output)
		if missed := fetchCount - output.Found; missed > 0 && output.Found > 0 {
			Warning(cmd.OutOrStdout(), "%d of %d fetches returned no fact", missed, fetchCount)
		}
		if output.Snapshot != "" {
			Success(cmd.OutOrStdout(), "History exported to %s", output.Snapshot)
		}
	}

	if output.Found == 0 {
		os.Exit(catfacterrors.ExitFetchError)
	}

	return nil
}

// fetchFacts calls Add count times in sequence and gathers the outcome.
func fetchFacts(ctx context.Context, client *factclient.Client, count int) FetchOutput {
	output := FetchOutput{
		URL:     client.URL(),
		Results: make([]factclient.Result, 0, count),
	}

	for i := 0; i < count; i++ {
		result := client.Add(ctx)
		if result.OK() {
			output.Found++
		}
		output.Results = append(output.Results, result)
	}

	output.History = client.History()
	return output
}

// printFetchHuman prints the fetch results in a human-readable format.
func printFetchHuman(w io.Writer, output FetchOutput) {
	for i, result := range output.Results {
		fact, ok := result.Value()
		if !ok {
			_, _ = fmt.Fprintf(w, "%s [%d] no fact available\n", colorize("✗", colorRed), i+1)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s [%d] %s\n", colorize("✓", colorGreen), i+1, fact)
	}

	if len(output.Results) > 1 {
		_, _ = fmt.Fprintln(w)
		Header(w, "History")
		if len(output.History) == 0 {
			_, _ = fmt.Fprintln(w, "  (empty)")
		}
		PrintNumberedList(w, output.History)
	}
}
