package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	catfacterrors "github.com/princespaghetti/catfact/internal/errors"
	"github.com/princespaghetti/catfact/internal/factclient"
)

var (
	scheduleDelay int
	scheduleJSON  bool
)

// scheduleCmd represents the schedule command.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Fetch a fact after a delay",
	Long: `Schedule a single delayed fetch and wait for its result.

The fetch starts once --delay milliseconds have elapsed. Its outcome, a fact
or "no fact available", is printed when the request settles.

Examples:
  catfact schedule --delay 1000
  catfact schedule --delay 500 --json`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().IntVarP(&scheduleDelay, "delay", "d", 1000, "Delay in milliseconds before fetching")
	scheduleCmd.Flags().BoolVar(&scheduleJSON, "json", false, "Output in JSON format")
}

// ScheduleOutput represents the structured output of the schedule command.
type ScheduleOutput struct {
	URL     string            `json:"url"`
	DelayMS int               `json:"delay_ms"`
	Result  factclient.Result `json:"result"`
}

func runSchedule(cmd *cobra.Command, args []string) error {
	if scheduleDelay < 0 {
		Error(cmd.ErrOrStderr(), "--delay: %v (got %d)", catfacterrors.ErrInvalidDelay, scheduleDelay)
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

	if !scheduleJSON {
		Info(cmd.OutOrStdout(), "Fetching a fact in %dms...", scheduleDelay)
	}

	result := scheduleAndWait(cmd.Context(), sess.client, scheduleDelay)
	output := ScheduleOutput{
		URL:     sess.client.URL(),
		DelayMS: scheduleDelay,
		Result:  result,
	}

	if scheduleJSON {
		if err := JSON(cmd.OutOrStdout(), output); err != nil {
			Error(cmd.ErrOrStderr(), "Failed to encode JSON: %v", err)
			os.Exit(catfacterrors.ExitGeneralError)
		}
	} else {
		printScheduleHuman(cmd.OutOrStdout(), output)
	}

	if !result.OK() {
		os.Exit(catfacterrors.ExitFetchError)
	}

	return nil
}

// scheduleAndWait schedules one delayed fetch and blocks until its callback
// delivers the result.
func scheduleAndWait(ctx context.Context, client *factclient.Client, delayMS int) factclient.Result {
	done := make(chan factclient.Result, 1)
	client.Call(ctx, time.Duration(delayMS)*time.Millisecond, func(r factclient.Result) {
		done <- r
	})
	return <-done
}

// printScheduleHuman prints the delayed fetch result in a human-readable format.
func printScheduleHuman(w io.Writer, output ScheduleOutput) {
	fact, ok := output.Result.Value()
	if !ok {
		_, _ = fmt.Fprintf(w, "%s no fact available\n", colorize("✗", colorRed))
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", colorize("✓", colorGreen), fact)
}
