package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	catfacterrors "github.com/princespaghetti/catfact/internal/errors"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for bash, zsh or fish.

Bash:

  $ source <(catfact completion bash)

  # To load completions for each session, execute once:
  $ catfact completion bash > /etc/bash_completion.d/catfact

Zsh:

  $ catfact completion zsh > "${fpath[1]}/_catfact"

  # You will need to start a new shell for this setup to take effect.

Fish:

  $ catfact completion fish > ~/.config/fish/completions/catfact.fish`,
	ValidArgs: []string{"bash", "zsh", "fish"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      runCompletion,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	if err := writeCompletion(cmd.Root(), args[0], cmd.OutOrStdout()); err != nil {
		Error(cmd.ErrOrStderr(), "%v", err)
		os.Exit(catfacterrors.ExitConfigError)
	}
	return nil
}

// writeCompletion renders the completion script for shell to w.
func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	var err error
	switch shell {
	case "bash":
		err = root.GenBashCompletion(w)
	case "zsh":
		err = root.GenZshCompletion(w)
	case "fish":
		err = root.GenFishCompletion(w, true)
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
	if err != nil {
		return fmt.Errorf("generate %s completion: %w", shell, err)
	}
	return nil
}
