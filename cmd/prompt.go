package cmd

import (
	"context"
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"
	"github.com/PolarWolf314/agentg/internal/ui"
	"github.com/PolarWolf314/agentg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	promptSetFile string

	// PromptCmd is the top-level prompt command.
	PromptCmd = &cobra.Command{
		Use:   "prompt",
		Short: "Show or replace the encrypted system prompt",
		Long: `The system prompt is stored encrypted (system_prompt.md.enc by default) and
loaded once at the start of every session. A session cannot start without it.

Examples:
  # Replace the prompt from a file
  agentg prompt set --file prompt.md

  # Replace the prompt from stdin
  cat prompt.md | agentg prompt set

  # Print the decrypted prompt
  agentg prompt show`,
	}
)

func init() {
	promptSetCmd.Flags().StringVarP(&promptSetFile, "file", "f", "", "read the prompt from a file instead of stdin")

	PromptCmd.AddCommand(promptShowCmd)
	PromptCmd.AddCommand(promptSetCmd)
}

func resetPromptState() {
	promptSetFile = ""
}

var promptShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the decrypted system prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting prompt show command")

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		result, err := workflows.ShowPrompt(context.Background(), rt)
		if err != nil {
			if errors.Is(err, kerrors.ErrPromptNotFound) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s No system prompt yet. Run %s to create one.\n",
					ui.Cross(), ui.Code.Sprint("agentg prompt set --file prompt.md"))
			}
			return Logger.ErrorfAndReturn("Failed to load system prompt: %v", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), ui.EnsureNewline(result.Text))
		return nil
	},
}

var promptSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Encrypt and store a new system prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting prompt set command")

		text, err := readInput(cmd, promptSetFile)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read prompt: %v", err)
		}

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		spinner, cleanup := startSpinner(cmd.OutOrStdout(), "Encrypting system prompt...")
		defer cleanup()

		result, err := workflows.SetPrompt(context.Background(), rt, workflows.SetPromptOptions{Text: string(text)})
		if err != nil {
			spinner.FinalMSG = fmt.Sprintf("%s Failed to store system prompt: %v", ui.Cross(), err)
			return Logger.ErrorfAndReturn("Failed to store system prompt: %v", err)
		}

		spinner.FinalMSG = fmt.Sprintf("%s System prompt saved to %s %s",
			ui.Check(), ui.Path.Sprint(result.Path), ui.Muted.Sprintf("%d bytes", result.Bytes))
		return nil
	},
}
