package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/agentg/internal/ui"
	"github.com/PolarWolf314/agentg/internal/utils"
	"github.com/PolarWolf314/agentg/internal/workflows"

	"github.com/spf13/cobra"
)

var keygenRaw bool

func init() {
	keygenCmd.Flags().BoolVar(&keygenRaw, "raw", false, "print only the key, without the variable name")
}

func resetKeygenState() {
	keygenRaw = false
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new encryption key",
	Long: `Generates a random 32-byte key encoded for the ENCRYPTION_KEY variable.

The key is printed, never stored. Add it to your .env file or environment.
Everything already encrypted under another key stays unreadable with the new
one.

Examples:
  # Print a dotenv line
  agentg keygen >> .env

  # Print only the key
  agentg keygen --raw`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")

		result, err := workflows.Keygen(context.Background())
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to generate key: %v", err)
		}

		out := cmd.OutOrStdout()
		if keygenRaw {
			fmt.Fprintln(out, result.Key)
			return nil
		}
		fmt.Fprintln(out, result.EnvLine)
		if utils.IsStdoutTerminal() {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Muted.Sprint("Keep this key secret; anyone holding it can read every artifact."))
		}
		return nil
	},
}
