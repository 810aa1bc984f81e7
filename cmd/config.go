package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/agentg/internal/ui"
	"github.com/PolarWolf314/agentg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	configInitForce bool
	configShowJSON  bool

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Write or show agentg configuration",
		Long: `Manages agentg.toml, which says where the prompt, profiles, notebooks and
audit log live and how sessions behave.

Settings are layered: built-in defaults, then agentg.toml, then environment
variables (AGENTG_PROFILE_DIR, AGENTG_NOTEBOOK_DIR, AGENTG_SYSTEM_PROMPT,
AGENTG_DEFAULT_PROFILE, AGENTG_AUDIT_LOG, AGENT_G_CLEAR_HISTORY).

Examples:
  # Write agentg.toml with the default layout
  agentg config init

  # Show the effective configuration
  agentg config show`,
	}
)

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing agentg.toml")
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

func resetConfigState() {
	configInitForce = false
	configShowJSON = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write agentg.toml with the default layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		dir := baseDir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to get working directory: %v", err)
			}
			dir = wd
		}

		result, err := workflows.InitConfig(context.Background(), workflows.InitConfigOptions{
			Dir:   dir,
			Force: configInitForce,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to write config: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", ui.Check(), ui.Path.Sprint(result.Path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		result, err := workflows.ShowConfig(context.Background(), rt)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to show configuration: %v", err)
		}

		out := cmd.OutOrStdout()
		if configShowJSON {
			return printJSON(out, map[string]any{
				"paths":     result.Config.Paths,
				"session":   result.Config.Session,
				"key_valid": result.KeyErr == nil,
			})
		}

		cfg := result.Config
		fmt.Fprintln(out, "Paths:")
		fmt.Fprintf(out, "  profile_dir:    %s\n", ui.Path.Sprint(cfg.Paths.ProfileDir))
		fmt.Fprintf(out, "  notebook_dir:   %s\n", ui.Path.Sprint(cfg.Paths.NotebookDir))
		fmt.Fprintf(out, "  system_prompt:  %s\n", ui.Path.Sprint(cfg.Paths.SystemPrompt))
		fmt.Fprintf(out, "  audit_log:      %s\n", ui.Path.Sprint(cfg.Paths.AuditLog))
		fmt.Fprintln(out, "Session:")
		fmt.Fprintf(out, "  default_profile:        %s\n", ui.Highlight.Sprint(cfg.Session.DefaultProfile))
		fmt.Fprintf(out, "  clear_history_on_load:  %t\n", cfg.Session.ClearHistoryOnLoad)

		if result.KeyErr != nil {
			fmt.Fprintf(out, "%s Encryption key: %v\n", ui.Cross(), result.KeyErr)
		} else {
			fmt.Fprintf(out, "%s Encryption key: set\n", ui.Check())
		}
		return nil
	},
}
