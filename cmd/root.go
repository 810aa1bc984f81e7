package cmd

import (
	"fmt"

	"github.com/PolarWolf314/agentg/internal/configs"
	logger "github.com/PolarWolf314/agentg/internal/logging"
	"github.com/PolarWolf314/agentg/internal/workflows"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	baseDir    string
	configPath string
	envFile    string
	Logger     logger.Logger

	RootCmd = &cobra.Command{
		Use:   "agentg",
		Short: "agentg - an encrypted store for an assistant's prompt, profiles and notebooks.",
		Long: `agentg keeps everything a conversational assistant needs at rest under one key:
the system prompt, per-person profiles with their conversation history, and
a corpus of transcribed notebook pages.

The key is read from ENCRYPTION_KEY, which may be set in a .env file.

Usage:
  agentg <command> [flags]

Available Commands:
  keygen     Generate a new encryption key
  config     Write or show agentg.toml
  prompt     Show or replace the system prompt
  profiles   List, inspect, reset and migrate profiles
  notebooks  Import, add, list and render notebook pages
  doctor     Check that a session can start
  audit      Show the audit log

Run 'agentg help <command>' for more details on a specific command.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.OutOrStdout(),
				Err:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
			if debug {
				cmd.Flags().VisitAll(func(flag *pflag.Flag) {
					Logger.Debugf("Flag --%s=%s (changed=%t)", flag.Name, flag.Value.String(), flag.Changed)
				})
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			banner := figure.NewColorFigure("agentg", "alligator2", "green", true)
			fmt.Fprintln(cmd.OutOrStdout(), banner.String())
			fmt.Fprintln(cmd.OutOrStdout(), "Run 'agentg --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&baseDir, "dir", "", "base directory for relative paths (default: current directory)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to agentg.toml")
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default: .env in the base directory)")

	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(ConfigCmd)
	RootCmd.AddCommand(PromptCmd)
	RootCmd.AddCommand(ProfilesCmd)
	RootCmd.AddCommand(NotebooksCmd)
	RootCmd.AddCommand(doctorCmd)
	RootCmd.AddCommand(auditCmd)
}

// loadRuntime resolves configuration from the global flags.
func loadRuntime() (*workflows.Runtime, error) {
	cfg, err := configs.Load(configs.LoadOptions{
		BaseDir:    baseDir,
		ConfigPath: configPath,
		EnvFile:    envFile,
	})
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Profiles: %s, notebooks: %s, prompt: %s", cfg.Paths.ProfileDir, cfg.Paths.NotebookDir, cfg.Paths.SystemPrompt)
	return workflows.NewRuntime(cfg, Logger), nil
}

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	baseDir = ""
	configPath = ""
	envFile = ""
	resetConfigState()
	resetProfilesState()
	resetNotebooksState()
	resetPromptState()
	resetDoctorState()
	resetAuditState()
	resetKeygenState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed bit on every flag to prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	c.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
