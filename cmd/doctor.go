package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/agentg/internal/ui"
	"github.com/PolarWolf314/agentg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	doctorProfile string
	doctorJSON    bool
)

func init() {
	doctorCmd.Flags().StringVarP(&doctorProfile, "profile", "p", "", "profile to open (default: the configured default)")
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
}

func resetDoctorState() {
	doctorProfile = ""
	doctorJSON = false
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that a session can start",
	Long: `Runs the session startup sequence without writing anything: loads the key,
decrypts the system prompt, resolves the profile and loads the notebook
corpus. Each stage is reported with a suggestion when something is wrong.

Exits with an error when any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting doctor command")

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		result, err := workflows.Doctor(context.Background(), rt, workflows.DoctorOptions{Profile: doctorProfile})
		if err != nil {
			return Logger.ErrorfAndReturn("Doctor failed: %v", err)
		}

		out := cmd.OutOrStdout()
		if doctorJSON {
			if err := printJSON(out, result); err != nil {
				return err
			}
		} else {
			for _, check := range result.Checks {
				marker := ui.Check()
				switch check.Status {
				case workflows.CheckWarning:
					marker = ui.Warning.Sprint("!")
				case workflows.CheckError:
					marker = ui.Cross()
				}
				fmt.Fprintf(out, "%s %s: %s\n", marker, check.Name, check.Message)
			}

			fmt.Fprintf(out, "\n%d passed, %d warnings, %d errors\n",
				result.Summary.Passed, result.Summary.Warnings, result.Summary.Errors)

			if len(result.Suggestions) > 0 {
				fmt.Fprintln(out, "\nSuggestions:")
				for _, s := range result.Suggestions {
					fmt.Fprintf(out, "  %s %s\n", ui.Arrow(), s)
				}
			}
		}

		if result.Summary.Errors > 0 {
			return fmt.Errorf("%d check(s) failed", result.Summary.Errors)
		}
		return nil
	},
}
