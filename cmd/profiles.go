package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/agentg/internal/profiles"
	"github.com/PolarWolf314/agentg/internal/ui"
	"github.com/PolarWolf314/agentg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	profilesJSON     bool
	profilesShowLast int

	// ProfilesCmd is the top-level profiles command.
	ProfilesCmd = &cobra.Command{
		Use:   "profiles",
		Short: "List, inspect, reset and migrate profiles",
		Long: `Profiles hold a person's preferred name, pronouns, background context and
conversation history. They are stored encrypted as <name>.json.enc in the
profile directory. Older plaintext <name>.json files are still read and are
encrypted the next time the profile is saved, or by 'agentg profiles migrate'.

Examples:
  # List profiles
  agentg profiles list

  # Show the last 10 turns of a profile
  agentg profiles show ana --last 10

  # Clear a profile's conversation history
  agentg profiles reset ana

  # Encrypt every legacy plaintext profile
  agentg profiles migrate`,
	}
)

func init() {
	profilesListCmd.Flags().BoolVar(&profilesJSON, "json", false, "output in JSON format")
	profilesShowCmd.Flags().BoolVar(&profilesJSON, "json", false, "output in JSON format")
	profilesShowCmd.Flags().IntVarP(&profilesShowLast, "last", "n", 0, "show only the last N turns")

	ProfilesCmd.AddCommand(profilesListCmd)
	ProfilesCmd.AddCommand(profilesShowCmd)
	ProfilesCmd.AddCommand(profilesResetCmd)
	ProfilesCmd.AddCommand(profilesMigrateCmd)
}

func resetProfilesState() {
	profilesJSON = false
	profilesShowLast = 0
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List encrypted and legacy profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profiles list command")

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		result, err := workflows.ListProfiles(context.Background(), rt)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to list profiles: %v", err)
		}

		out := cmd.OutOrStdout()
		if profilesJSON {
			return printJSON(out, map[string]any{
				"dir":      result.Dir,
				"profiles": result.Profiles,
				"legacy":   result.Legacy,
				"default":  result.Default,
			})
		}

		if len(result.Profiles) == 0 && len(result.Legacy) == 0 {
			fmt.Fprintf(out, "%s No profiles in %s\n", ui.Arrow(), ui.Path.Sprint(result.Dir))
			return nil
		}

		for _, name := range result.Profiles {
			line := ui.Highlight.Sprint(name)
			if name == result.Default {
				line += " " + ui.Muted.Sprint("default")
			}
			fmt.Fprintln(out, "  "+line)
		}
		for _, name := range result.Legacy {
			fmt.Fprintf(out, "  %s %s\n", ui.Highlight.Sprint(name), ui.Warning.Sprint("plaintext"))
		}
		if len(result.Legacy) > 0 {
			fmt.Fprintf(out, "%s Run %s to encrypt plaintext profiles\n", ui.Arrow(), ui.Code.Sprint("agentg profiles migrate"))
		}
		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Decrypt and print a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profiles show command")

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		opts := workflows.ShowProfileOptions{Last: profilesShowLast}
		if len(args) == 1 {
			opts.Name = args[0]
		}

		result, err := workflows.ShowProfile(context.Background(), rt, opts)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load profile: %v", err)
		}

		out := cmd.OutOrStdout()
		if profilesJSON {
			return printJSON(out, map[string]any{
				"name":                 result.Name,
				"outcome":              result.Outcome.String(),
				"preferred_name":       result.Profile.PreferredName,
				"pronouns":             result.Profile.Pronouns,
				"context":              result.Profile.Context,
				"conversation_history": result.History,
			})
		}

		switch result.Outcome {
		case profiles.Created:
			fmt.Fprintf(out, "%s Profile %s does not exist yet\n", ui.Arrow(), ui.Highlight.Sprint(result.Name))
			return nil
		case profiles.Fallback:
			fmt.Fprintf(out, "%s Profile %s could not be read: %v\n", ui.Cross(), ui.Highlight.Sprint(result.Name), result.Cause)
			return nil
		}

		p := result.Profile
		fmt.Fprintf(out, "Name:     %s\n", ui.Highlight.Sprint(p.PreferredName))
		fmt.Fprintf(out, "Pronouns: %s\n", p.Pronouns)
		if p.Context != "" {
			fmt.Fprintf(out, "Context:  %s\n", p.Context)
		}
		if result.Outcome == profiles.LoadedLegacy {
			fmt.Fprintf(out, "Format:   %s\n", ui.Warning.Sprint("plaintext (legacy)"))
		}
		fmt.Fprintf(out, "History:  %d turns\n", len(p.History))

		if len(result.History) > 0 {
			fmt.Fprintln(out)
		}
		for _, turn := range result.History {
			label := ui.UserRole.Sprint(string(turn.Role))
			if turn.Role == profiles.RoleModel {
				label = ui.ModelRole.Sprint(string(turn.Role))
			}
			fmt.Fprintf(out, "%s %s\n", label, turn.Text)
		}
		return nil
	},
}

var profilesResetCmd = &cobra.Command{
	Use:   "reset <name>",
	Short: "Clear a profile's conversation history",
	Long: `Clears the conversation history of an existing profile and saves it
encrypted. The preferred name, pronouns and context are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profiles reset command")

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		spinner, cleanup := startSpinner(cmd.OutOrStdout(), "Resetting profile...")
		defer cleanup()

		result, err := workflows.ResetProfile(context.Background(), rt, workflows.ResetProfileOptions{Name: args[0]})
		if err != nil {
			spinner.FinalMSG = fmt.Sprintf("%s Failed to reset %s: %v", ui.Cross(), ui.Highlight.Sprint(args[0]), err)
			return Logger.ErrorfAndReturn("Failed to reset profile: %v", err)
		}

		spinner.FinalMSG = fmt.Sprintf("%s Cleared %d turns from %s", ui.Check(), result.ClearedTurns, ui.Highlight.Sprint(result.Name))
		return nil
	},
}

var profilesMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Encrypt every legacy plaintext profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profiles migrate command")

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		spinner, cleanup := startSpinner(cmd.OutOrStdout(), "Migrating legacy profiles...")
		defer cleanup()

		result, err := workflows.MigrateProfiles(context.Background(), rt)
		if err != nil {
			spinner.FinalMSG = fmt.Sprintf("%s Migration failed: %v", ui.Cross(), err)
			return Logger.ErrorfAndReturn("Failed to migrate profiles: %v", err)
		}

		switch {
		case len(result.Migrated) == 0 && len(result.Remaining) == 0:
			spinner.FinalMSG = fmt.Sprintf("%s No legacy profiles to migrate", ui.Check())
		case len(result.Remaining) == 0:
			spinner.FinalMSG = fmt.Sprintf("%s Encrypted %d profile(s)", ui.Check(), len(result.Migrated))
		default:
			spinner.FinalMSG = fmt.Sprintf("%s Encrypted %d profile(s); %d left as plaintext, see warnings",
				ui.Warning.Sprint("!"), len(result.Migrated), len(result.Remaining))
		}
		return nil
	},
}
