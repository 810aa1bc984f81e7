package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/agentg/internal/ui"
	"github.com/PolarWolf314/agentg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	auditLimit      int
	auditReverse    bool
	auditProfile    string
	auditOperations string
	auditSince      string
	auditUntil      string
	auditJSON       bool
)

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 0, "show only the N most recent entries")
	auditCmd.Flags().BoolVarP(&auditReverse, "reverse", "r", false, "most recent first")
	auditCmd.Flags().StringVarP(&auditProfile, "profile", "p", "", "only entries for this profile")
	auditCmd.Flags().StringVar(&auditOperations, "op", "", "only these operations (comma-separated)")
	auditCmd.Flags().StringVar(&auditSince, "since", "", "only entries on or after this date (YYYY-MM-DD)")
	auditCmd.Flags().StringVar(&auditUntil, "until", "", "only entries on or before this date (YYYY-MM-DD)")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "output in JSON format")
}

func resetAuditState() {
	auditLimit = 0
	auditReverse = false
	auditProfile = ""
	auditOperations = ""
	auditSince = ""
	auditUntil = ""
	auditJSON = false
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the audit log",
	Long: `Shows who changed what in the store and when. The log records names and
counts only, never conversation text, prompt text or page content.

Examples:
  agentg audit --limit 20
  agentg audit --profile ana --op profile-saved,profile-reset
  agentg audit --since 2026-01-01 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting audit command")

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		result, err := workflows.Log(context.Background(), rt, workflows.LogOptions{
			Limit:      auditLimit,
			Reverse:    auditReverse,
			Profile:    auditProfile,
			Operations: auditOperations,
			Since:      auditSince,
			Until:      auditUntil,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read audit log: %v", err)
		}

		out := cmd.OutOrStdout()
		if auditJSON {
			return printJSON(out, result.Entries)
		}

		if len(result.Entries) == 0 {
			fmt.Fprintf(out, "%s No audit entries in %s\n", ui.Arrow(), ui.Path.Sprint(result.Path))
			return nil
		}

		for _, e := range result.Entries {
			var details []string
			if e.Profile != "" {
				details = append(details, ui.Highlight.Sprint(e.Profile))
			}
			if e.Outcome != "" {
				details = append(details, "outcome="+e.Outcome)
			}
			if e.Turns > 0 {
				details = append(details, fmt.Sprintf("turns=%d", e.Turns))
			}
			if e.FilesCount > 0 {
				details = append(details, fmt.Sprintf("files=%d", e.FilesCount))
			}
			fmt.Fprintf(out, "%s  %-18s %s %s\n",
				ui.Muted.Sprint(e.Timestamp), e.Operation, strings.Join(details, " "), ui.Muted.Sprint(e.Operator))
		}
		return nil
	},
}
