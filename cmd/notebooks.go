package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"
	"github.com/PolarWolf314/agentg/internal/ui"
	"github.com/PolarWolf314/agentg/internal/utils"
	"github.com/PolarWolf314/agentg/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	notebooksJSON     bool
	notebooksID       string
	notebooksTitle    string
	notebooksPage     int
	notebooksFile     string
	notebooksPatterns []string

	// NotebooksCmd is the top-level notebooks command.
	NotebooksCmd = &cobra.Command{
		Use:   "notebooks",
		Short: "Import, add, list and render notebook pages",
		Long: `The notebook corpus is a directory of encrypted page transcriptions named
<notebook>___Page<number>.txt.enc. Every session loads all of them; pages
that cannot be decrypted or have malformed names are skipped with a warning.

Examples:
  # Encrypt raw transcriptions into the notebook directory
  agentg notebooks import raw_transcriptions/

  # Only import one notebook
  agentg notebooks import raw_transcriptions/ --pattern "Blue___*.txt"

  # Add a single page from stdin
  echo "Gulls over the pier." | agentg notebooks add --notebook Blue --page 3

  # List pages and print the corpus as a session sees it
  agentg notebooks list
  agentg notebooks render`,
	}
)

func init() {
	notebooksListCmd.Flags().StringVarP(&notebooksID, "notebook", "n", "", "only list pages from this notebook")
	notebooksListCmd.Flags().BoolVar(&notebooksJSON, "json", false, "output in JSON format")

	notebooksImportCmd.Flags().StringArrayVarP(&notebooksPatterns, "pattern", "p", nil, "glob selecting files in the source directory (repeatable, supports **)")

	notebooksShowCmd.Flags().StringVarP(&notebooksID, "notebook", "n", "", "notebook identifier")
	notebooksShowCmd.Flags().IntVar(&notebooksPage, "page", 0, "page number")

	notebooksAddCmd.Flags().StringVarP(&notebooksID, "notebook", "n", "", "notebook identifier (letters, digits, _)")
	notebooksAddCmd.Flags().StringVarP(&notebooksTitle, "title", "t", "", "notebook title, converted to an identifier")
	notebooksAddCmd.Flags().IntVar(&notebooksPage, "page", 0, "page number")
	notebooksAddCmd.Flags().StringVarP(&notebooksFile, "file", "f", "", "read the page from a file instead of stdin")
	notebooksAddCmd.MarkFlagsMutuallyExclusive("notebook", "title")
	_ = notebooksAddCmd.MarkFlagRequired("page")

	NotebooksCmd.AddCommand(notebooksListCmd)
	NotebooksCmd.AddCommand(notebooksRenderCmd)
	NotebooksCmd.AddCommand(notebooksImportCmd)
	NotebooksCmd.AddCommand(notebooksShowCmd)
	NotebooksCmd.AddCommand(notebooksAddCmd)
}

func resetNotebooksState() {
	notebooksJSON = false
	notebooksID = ""
	notebooksTitle = ""
	notebooksPage = 0
	notebooksFile = ""
	notebooksPatterns = nil
}

var notebooksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the pages in the corpus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting notebooks list command")

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		result, err := workflows.ListPages(context.Background(), rt, workflows.ListPagesOptions{Notebook: notebooksID})
		if err != nil {
			if errors.Is(err, kerrors.ErrNotebookDirNotFound) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s Run %s to add pages\n", ui.Arrow(), ui.Code.Sprint("agentg notebooks import <dir>"))
			}
			return Logger.ErrorfAndReturn("Failed to load notebooks: %v", err)
		}

		out := cmd.OutOrStdout()
		if notebooksJSON {
			type page struct {
				Notebook string `json:"notebook"`
				Page     int    `json:"page"`
				Filename string `json:"filename"`
			}
			type skip struct {
				Filename string `json:"filename"`
				Reason   string `json:"reason"`
			}
			pages := make([]page, 0, len(result.Pages))
			for _, p := range result.Pages {
				pages = append(pages, page{p.NotebookID, p.PageNumber, p.Filename})
			}
			skipped := make([]skip, 0, len(result.Skipped))
			for _, s := range result.Skipped {
				skipped = append(skipped, skip{s.Filename, s.Reason.Error()})
			}
			return printJSON(out, map[string]any{"dir": result.Dir, "pages": pages, "skipped": skipped})
		}

		ids := make([]string, 0, len(result.Notebooks))
		for id := range result.Notebooks {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			fmt.Fprintf(out, "%s %s\n", ui.Highlight.Sprint(id), ui.Muted.Sprintf("%d pages", result.Notebooks[id]))
			for _, p := range result.Pages {
				if p.NotebookID == id {
					fmt.Fprintf(out, "    page %-4d %s\n", p.PageNumber, ui.Path.Sprint(p.Filename))
				}
			}
		}
		for _, s := range result.Skipped {
			fmt.Fprintf(out, "%s %s %s\n", ui.Cross(), ui.Path.Sprint(s.Filename), ui.Muted.Sprint(s.Reason.Error()))
		}
		if len(result.Pages) == 0 {
			fmt.Fprintf(out, "%s No pages in %s\n", ui.Arrow(), ui.Path.Sprint(result.Dir))
		}
		return nil
	},
}

var notebooksRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the corpus exactly as a session receives it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting notebooks render command")

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		result, err := workflows.RenderCorpus(context.Background(), rt)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to render notebooks: %v", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), result.Text)
		return nil
	},
}

var notebooksImportCmd = &cobra.Command{
	Use:   "import <source-dir>",
	Short: "Encrypt raw page transcriptions into the notebook directory",
	Long: `Encrypts <notebook>___Page<number>.txt files from source-dir into the
notebook directory as .txt.enc files, replacing pages with the same name.
Files whose names do not follow the page convention are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting notebooks import command")

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		spinner, cleanup := startSpinner(cmd.OutOrStdout(), "Encrypting notebook pages...")
		defer cleanup()

		result, err := workflows.ImportPages(context.Background(), rt, workflows.ImportPagesOptions{
			SourceDir: args[0],
			Patterns:  notebooksPatterns,
		})
		if err != nil {
			spinner.FinalMSG = fmt.Sprintf("%s Import failed: %v", ui.Cross(), err)
			return Logger.ErrorfAndReturn("Failed to import pages: %v", err)
		}

		msg := fmt.Sprintf("%s Encrypted %d page(s) into %s", ui.Check(), len(result.Written), ui.Path.Sprint(rt.Config.Paths.NotebookDir))
		if len(result.Skipped) > 0 {
			names := make([]string, 0, len(result.Skipped))
			for _, s := range result.Skipped {
				names = append(names, s.Filename)
			}
			msg += fmt.Sprintf("\n%s Skipped %d file(s) with names outside the page convention:%s",
				ui.Arrow(), len(result.Skipped), utils.FormatPaths(names))
		}
		if len(result.Failed) > 0 {
			msg += fmt.Sprintf("\n%s %d file(s) failed; run with %s for details", ui.Cross(), len(result.Failed), ui.Flag.Sprint("--verbose"))
		}
		spinner.FinalMSG = msg
		return nil
	},
}

var notebooksShowCmd = &cobra.Command{
	Use:   "show [filename]",
	Short: "Decrypt and print one page",
	Long: `Prints one stored page, chosen by filename or by --notebook and --page.

Examples:
  agentg notebooks show Blue___Page007.txt.enc
  agentg notebooks show --notebook Blue --page 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting notebooks show command")

		opts := workflows.ShowPageOptions{Notebook: notebooksID, Page: notebooksPage}
		if len(args) == 1 {
			opts.Filename = args[0]
		} else if notebooksID == "" {
			return Logger.ErrorfAndReturn("give a page filename or %s and %s", ui.Flag.Sprint("--notebook"), ui.Flag.Sprint("--page"))
		}

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		page, err := workflows.ShowPage(context.Background(), rt, opts)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read page: %v", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), ui.EnsureNewline(page.Content))
		return nil
	},
}

var notebooksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Encrypt and store a single page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting notebooks add command")

		id := notebooksID
		if notebooksTitle != "" {
			id = utils.SanitizeIdentifier(notebooksTitle)
			Logger.Debugf("Notebook title %q becomes identifier %q", notebooksTitle, id)
		}
		if id == "" {
			return Logger.ErrorfAndReturn("a notebook is required: use %s or %s", ui.Flag.Sprint("--notebook"), ui.Flag.Sprint("--title"))
		}

		content, err := readInput(cmd, notebooksFile)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read page: %v", err)
		}

		rt, err := loadRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}

		result, err := workflows.AddPage(context.Background(), rt, workflows.AddPageOptions{
			Notebook: id,
			Page:     notebooksPage,
			Content:  string(content),
		})
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to store page: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s Stored %s\n", ui.Check(), ui.Path.Sprint(result.Filename))
		return nil
	},
}
