// Package workflows provides high-level orchestration for agentg commands.
//
// Workflows coordinate the stores (prompt, profiles, notebooks), the session
// and the audit log to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns like
// flag parsing, spinners, and output formatting.
//
// The cmd/ package is a thin layer that:
//   - Parses command-line flags and arguments
//   - Builds a Runtime from the loaded configuration
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Keygen: Generates a new ENCRYPTION_KEY
//   - InitConfig, ShowConfig: Write and display agentg.toml
//   - ShowPrompt, SetPrompt: Read and replace the encrypted system prompt
//   - ListProfiles, ShowProfile, ResetProfile, MigrateProfiles
//   - ListPages, RenderCorpus, ImportPages, AddPage, ShowPage
//   - Doctor: Runs the session startup sequence read-only
//   - Log: Reads and filters the audit log
//
// # Error Handling
//
// Workflows return sentinel errors from internal/errors, wrapped with
// context. Use errors.Is() to check for specific conditions:
//
//	result, err := workflows.ShowPrompt(ctx, rt)
//	if errors.Is(err, kerrors.ErrPromptNotFound) {
//	    // Suggest 'agentg prompt set'
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Batch workflows check it between files.
package workflows
