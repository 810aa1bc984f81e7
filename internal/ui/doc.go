// Package ui provides semantic text formatting for CLI output.
//
// Formatters render with color when the terminal supports it and fall back
// to plain decorations when NO_COLOR is set or color is unavailable.
//
//	ui.Code.Sprint("agentg keygen")          // Commands
//	ui.Path.Sprint("user_profiles/ana.json.enc")
//	ui.Highlight.Sprint("ana")               // Profile names, notebook ids
//	ui.UserRole.Sprint("user")               // Transcript roles
//	ui.Check() + " Prompt updated"           // Status markers
//
// Without color:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - UserRole, ModelRole: [brackets]
//   - Others: no decoration
package ui
