// Package configs resolves where agentg keeps its artifacts and how a
// session behaves.
//
// Configuration is layered, later layers winning:
//
//   - Built-in defaults (user_profiles/, notebook_context/,
//     system_prompt.md.enc, profile test_user)
//   - agentg.toml in the base directory, or the file named by --config
//   - Environment variables, optionally seeded from a .env file
//
// The encryption key is never read from the config file; it only comes from
// ENCRYPTION_KEY.
//
// Example agentg.toml:
//
//	[paths]
//	profile_dir = "user_profiles"
//	notebook_dir = "notebook_context"
//	system_prompt = "system_prompt.md.enc"
//	audit_log = "agentg-audit.jsonl"
//
//	[session]
//	default_profile = "test_user"
//	clear_history_on_load = false
package configs
