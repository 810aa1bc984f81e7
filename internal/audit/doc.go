// Package audit records mutations of the encrypted store.
//
// Entries are appended as JSON Lines to the configured audit log
// (agentg-audit.jsonl by default). Each entry carries:
//   - Timestamp (UTC, microseconds)
//   - Session id, one per process
//   - Operator as user@host
//   - Operation name and the affected profile or page filenames
//
// Entries never contain conversation text, prompt text or page content.
//
// Audit logging is best-effort. Callers surface a failed write as a warning
// and carry on.
package audit
