// Package utils provides shared helpers for agentg.
//
// # Filesystem Utilities
//
//   - WriteFileAtomic: temp file + fsync + rename, used for every artifact write
//   - FileExists / DirExists: existence checks that treat "not found" as false
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - SanitizeIdentifier: turns a notebook title into a valid page identifier
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data from standard input
//
// # Terminal Utilities
//
//   - IsTerminal / IsStdoutTerminal: terminal detection via golang.org/x/term
package utils
