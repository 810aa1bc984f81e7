// Package logger provides leveled logging for agentg commands and stores.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info messages
//   - --debug: Shows all messages including debug details
//
// Warnings and errors are always shown. The stores use warnings for
// partial-failure conditions such as a skipped notebook page or a profile
// that fell back to defaults.
//
// # Log Methods
//
//	Logger.Infof()          // Shown with --verbose or --debug
//	Logger.Debugf()         // Shown only with --debug
//	Logger.Warnf()          // Always shown
//	Logger.Errorf()         // Always shown
//	Logger.ErrorfAndReturn() // Debug-logs and returns the error
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d pages", count)
//
// Tests set Out and Err to a bytes.Buffer to assert on warnings.
package logger
