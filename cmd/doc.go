// Package cmd implements the agentg command line.
//
// Commands are thin: they parse flags, build a workflows.Runtime from the
// layered configuration, call one workflow and format its result. All
// business logic lives in internal/workflows.
package cmd
