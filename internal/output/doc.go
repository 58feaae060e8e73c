// Package output renders wbpeek results to the terminal.
//
// The package offers a small API for printing colored messages, the recent
// runs table, run configs and variance reports, with automatic color
// detection and a plain fallback for non-terminal environments.
//
// Features:
//   - Automatic terminal detection
//   - NO_COLOR environment variable support
//   - Config output as text, JSON or YAML
//   - Test-friendly with custom writers
//
// Example usage:
//
//	printer := output.NewPrinter()
//	printer.PrintRuns(table)
//	printer.Error("Failed to fetch runs: %v", err)
package output
