// Package cli implements the command-line interface for the lakescan tool.
//
// # Overview
//
// The lakescan CLI scans a Databricks workspace REST API and writes a
// consolidated metadata summary. It is designed for platform teams taking
// inventory of workspaces they administer: what compute exists, what data
// objects are registered, what jobs run, and what the notebooks contain.
//
// # Commands
//
// scan - Scan a workspace:
//
//	lakescan scan [--workspace-url URL] [--output FILE] [--format json|yaml|table]
//
// Collects clusters (with installed libraries), SQL warehouses, Unity
// Catalog tables, jobs (with recent runs), and notebooks (with detected
// languages and magic commands) into one summary document. Each section
// fails independently; the summary is always written.
//
// version - Print version information:
//
//	lakescan version
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//
// # Output Formats
//
// JSON (default):
//   - Machine-parseable, the standard report artifact
//
// YAML:
//   - Human-readable, preserves structure
//
// Table:
//   - Flattened key/value view for terminal inspection
//
// # Environment Variables
//
//	LAKESCAN_CONFIG         Path to the credentials config file
//	LAKESCAN_WORKSPACE_URL  Workspace base URL
//	LAKESCAN_OUTPUT         Output file path
//	LAKESCAN_FORMAT         Output format
//	LAKESCAN_LOG_LEVEL      Log verbosity
//	LOG_LEVEL               Fallback log verbosity
//
// # Exit Codes
//
//	0  Success (including scans with non-fatal section failures)
//	1  Fatal error (authorization rejected, workspace resolution failed,
//	   invalid arguments, or the summary could not be written)
package cli
