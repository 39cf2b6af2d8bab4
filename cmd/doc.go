// Package cmd implements the command-line interface for meetwise.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide scheduling tools for AI assistants
//   - conflicts: Report scheduling conflicts for a user from the command line
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
