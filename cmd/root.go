package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the meetwise application
var rootCmd = &cobra.Command{
	Use:   "meetwise",
	Short: "Meeting scheduling assistant with conflict detection and analytics",
	Long: `meetwise is a meeting scheduling assistant. It detects calendar
conflicts, recommends optimal meeting slots across timezones, scores
meeting effectiveness, and analyzes team meeting workload.

It can run as:
  - An MCP (Model Context Protocol) server for AI assistants (default)
  - A standalone CLI for one-shot conflict reports`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "meetwise version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConflictsCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
