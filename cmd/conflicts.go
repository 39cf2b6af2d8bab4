package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/meetwise/meetwise/internal/server"
)

func newConflictsCmd() *cobra.Command {
	var (
		userID       string
		days         int
		sampleData   bool
		calendarFile string
	)

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Report scheduling conflicts for a user",
		Long: `Scan a user's calendar for the coming days and report overlapping
meetings, missing buffers between meetings, and overloaded days.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			if days <= 0 {
				return fmt.Errorf("--days must be positive")
			}

			store, err := buildStore(sampleData, calendarFile)
			if err != nil {
				return err
			}

			ctx := context.Background()
			serverContext, err := server.NewServerContext(ctx, store)
			if err != nil {
				return fmt.Errorf("failed to create server context: %w", err)
			}
			defer func() {
				_ = serverContext.Shutdown()
			}()

			start := time.Now().UTC()
			end := start.AddDate(0, 0, days)

			conflicts, err := serverContext.Detector().FindConflicts(userID, start, end)
			if err != nil {
				return fmt.Errorf("failed to detect conflicts: %w", err)
			}

			if len(conflicts) == 0 {
				log.Printf("No conflicts for %s in the next %d day(s)", userID, days)
				return nil
			}

			for i, c := range conflicts {
				log.Printf("Conflict %d [%s/%s]: %s", i+1, c.Kind, c.Severity, c.Detail)
			}
			log.Printf("Found %d conflict(s) for %s", len(conflicts), userID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID to check (required)")
	cmd.Flags().IntVar(&days, "days", 7, "Number of days ahead to scan")
	cmd.Flags().BoolVar(&sampleData, "sample-data", true, "Use the generated sample calendar")
	cmd.Flags().StringVar(&calendarFile, "calendar-file", "", "Path to a JSON calendar snapshot to load instead of sample data")

	return cmd
}
