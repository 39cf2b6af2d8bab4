package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meetwise/meetwise/internal/server"
)

// RegisterCalendarResources registers the read-only calendar resources:
// the full meeting list and the user roster.
func RegisterCalendarResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	meetingsResource := mcp.NewResource(
		"calendar://meetings",
		"All Meetings",
		mcp.WithResourceDescription("Complete meeting calendar data"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(meetingsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleMeetings(ctx, request, sc)
	})

	usersResource := mcp.NewResource(
		"calendar://users",
		"User Profiles",
		mcp.WithResourceDescription("User profiles, timezones, and scheduling preferences"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(usersResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleUsers(ctx, request, sc)
	})

	return nil
}

// handleMeetings returns every meeting in the store, sorted by start time.
func handleMeetings(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	meetings := sc.Store().Meetings()

	jsonData, err := json.MarshalIndent(meetings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meetings: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleUsers returns the full user roster.
func handleUsers(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	users := sc.Store().Users()

	jsonData, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal users: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
