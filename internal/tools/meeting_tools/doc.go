// Package meeting_tools provides MCP tools for creating meetings,
// scoring their effectiveness, and generating agenda suggestions.
package meeting_tools
