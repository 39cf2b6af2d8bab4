// Package scheduling_tools provides MCP tools for slot recommendation,
// conflict detection, and schedule optimization.
package scheduling_tools
