// Package insight_tools provides MCP tools for meeting pattern analysis
// and team workload balancing.
package insight_tools
