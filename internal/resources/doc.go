// Package resources provides MCP resources for exposing calendar data.
// Resources are read-only data sources that MCP clients can fetch, such as
// the full meeting list and the user roster.
package resources
