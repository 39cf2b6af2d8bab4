// Package server provides the MCP server context and operational HTTP
// endpoints for the meetwise application.
//
// # Key Components
//
// ServerContext wires the calendar store and the scheduling engines
// (conflict detector, slot recommender, effectiveness scorer, workload
// balancer, pattern analyzer, schedule optimizer) into one dependency
// container shared by all MCP tools.
//
// HealthChecker exposes /healthz and /readyz endpoints for Kubernetes
// probes. MetricsServer serves Prometheus metrics on a dedicated port so
// operational metrics stay off the main application listener.
package server
