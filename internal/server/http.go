package server

import (
	"context"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meetwise/meetwise/internal/instrumentation"
)

const (
	// DefaultHTTPReadHeaderTimeout bounds how long a client may take to send
	// request headers.
	DefaultHTTPReadHeaderTimeout = 10 * time.Second

	// DefaultHTTPIdleTimeout closes idle keep-alive connections.
	DefaultHTTPIdleTimeout = 120 * time.Second
)

// HTTPServer serves the MCP protocol over streamable HTTP, alongside the
// health check endpoints. Metrics are served separately by MetricsServer.
type HTTPServer struct {
	mcpServer  *mcpserver.MCPServer
	httpServer *http.Server
	health     *HealthChecker
	metrics    *instrumentation.Metrics
}

// NewHTTPServer creates an HTTP server wrapping the given MCP server.
func NewHTTPServer(mcpSrv *mcpserver.MCPServer) *HTTPServer {
	return &HTTPServer{mcpServer: mcpSrv}
}

// SetHealthChecker registers the health checker whose /healthz and /readyz
// endpoints the server exposes.
func (s *HTTPServer) SetHealthChecker(h *HealthChecker) {
	s.health = h
}

// SetMetrics enables HTTP request instrumentation on the MCP endpoint.
func (s *HTTPServer) SetMetrics(m *instrumentation.Metrics) {
	s.metrics = m
}

// Start starts the HTTP server on addr. It blocks until the server stops;
// call in a goroutine for non-blocking operation.
func (s *HTTPServer) Start(addr string) error {
	mux := http.NewServeMux()

	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath("/mcp"),
	)

	var mcpHandler http.Handler = streamable
	if s.metrics != nil {
		mcpHandler = s.instrumented("/mcp", mcpHandler)
	}
	mux.Handle("/mcp", mcpHandler)

	if s.health != nil {
		s.health.RegisterHealthEndpoints(mux)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: DefaultHTTPReadHeaderTimeout,
		IdleTimeout:       DefaultHTTPIdleTimeout,
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// statusRecorder captures the response status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush passes through so the streamable transport can flush partial
// responses.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// instrumented wraps a handler with request metrics and session gauges.
func (s *HTTPServer) instrumented(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		s.metrics.IncrementActiveSessions(r.Context())
		defer s.metrics.DecrementActiveSessions(r.Context())

		next.ServeHTTP(recorder, r)

		s.metrics.RecordHTTPRequest(r.Context(), r.Method, path, recorder.status, time.Since(start))
	})
}
