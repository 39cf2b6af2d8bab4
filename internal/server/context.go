package server

import (
	"context"
	"sync"

	"github.com/meetwise/meetwise/internal/calendar"
	"github.com/meetwise/meetwise/internal/insight"
	"github.com/meetwise/meetwise/internal/instrumentation"
	"github.com/meetwise/meetwise/internal/logging"
	"github.com/meetwise/meetwise/internal/schedule"
)

// ServerContext holds the shared dependencies for the MCP server: the
// calendar store and the scheduling engines built on top of it.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	store       calendar.Store
	resolver    schedule.LocalTimeResolver
	detector    *schedule.Detector
	recommender *schedule.Recommender
	scorer      *insight.Scorer
	balancer    *insight.Balancer
	analyzer    *insight.Analyzer
	optimizer   *insight.Optimizer

	logger  logging.Logger
	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext wires the scheduling engines around the given store.
func NewServerContext(ctx context.Context, store calendar.Store) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	resolver := schedule.NewCachingResolver()
	detector := schedule.NewDetector(store, resolver, schedule.DefaultDetectorConfig())

	return &ServerContext{
		ctx:         shutdownCtx,
		cancel:      cancel,
		logger:      logging.DefaultLogger(),
		store:       store,
		resolver:    resolver,
		detector:    detector,
		recommender: schedule.NewRecommender(store, detector, resolver, schedule.DefaultRecommenderConfig()),
		scorer:      insight.NewScorer(insight.DefaultEffectivenessWeights()),
		balancer:    insight.NewBalancer(store, detector),
		analyzer:    insight.NewAnalyzer(store),
		optimizer:   insight.NewOptimizer(store, resolver),
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Store returns the calendar store.
func (sc *ServerContext) Store() calendar.Store {
	return sc.store
}

// Resolver returns the timezone resolver.
func (sc *ServerContext) Resolver() schedule.LocalTimeResolver {
	return sc.resolver
}

// Detector returns the conflict detector.
func (sc *ServerContext) Detector() *schedule.Detector {
	return sc.detector
}

// Recommender returns the slot recommender.
func (sc *ServerContext) Recommender() *schedule.Recommender {
	return sc.recommender
}

// Scorer returns the effectiveness scorer.
func (sc *ServerContext) Scorer() *insight.Scorer {
	return sc.scorer
}

// Balancer returns the workload balancer.
func (sc *ServerContext) Balancer() *insight.Balancer {
	return sc.balancer
}

// Analyzer returns the pattern analyzer.
func (sc *ServerContext) Analyzer() *insight.Analyzer {
	return sc.analyzer
}

// Optimizer returns the schedule optimizer.
func (sc *ServerContext) Optimizer() *insight.Optimizer {
	return sc.optimizer
}

// Logger returns the structured logger.
func (sc *ServerContext) Logger() logging.Logger {
	return sc.logger
}

// SetLogger replaces the structured logger. Must be called before the
// server starts handling requests.
func (sc *ServerContext) SetLogger(l logging.Logger) {
	if l != nil {
		sc.logger = l
	}
}

// SetMetrics attaches a metrics recorder. Safe to leave unset; tool
// handlers treat a nil recorder as a no-op.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger attaches an audit logger.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.audit = al
}

// AuditLogger returns the audit logger, or nil when audit logging is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.audit
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	sc.logger.Debug("server context shut down")
	return nil
}
