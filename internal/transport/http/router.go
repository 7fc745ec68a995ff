// Package http is the REST façade described in spec §6. It is a thin
// adapter: every handler below does nothing but decode/validate,
// call into engine.Book, and encode — the matching logic itself lives
// entirely in internal/engine.
package http

import (
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"lob/internal/engine"
)

// Server wires engine.Book behind chi's router and the middleware
// stack the teacher repo's cmd/server established: request ID, real
// IP, a structured request logger, and panic recovery.
type Server struct {
	book     *engine.Book
	log      *zap.Logger
	ids      idGenerator
	onTrade  func([]engine.Trade)
	registry *prometheus.Registry
	metrics  *httpMetrics
}

// NewServer constructs the REST adapter. onTrade, if non-nil, is
// called with the trades produced by a POST /api/orders that matched
// (it is not called when the order produced no trades), after the
// book's lock has been released — this is the decoupled-notification
// hook spec §5 requires (never invoked while holding the book's gate).
// registry is the same registry the caller passed to
// engine.Book.RegisterMetrics, so /metrics can gather both the book's
// counters and this adapter's request metrics from one place.
func NewServer(book *engine.Book, log *zap.Logger, onTrade func([]engine.Trade), registry *prometheus.Registry) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	metrics := newHTTPMetrics()
	metrics.Register(registry)
	return &Server{book: book, log: log, onTrade: onTrade, registry: registry, metrics: metrics}
}

// Routes builds the handler tree for the REST API described in spec §6.
func (s *Server) Routes() nethttp.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.zapLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(3 * time.Second))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		// rs/cors answers preflights with 204 unless told otherwise.
		OptionsSuccessStatus: nethttp.StatusOK,
	}).Handler)

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP)
	r.Get("/api/orderbook", s.handleOrderBook)
	r.Get("/api/trades", s.handleTrades)
	r.Post("/api/orders", s.handlePlaceOrder)
	r.Get("/api/market-summary", s.handleMarketSummary)

	return r
}

// zapLogger replaces the teacher's middleware.Logger (which writes
// plain text via the stdlib logger) with one that emits structured
// fields through zap, matching the rest of the pack's services, and
// also feeds the route/status/duration into the HTTP request metrics
// (spec §4.6).
func (s *Server) zapLogger(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		duration := time.Since(start)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.observe(route, strconv.Itoa(ww.Status()), duration)

		s.log.Info("http_request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", duration),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
