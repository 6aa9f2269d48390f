package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dshills/userorders/internal/config"
	"github.com/dshills/userorders/internal/storage"
	"github.com/dshills/userorders/pkg/types"
)

// ServiceName is reported by the root endpoint
const ServiceName = "User and Order API"

// Service is the subset of the service layer the HTTP API calls
type Service interface {
	CreateUser(ctx context.Context, in types.UserCreate) (*types.User, error)
	GetUser(ctx context.Context, userID int64) (*types.User, error)
	ListUsers(ctx context.Context, page types.Page) ([]types.User, error)
	GetUserOrders(ctx context.Context, userID int64) ([]types.Order, error)
	CreateOrder(ctx context.Context, in types.OrderCreate) (*types.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*types.Order, error)
	GetOrderOwner(ctx context.Context, orderID int64) (*types.User, error)
	ListOrders(ctx context.Context, page types.Page) ([]types.Order, error)
	Status(ctx context.Context) (*storage.Stats, error)
}

// Options configures a Server. Zero values fall back to config.Default().
type Options struct {
	HTTP      config.HTTPConfig
	RateLimit config.RateLimitConfig
	Logger    *slog.Logger
	// Registry receives the HTTP collectors and backs /metrics. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry
	Version  string
}

// Server serves the users/orders REST API
type Server struct {
	service         Service
	logger          *slog.Logger
	metrics         *metrics
	limiter         *clientLimiter
	maxBodyBytes    int64
	shutdownTimeout time.Duration
	version         string

	handler    http.Handler
	httpServer *http.Server
}

// New wires routes and middleware around svc
func New(svc Service, opts Options) (*Server, error) {
	defaults := config.Default().HTTP
	httpCfg := opts.HTTP
	if httpCfg.Addr == "" {
		httpCfg.Addr = defaults.Addr
	}
	if httpCfg.ReadHeaderTimeout <= 0 {
		httpCfg.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if httpCfg.ShutdownTimeout <= 0 {
		httpCfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if httpCfg.MaxBodyBytes <= 0 {
		httpCfg.MaxBodyBytes = defaults.MaxBodyBytes
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reg := opts.Registry
	if reg == nil {
		reg = newRegistry()
	}

	m, err := newMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	limiter, err := newClientLimiter(opts.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	s := &Server{
		service:         svc,
		logger:          logger,
		metrics:         m,
		limiter:         limiter,
		maxBodyBytes:    httpCfg.MaxBodyBytes,
		shutdownTimeout: httpCfg.ShutdownTimeout,
		version:         opts.Version,
	}

	mux := http.NewServeMux()
	s.routes(mux, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	// Outermost first. Nothing below withRequestID may swap the request,
	// or the matched pattern is lost to the access log and metrics.
	s.handler = withRequestID(s.withAccessLog(s.withMetrics(s.withRateLimit(s.withBodyLimit(mux)))))

	s.httpServer = &http.Server{
		Addr:              httpCfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: httpCfg.ReadHeaderTimeout,
	}
	return s, nil
}

func (s *Server) routes(mux *http.ServeMux, metricsHandler http.Handler) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", metricsHandler)

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("GET /users/{id}/orders", s.handleGetUserOrders)

	mux.HandleFunc("POST /orders", s.handleCreateOrder)
	mux.HandleFunc("GET /orders", s.handleListOrders)
	mux.HandleFunc("GET /orders/{id}", s.handleGetOrder)
	mux.HandleFunc("GET /orders/{id}/user", s.handleGetOrderOwner)

	mux.HandleFunc("/", s.handleNotFound)
}

// Handler returns the full middleware chain, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("http server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		err := s.httpServer.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
			return
		}
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		s.logger.Info("http server stopped")
		return <-errCh
	case err := <-errCh:
		return err
	}
}
