package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/techtrends/techtrends/engine/infra/monitoring"
	"github.com/techtrends/techtrends/engine/infra/server/appstate"
	"github.com/techtrends/techtrends/engine/infra/sqlite"
	"github.com/techtrends/techtrends/pkg/config"
	"github.com/techtrends/techtrends/pkg/logger"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

const (
	monitoringShutdownTimeout = 5 * time.Second
	defaultShutdownTimeout    = 5 * time.Second
)

type Server struct {
	cfg         *config.Config
	ctx         context.Context
	cancel      context.CancelFunc
	accessor    *sqlite.Accessor
	router      *gin.Engine
	monitoring  *monitoring.Service
	connMetrics metric.Registration
	httpServer  *http.Server
}

// NewServer creates a server for the configuration attached to ctx.
func NewServer(ctx context.Context) *Server {
	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		cfg:    config.FromContext(serverCtx),
		ctx:    serverCtx,
		cancel: cancel,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
}

// Handler returns the HTTP handler once dependencies are set up.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Counter returns the connection counter shared by the storage layer.
func (s *Server) Counter() *sqlite.ConnCounter {
	if s.accessor == nil {
		return nil
	}
	return s.accessor.Counter()
}

// Setup bootstraps the schema, monitoring and routes without listening.
func (s *Server) Setup() error {
	state, err := s.setupDependencies()
	if err != nil {
		return err
	}
	r, err := NewRouter(s.ctx, state, s.monitoring)
	if err != nil {
		return err
	}
	s.router = r
	return nil
}

func (s *Server) setupDependencies() (*appstate.State, error) {
	log := logger.FromContext(s.ctx)
	s.accessor = sqlite.NewAccessor(sqlite.ConfigFrom(s.cfg), sqlite.NewConnCounter())
	if err := sqlite.EnsureSchema(s.ctx, s.accessor); err != nil {
		return nil, fmt.Errorf("failed to prepare database: %w", err)
	}
	s.monitoring = monitoring.NewMonitoringServiceWithFallback(s.ctx, monitoring.ConfigFrom(s.cfg))
	if s.monitoring.IsInitialized() {
		reg, err := monitoring.RegisterConnectionMetrics(s.monitoring.Meter(), s.accessor.Counter())
		if err != nil {
			log.Warn("Failed to register connection metrics", "error", err)
		} else {
			s.connMetrics = reg
		}
	}
	deps := appstate.NewBaseDeps(sqlite.NewPostRepo(s.accessor), s.accessor.Counter())
	state, err := appstate.NewState(deps)
	if err != nil {
		return nil, fmt.Errorf("failed to create app state: %w", err)
	}
	log.Debug("Dependencies ready", "database", s.cfg.Database.Path)
	return state, nil
}

// Run sets the server up, listens and blocks until the context is canceled or
// SIGINT/SIGTERM is received, then shuts down gracefully.
func (s *Server) Run() error {
	defer s.cancel()
	if err := s.Setup(); err != nil {
		return err
	}
	defer s.cleanup()
	ln, err := (&net.ListenConfig{}).Listen(s.ctx, "tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr(), err)
	}
	s.httpServer = s.createHTTPServer()
	sigCtx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gCtx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.FromContext(s.ctx).Error("Server failed", "error", err)
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		return s.handleGracefulShutdown()
	})
	return g.Wait()
}

func (s *Server) createHTTPServer() *http.Server {
	logger.FromContext(s.ctx).Info("Starting HTTP server",
		"address", fmt.Sprintf("http://%s", s.Addr()),
	)
	return &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
}

func (s *Server) handleGracefulShutdown() error {
	log := logger.FromContext(s.ctx)
	log.Debug("Initiating graceful shutdown")
	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), timeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("Server shutdown completed successfully")
	return nil
}

func (s *Server) cleanup() {
	log := logger.FromContext(s.ctx)
	if s.connMetrics != nil {
		if err := s.connMetrics.Unregister(); err != nil {
			log.Warn("Failed to unregister connection metrics", "error", err)
		}
	}
	if s.monitoring != nil {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), monitoringShutdownTimeout)
		defer cancel()
		if err := s.monitoring.Shutdown(ctx); err != nil {
			log.Warn("Failed to shut down monitoring", "error", err)
		}
	}
}
