package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	config "github.com/mwantia/cookbook/internal/config/server"
	"github.com/mwantia/cookbook/pkg/db/store"
	"github.com/mwantia/cookbook/pkg/log"
	"github.com/mwantia/cookbook/pkg/query"
	"github.com/mwantia/cookbook/pkg/service"
	"golang.org/x/time/rate"
)

// Users is the user resource as seen by the handlers.
type Users interface {
	List(ctx context.Context, req query.Request) (*service.Page, error)
	Get(ctx context.Context, id int64) (store.Row, error)
	Create(ctx context.Context, in service.UserInput) (*service.CreatedUser, error)
	Update(ctx context.Context, id int64, patch service.UserPatch) (store.Row, error)
	Delete(ctx context.Context, id int64) error
}

// Recipes is the recipe resource as seen by the handlers.
type Recipes interface {
	List(ctx context.Context, req query.Request) (*service.Page, error)
	Create(ctx context.Context, authorID int64, in service.RecipeInput) (*service.CreatedRecipe, error)
}

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type Dependencies struct {
	Users   Users
	Recipes Recipes
	Health  HealthChecker
}

type Server struct {
	cfg         config.HTTPServerConfig
	defaults    query.Defaults
	logRequests bool

	deps        Dependencies
	log         log.LoggerService
	validate    *validator.Validate
	rateLimiter *rate.Limiter
	httpServer  *http.Server

	mu       sync.RWMutex
	ready    bool
	listener net.Listener
}

func NewServer(cfg *config.BaseServerConfig, deps Dependencies, logger log.LoggerService) *Server {
	limit := rate.Inf
	if cfg.HTTP.RateLimit > 0 {
		limit = rate.Limit(cfg.HTTP.RateLimit)
	}

	s := &Server{
		cfg: cfg.HTTP,
		defaults: query.Defaults{
			Sort:  query.DefaultRequest.Sort,
			Limit: cfg.Pagination.DefaultLimit,
			Page:  query.DefaultRequest.Page,
		},
		logRequests: cfg.Log.Requests,
		deps:        deps,
		log:         logger,
		validate:    newValidator(),
		rateLimiter: rate.NewLimiter(limit, cfg.HTTP.RateLimitBurst),
	}
	if s.defaults.Limit < 1 {
		s.defaults.Limit = query.DefaultRequest.Limit
	}

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTP.Address, strconv.Itoa(cfg.HTTP.Port)),
		Handler:      s.setupRoutes(),
		ReadTimeout:  config.Duration(cfg.HTTP.ReadTimeout, 10*time.Second),
		WriteTimeout: config.Duration(cfg.HTTP.WriteTimeout, 30*time.Second),
		IdleTimeout:  config.Duration(cfg.HTTP.IdleTimeout, 120*time.Second),
	}
	return s
}

// Handler returns the routed handler including all middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the bound listener address once Start has bound the port and
// the configured address before that.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start binds the configured address and serves until ctx is cancelled or
// the listener fails. The server reports ready only after the bind succeeded.
// Shutdown is left to the caller.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.ready = true
	s.mu.Unlock()
	s.log.Info("Listening on %s", listener.Addr())

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err, ok := <-errChan:
		s.SetReady(false)
		if !ok {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	}
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)
	s.log.Info("Shutting down http server...")
	return s.httpServer.Shutdown(ctx)
}
