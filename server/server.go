package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/topicwatch/pkg/domain"
	"github.com/umputun/topicwatch/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/planner.go -pkg mocks -skip-ensure -fmt goimports . Planner
//go:generate moq -out mocks/refresher.go -pkg mocks -skip-ensure -fmt goimports . Refresher

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	store     Store
	planner   Planner
	refresher Refresher
	metrics   http.Handler
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Store is the datastore used by the api
type Store interface {
	CreateAccount(ctx context.Context, acc *domain.Account) error
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	CreateTopic(ctx context.Context, topic *domain.Topic) error
	GetTopic(ctx context.Context, id int64) (*domain.Topic, error)
	ListTopics(ctx context.Context, accountID int64) ([]domain.Topic, error)
	DeleteTopic(ctx context.Context, id int64) error
	CountCandidates(ctx context.Context, topicID int64) (int, error)
}

// Planner generates the search plan for an interest
type Planner interface {
	GenerateSearches(ctx context.Context, interest string) ([]string, error)
}

// Refresher runs one cycle for a topic on demand
type Refresher interface {
	Cycle(ctx context.Context, topicID int64) (scheduler.CycleResult, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance, metrics handler is optional
func New(cfg ConfigProvider, store Store, planner Planner, refresher Refresher, metrics http.Handler, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		store:     store,
		planner:   planner,
		refresher: refresher,
		metrics:   metrics,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("topicwatch", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /query", s.queryHandler)
		r.HandleFunc("POST /accounts", s.createAccountHandler)
		r.HandleFunc("POST /topics", s.createTopicHandler)
		r.HandleFunc("GET /topics", s.listTopicsHandler)
		r.HandleFunc("GET /topics/{id}", s.getTopicHandler)
		r.HandleFunc("DELETE /topics/{id}", s.deleteTopicHandler)
		r.HandleFunc("POST /topics/{id}/refresh", s.refreshTopicHandler)
	})

	if s.metrics != nil {
		s.router.Handle("GET /metrics", s.metrics)
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
