// Package server provides the HTTP command channel, the published deals RSS feed
// and the prometheus endpoint.
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

	"github.com/umputun/dealscope/pkg/domain"
	"github.com/umputun/dealscope/pkg/metrics"
	"github.com/umputun/dealscope/pkg/repository"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/commands.go -pkg mocks -skip-ensure -fmt goimports . Commands
//go:generate moq -out mocks/seen_reader.go -pkg mocks -skip-ensure -fmt goimports . SeenReader
//go:generate moq -out mocks/review_lister.go -pkg mocks -skip-ensure -fmt goimports . ReviewLister

// authUser is the basic auth user name, only the password is configurable
const authUser = "admin"

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	commands Commands
	seen     SeenReader
	reviews  ReviewLister
	metrics  *metrics.Metrics
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Commands is the operator command set, implemented by the scheduler
type Commands interface {
	ForceScan() bool
	ToggleMode(ctx context.Context) (domain.ModeState, error)
	SetMode(ctx context.Context, autonomous bool) (domain.ModeState, error)
	AddBlacklistTerm(ctx context.Context, term string) (bool, error)
	AddManualURL(ctx context.Context, rawURL string) (bool, error)
	Approve(ctx context.Context, ref string) (bool, error)
	Reject(ctx context.Context, ref string) (bool, error)
	Status(ctx context.Context) (domain.Stats, error)
}

// SeenReader gives the recently announced deals
type SeenReader interface {
	Recent(ctx context.Context, limit int) ([]domain.SeenRecord, error)
}

// ReviewLister lists the review queue
type ReviewLister interface {
	List(ctx context.Context, f repository.ReviewFilter) ([]domain.Review, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetRSSConfig() (baseURL string, limit int)
	GetAuthPassword() string
}

// Params holds server dependencies
type Params struct {
	Config   ConfigProvider
	Commands Commands
	Seen     SeenReader
	Reviews  ReviewLister
	Metrics  *metrics.Metrics // optional, /metrics responds 404 without it
	Version  string
	Debug    bool
}

// New initializes a new server instance
func New(params Params) *Server {
	s := &Server{
		config:   params.Config,
		commands: params.Commands,
		seen:     params.Seen,
		reviews:  params.Reviews,
		metrics:  params.Metrics,
		version:  params.Version,
		debug:    params.Debug,
		router:   routegroup.New(http.NewServeMux()),
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
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	srv := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("dealscope", "umputun", s.version))
	s.router.Use(rest.Ping)
	s.router.Use(s.metrics.Middleware)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes, the api is behind basic auth when a password is set
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		if password := s.config.GetAuthPassword(); password != "" {
			r.Use(rest.BasicAuthWithUserPasswd(authUser, password))
		}
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /scan", s.scanHandler)
		r.HandleFunc("POST /mode/toggle", s.toggleModeHandler)
		r.HandleFunc("PUT /mode", s.setModeHandler)
		r.HandleFunc("POST /blacklist", s.blacklistHandler)
		r.HandleFunc("POST /manual", s.manualHandler)
		r.HandleFunc("GET /reviews", s.listReviewsHandler)
		r.HandleFunc("POST /reviews/{ref}/approve", s.approveHandler)
		r.HandleFunc("POST /reviews/{ref}/reject", s.rejectHandler)
	})

	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.Handle("GET /metrics", s.metrics.Handler())
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
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
