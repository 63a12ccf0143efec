// Package httpapi exposes the owner-facing API and the public redemption
// route over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/timevault/internal/logging"
	"github.com/dmitrijs2005/timevault/internal/server/links"
	"github.com/dmitrijs2005/timevault/internal/server/users"
	"github.com/dmitrijs2005/timevault/internal/server/vaults"
	"github.com/gorilla/mux"
)

type HTTPServer struct {
	address         string
	users           *users.Service
	vaults          *vaults.Service
	links           *links.Service
	limiter         *RateLimiter
	logger          logging.Logger
	jwtSecret       []byte
	shutdownTimeout time.Duration
}

type Options struct {
	Address         string
	JWTSecret       []byte
	RateLimitRPS    float64
	RateLimitBurst  int
	ShutdownTimeout time.Duration
}

func NewHTTPServer(opts Options, l logging.Logger, us *users.Service, vs *vaults.Service, ls *links.Service) *HTTPServer {
	return &HTTPServer{
		address:         opts.Address,
		users:           us,
		vaults:          vs,
		links:           ls,
		limiter:         NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		logger:          l.With("module", "http_server"),
		jwtSecret:       opts.JWTSecret,
		shutdownTimeout: opts.ShutdownTimeout,
	}
}

// Router wires all routes. The access route is the only public one and the
// only one behind the per-IP limiter.
func (s *HTTPServer) Router() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	access := api.PathPrefix("/access").Subrouter()
	access.Use(s.limiter.Limit)
	access.HandleFunc("/{token}", s.handleAccess).Methods(http.MethodGet, http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(s.requireAuth)
	private.HandleFunc("/vault", s.handleVaultCreate).Methods(http.MethodPost)
	private.HandleFunc("/vault", s.handleVaultList).Methods(http.MethodGet)
	private.HandleFunc("/vault/{id}", s.handleVaultGet).Methods(http.MethodGet)
	private.HandleFunc("/vault/{id}/share", s.handleVaultShare).Methods(http.MethodPost)
	private.HandleFunc("/vault/{id}/logs", s.handleVaultLogs).Methods(http.MethodGet)
	private.HandleFunc("/link/{id}/revoke", s.handleLinkRevoke).Methods(http.MethodPost)
	private.HandleFunc("/link/{id}/status", s.handleLinkStatus).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the configured shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
