package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/services"
)

// Services are the collaborators the HTTP layer dispatches to.
type Services struct {
	Projects *services.ProjectService
	Contact  *services.ContactService
	Gate     auth.CredentialChecker

	// ImageDir is served under /static/images/ when set (local storage backend).
	ImageDir string
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, svcs Services) (Server, error) {
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(svcs, withConfig(cfg), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      config.Config
	startupTime time.Time
}

func withConfig(c config.Config) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(svcs Services, opts ...func(*router)) *chi.Mux {
	var rt router
	for _, opt := range opts {
		opt(&rt)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestIDMiddleware)
	chiRouter.Use(LogInternalServerErrors)

	handlers := initializeHandlers(svcs, rt)
	admin := newAdminMiddleware(svcs.Gate)

	chiRouter.Use(CORSCheckMiddleware(rt.config.AcceptedOrigins))
	chiRouter.Use(corsMiddleware(rt.config.AcceptedOrigins))

	setupRoutes(chiRouter, handlers, admin, svcs.ImageDir)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
