package ui

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ideagate/app"
	"ideagate/ports"
)

// App is the thin HTTP surface over the evaluation service and rule store.
// All policy lives in the domain; handlers only decode, delegate and encode.
type App struct {
	router  *chi.Mux
	server  *http.Server
	service *app.EvaluationService
	store   ports.RuleStore
}

// Config holds HTTP application configuration
type Config struct {
	Port string
}

// NewApp creates the HTTP application.
func NewApp(config Config, service *app.EvaluationService, store ports.RuleStore) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		store:   store,
	}
	a.setupMiddleware()
	a.setupRoutes()
	a.server = &http.Server{Addr: ":" + config.Port, Handler: a.router}
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Post("/api/evaluate", a.handleEvaluate)
	a.router.Get("/api/rules", a.handleListRules)
	a.router.Put("/api/rules", a.handleUpsertRule)
	a.router.Get("/api/rules/history", a.handleRuleHistory)
}

// Handler exposes the router for tests and embedding.
func (a *App) Handler() http.Handler {
	return a.router
}

// Start runs the HTTP server until it fails or Shutdown drains it. A
// shutdown-initiated exit returns nil.
func (a *App) Start() error {
	log.Printf("Starting ideagate API server on %s", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests to
// finish, bounded by ctx.
func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
