package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/expensetracker/apiserver/config"
	"github.com/expensetracker/apiserver/internal/db"
	"github.com/expensetracker/apiserver/internal/handlers"
	"github.com/expensetracker/apiserver/internal/services"
	"github.com/expensetracker/apiserver/internal/store"
	"github.com/expensetracker/apiserver/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwtSecret := strings.TrimSpace(cfg.JWTSecret)
	if jwtSecret == "" {
		_ = dbConn.Close()
		return nil, errors.New("JWT_SECRET is required")
	}

	userRepo := store.NewUserRepository(dbConn)
	expenseRepo := store.NewExpenseRepository(dbConn)

	tokens := token.NewService([]byte(jwtSecret), cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokens)
	expenseService := services.NewExpenseService(expenseRepo)

	router := NewRouter(cfg, authService, expenseService, tokens)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// NewRouter builds the chi router with the full middleware stack and all
// application routes. Split out from New so tests can mount the routes
// without a live database.
func NewRouter(cfg config.Config, authService *services.AuthService, expenseService *services.ExpenseService, tokens *token.Service) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/", handlers.Welcome)
	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, authService, tokens)
	router.Route("/expenses", func(r chi.Router) {
		handlers.ExpenseRouter(r, expenseService, handlers.RequireAuth(tokens))
	})

	return router
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
