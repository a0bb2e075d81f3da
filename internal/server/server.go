// Package server exposes the HTTP API: orders, portfolio, market data,
// mutual funds, and the watchlist.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/sukrithpvs/Insight/internal/engine"
	"github.com/sukrithpvs/Insight/internal/funds"
	"github.com/sukrithpvs/Insight/internal/market"
	"github.com/sukrithpvs/Insight/internal/watchlist"
)

// Config holds server configuration
type Config struct {
	Port        int
	CORSOrigins string
	Log         zerolog.Logger

	Engine    *engine.Engine
	Summary   *engine.SummaryCalculator
	Market    *market.Service
	Funds     *funds.Service
	Watchlist *watchlist.Service
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger

	engine    *engine.Engine
	summary   *engine.SummaryCalculator
	market    *market.Service
	funds     *funds.Service
	watchlist *watchlist.Service
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		engine:    cfg.Engine,
		summary:   cfg.Summary,
		market:    cfg.Market,
		funds:     cfg.Funds,
		watchlist: cfg.Watchlist,
	}

	s.setupMiddleware(cfg.CORSOrigins)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware(corsOrigins string) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	origins := strings.Split(corsOrigins, ",")
	if corsOrigins == "" {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.handleCreateOrder)
			r.Get("/", s.handleListOrders)
			r.Get("/ticker/{ticker}", s.handleListOrdersByTicker)
			r.Post("/{id}/cancel", s.handleCancelOrder)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", s.handlePortfolioSummary)
			r.Get("/holdings", s.handleHoldings)
		})

		r.Get("/prices/{ticker}", s.handlePrice)

		r.Route("/market", func(r chi.Router) {
			r.Get("/gainers", s.handleGainers)
			r.Get("/losers", s.handleLosers)
			r.Get("/active", s.handleMostActive)
		})

		r.Get("/stocks/{ticker}", s.handleStockDetail)

		r.Route("/funds", func(r chi.Router) {
			r.Get("/", s.handleFunds)
			r.Get("/search", s.handleFundSearch)
			r.Get("/{code}", s.handleFund)
		})

		r.Route("/watchlist", func(r chi.Router) {
			r.Get("/", s.handleWatchlist)
			r.Post("/", s.handleWatchlistAdd)
			r.Delete("/{id}", s.handleWatchlistRemove)
			r.Delete("/ticker/{ticker}", s.handleWatchlistRemoveTicker)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the handler tree for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
