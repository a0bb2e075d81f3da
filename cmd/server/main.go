package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sukrithpvs/Insight/internal/config"
	"github.com/sukrithpvs/Insight/internal/engine"
	"github.com/sukrithpvs/Insight/internal/funds"
	"github.com/sukrithpvs/Insight/internal/market"
	"github.com/sukrithpvs/Insight/internal/memstore"
	"github.com/sukrithpvs/Insight/internal/repository"
	"github.com/sukrithpvs/Insight/internal/scheduler"
	"github.com/sukrithpvs/Insight/internal/server"
	"github.com/sukrithpvs/Insight/internal/watchlist"
	"github.com/sukrithpvs/Insight/pkg/logger"
)

// stores is the storage surface the application wires against. Both the
// Postgres and in-memory backends satisfy it.
type stores interface {
	engine.Store
	watchlist.Store
	market.CacheStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet.
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Insight")

	var store stores
	if cfg.DatabaseURL != "" {
		db, err := repository.NewDatabase(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
		store = db
		log.Info().Msg("Using Postgres storage")
	} else {
		store = memstore.New()
		log.Info().Msg("Using in-memory storage")
	}

	eng := engine.New(store, cfg.OpeningBalance, log)
	mkt := market.NewService(
		market.NewYahooClient(),
		store,
		time.Duration(cfg.CacheTTLMinutes)*time.Minute,
		log,
	)

	sched := scheduler.New(log)
	refresh := market.NewRefreshJob(mkt)
	if err := sched.AddJob(cfg.RefreshSchedule, refresh); err != nil {
		log.Fatal().Err(err).Msg("Failed to register market refresh job")
	}
	sched.Start()
	defer sched.Stop()

	// Prime the movers cache so the first request does not pay for a full
	// universe scan.
	go func() {
		if err := sched.RunNow(refresh); err != nil {
			log.Warn().Err(err).Msg("Initial market refresh failed")
		}
	}()

	srv := server.New(server.Config{
		Port:        cfg.Port,
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
		Engine:      eng,
		Summary:     engine.NewSummaryCalculator(eng, mkt, log),
		Market:      mkt,
		Funds:       funds.NewService(funds.NewMfapiClient(), log),
		Watchlist:   watchlist.NewService(store, mkt, log),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
