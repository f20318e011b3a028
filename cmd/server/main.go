package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Simplici0/cleanbid/internal/config"
	"github.com/Simplici0/cleanbid/internal/db"
	"github.com/Simplici0/cleanbid/internal/estimate"
	"github.com/Simplici0/cleanbid/internal/logger"
	"github.com/Simplici0/cleanbid/internal/migrations"
	"github.com/Simplici0/cleanbid/internal/seed"
	"github.com/Simplici0/cleanbid/internal/store"
)

type server struct {
	db    *sql.DB
	store *store.Store
	calc  *estimate.Service
	log   *zap.Logger
}

func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.New("error", "console").Fatal("failed to load config", zap.Error(err))
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = log.Sync() }()

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() || cfg.Database.Migrate {
		if err := migrations.Up(database); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	}

	stats, err := seed.Run(database, seed.Config{})
	if err != nil {
		log.Fatal("failed to seed production rates", zap.Error(err))
	}
	log.Info("seed complete", zap.Int("inserts", stats.Inserts), zap.Int("updates", stats.Updates))

	srv := &server{
		db:    database,
		store: store.New(database, log.Named("store")),
		calc:  estimate.NewService(cfg.WorkloadPolicy(), cfg.PricingPolicy(), log.Named("estimate")),
		log:   log,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", zap.String("addr", httpServer.Addr), zap.String("environment", cfg.App.Environment))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/workload", s.handleWorkload)
		r.Post("/estimate", s.handleEstimate)
		r.Post("/preview", s.handlePreview)
		r.Post("/express-load", s.handleExpressLoad)
		r.Post("/crew-wage", s.handleCrewWage)
		r.Post("/consumables", s.handleConsumables)
		r.Post("/day-porter", s.handleDayPorter)

		r.Get("/production-rates", s.handleRatesList)
		r.Post("/production-rates", s.handleRatesUpsert)
		r.Delete("/production-rates/{id}", s.handleRatesDelete)

		r.Get("/bids", s.handleBidsList)
		r.Post("/bids", s.handleBidsCreate)
		r.Get("/bids/{id}", s.handleBidDetail)
		r.Get("/bids/{id}/diff", s.handleBidDiff)
		r.Post("/bids/{id}/versions", s.handleVersionCreate)
		r.Get("/bids/{id}/versions/{n}", s.handleVersionDetail)
		r.Put("/bids/{id}/versions/{n}", s.handleVersionUpdate)
		r.Get("/bids/{id}/versions/{n}/summary", s.handleVersionSummary)
		r.Post("/bids/{id}/versions/{n}/send", s.handleVersionSend)
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
