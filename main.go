package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"adres-api/config"
	"adres-api/logger"
	"adres-api/metrics"
	"adres-api/routes"
	"adres-api/sorgu"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("config yüklenemedi")
	}

	log := logger.New(os.Stdout, cfg.Env, cfg.LogLevel)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := newRouter(cfg, log, reg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// upstream zaman aşımından uzun olmalı
		WriteTimeout: cfg.Upstream.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("upstream", cfg.Upstream.URL).Msg("🚀 Sunucu çalışıyor")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe hata")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown hata")
	} else {
		log.Info().Msg("Sunucu düzgün kapatıldı.")
	}
}

// newRouter wires client, service, metrics and routes for cfg.
func newRouter(cfg config.Config, log zerolog.Logger, reg *prometheus.Registry) *mux.Router {
	m := metrics.New(reg)

	client := sorgu.NewClient(cfg.ClientConfig(),
		sorgu.WithClientLogger(log.With().Str("component", "upstream").Logger()),
		sorgu.WithClientRecorder(m),
	)
	svc := sorgu.NewService(client,
		sorgu.WithLogger(log.With().Str("component", "sorgu").Logger()),
		sorgu.WithRecorder(m),
	)

	r := mux.NewRouter()
	routes.RegisterRoutes(r, routes.Deps{
		Lookup:     svc,
		Metrics:    m,
		Logger:     log,
		Version:    cfg.Version,
		CORSOrigin: cfg.CORSOrigin,
	})
	return r
}
