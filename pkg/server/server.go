package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	reporthandlers "github.com/coravel-fit/report-engine/pkg/handlers/report"
	enginemiddleware "github.com/coravel-fit/report-engine/pkg/server/middleware"
	"github.com/coravel-fit/report-engine/pkg/services/export"
	reportsvc "github.com/coravel-fit/report-engine/pkg/services/report"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Reports  reportsvc.Service
	Exporter *export.Exporter
}

type Config struct {
	Addr            string
	AdminToken      string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	reportHandler := reporthandlers.NewHandler(
		config.Dependencies.Reports,
		config.Dependencies.Exporter,
	)

	router := chi.NewRouter()

	router.Use(enginemiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(enginemiddleware.AdminOnly(config.AdminToken))

		r.Get("/reports", reportHandler.List)
		r.Post("/reports", reportHandler.Create)
		r.Post("/reports/generate", reportHandler.Generate)
		r.Get("/reports/{id}", reportHandler.Get)
		r.Delete("/reports/{id}", reportHandler.Delete)
		r.Get("/reports/{id}/export/csv", reportHandler.ExportCSV)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
