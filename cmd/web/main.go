package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coravel-fit/report-engine/pkg/server"
	"github.com/coravel-fit/report-engine/pkg/services/config"
	"github.com/coravel-fit/report-engine/pkg/services/export"
	reportsvc "github.com/coravel-fit/report-engine/pkg/services/report"
	"github.com/coravel-fit/report-engine/pkg/services/report/generators"
	"github.com/coravel-fit/report-engine/pkg/store/postgres"
	reportstore "github.com/coravel-fit/report-engine/pkg/store/postgres/report"
	"github.com/coravel-fit/report-engine/pkg/store/postgres/records"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the report engine web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file (environment variables are used when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.AdminToken == "" {
		return fmt.Errorf("admin_token is required to gate the report routes")
	}

	db, err := postgres.NewDB(postgres.Settings{DSN: cfg.DatabaseDSN})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	reports, err := reportstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}
	operational, err := records.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create record store: %w", err)
	}

	registry := generators.NewDefaultRegistry(operational)
	service := reportsvc.NewService(reports, registry)
	exporter := export.NewExporter(reports)

	addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
	logger.Info().Msgf("starting server on %s", addr)

	api := server.NewWebAPI(logger, server.Config{
		Addr:       addr,
		AdminToken: cfg.AdminToken,
		Dependencies: server.Dependencies{
			Reports:  service,
			Exporter: exporter,
		},
	})

	return api.Start()
}
