package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/coravel-fit/report-engine/pkg/runtime/terminal"
	"github.com/coravel-fit/report-engine/pkg/services/config"
	"github.com/coravel-fit/report-engine/pkg/services/export"
	reportsvc "github.com/coravel-fit/report-engine/pkg/services/report"
	"github.com/coravel-fit/report-engine/pkg/services/report/generators"
	"github.com/coravel-fit/report-engine/pkg/store/postgres"
	reportstore "github.com/coravel-fit/report-engine/pkg/store/postgres/report"
	"github.com/coravel-fit/report-engine/pkg/store/postgres/records"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("REPORT_ENGINE_CONFIG"))
	if err != nil {
		return err
	}

	db, err := postgres.NewDB(postgres.Settings{DSN: cfg.DatabaseDSN})
	if err != nil {
		return err
	}
	defer db.Close()

	reports, err := reportstore.NewStore(db)
	if err != nil {
		return err
	}
	operational, err := records.NewStore(db)
	if err != nil {
		return err
	}

	cli := terminal.NewCLI(terminal.Options{
		Service:  reportsvc.NewService(reports, generators.NewDefaultRegistry(operational)),
		Exporter: export.NewExporter(reports),
		Output:   os.Stdout,
	})

	return cli.Execute()
}
