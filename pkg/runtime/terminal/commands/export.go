package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/coravel-fit/report-engine/pkg/services/export"
)

type ExportCmd struct {
	id       string
	exporter *export.Exporter
	output   io.Writer
}

func NewExportCmd(exporter *export.Exporter, output io.Writer) *cobra.Command {
	ec := &ExportCmd{exporter: exporter, output: output}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a generated report as CSV",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.id, "id", "", "Report id to export")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := ec.exporter.CSV(ctx, ec.id)
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	if _, err := ec.output.Write(result.Content); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
