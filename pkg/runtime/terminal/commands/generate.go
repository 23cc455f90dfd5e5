package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/coravel-fit/report-engine/pkg/models/domain"
	reportsvc "github.com/coravel-fit/report-engine/pkg/services/report"
)

// ReportPrinter renders a finished report for the operator.
type ReportPrinter interface {
	Handle(report domain.Report) error
}

type GenerateCmd struct {
	reportType string
	title      string
	start      string
	end        string
	filters    []string
	service    reportsvc.Service
	printer    ReportPrinter
}

func NewGenerateCmd(service reportsvc.Service, printer ReportPrinter) *cobra.Command {
	gc := &GenerateCmd{service: service, printer: printer}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report and print the result",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.reportType, "type", "", "Report type (e.g. ATTENDANCE)")
	cmd.Flags().StringVar(&gc.title, "title", "", "Report title (derived when omitted)")
	cmd.Flags().StringVar(&gc.start, "start", "", "Window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&gc.end, "end", "", "Window end (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&gc.filters, "filter", nil,
		"Filter entry as key=value; repeatable")

	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	start, err := parseDate(gc.start)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	end, err := parseDate(gc.end)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}
	filters, err := parseFilters(gc.filters)
	if err != nil {
		return err
	}

	report, err := gc.service.Generate(ctx, reportsvc.GenerateParams{
		Type:      domain.ReportType(gc.reportType),
		Title:     gc.title,
		StartDate: start,
		EndDate:   end,
		Filters:   filters,
	})
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	return gc.printer.Handle(report)
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseFilters turns key=value pairs into the filter bag, keeping booleans
// and numbers typed so the generators see the same shapes the HTTP surface
// sends.
func parseFilters(pairs []string) (domain.Filters, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	filters := make(domain.Filters, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --filter %q, expected key=value", pair)
		}
		switch {
		case value == "true" || value == "false":
			filters[key] = value == "true"
		default:
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				filters[key] = n
			} else {
				filters[key] = value
			}
		}
	}
	return filters, nil
}
