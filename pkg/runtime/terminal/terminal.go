package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/coravel-fit/report-engine/pkg/runtime/terminal/commands"
	"github.com/coravel-fit/report-engine/pkg/services/export"
	reportsvc "github.com/coravel-fit/report-engine/pkg/services/report"
)

// CLI represents the command-line interface
type CLI struct {
	service  reportsvc.Service
	exporter *export.Exporter
	reporter *Reporter
	output   io.Writer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Service  reportsvc.Service
	Exporter *export.Exporter
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		service:  opts.Service,
		exporter: opts.Exporter,
		reporter: NewReporter(opts.Output),
		output:   opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportctl",
		Short: "Report generation tool",
	}

	cmd.AddCommand(commands.NewGenerateCmd(cli.service, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(cli.exporter, cli.output))

	return cmd
}
