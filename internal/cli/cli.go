// Package cli implements the pdfgrid command-line interface.
//
// Run without flags, pdfgrid reads config.ini, grids every PDF found in
// input/ and writes <name>_grid.pdf files to output/. The flags only override
// those conventions.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lvillar/pdfgrid/batch"
	"github.com/lvillar/pdfgrid/config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Version is reported by --version; main may override it at build time.
var Version = "dev"

// CLI holds shared state for the command.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance writing log output to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

type runOpts struct {
	input  string
	output string
	config string
}

// RootCommand creates the root cobra command.
func (c *CLI) RootCommand() *cobra.Command {
	opts := runOpts{
		input:  batch.DefaultInputDir,
		output: batch.DefaultOutputDir,
		config: config.DefaultPath,
	}

	root := &cobra.Command{
		Use:          "pdfgrid",
		Short:        "Overlay a labelled coordinate grid on every page of a set of PDFs",
		Long:         `pdfgrid draws a lettered/numbered reference grid, and optionally a logo, onto every page of each PDF in the input directory, so positions on plans and drawings can be referred to by cell ("C4").`,
		Version:      Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), opts)
		},
	}

	root.Flags().StringVarP(&opts.input, "input", "i", opts.input, "directory containing the PDFs to process")
	root.Flags().StringVarP(&opts.output, "output", "o", opts.output, "directory receiving the gridded PDFs")
	root.Flags().StringVarP(&opts.config, "config", "c", opts.config, "configuration file (.ini or .toml)")

	return root
}
