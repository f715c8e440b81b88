package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/lvillar/pdfgrid/batch"
	"github.com/lvillar/pdfgrid/config"
)

func (c *CLI) run(ctx context.Context, opts runOpts) error {
	start := time.Now()

	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	c.Logger.Debug("config loaded", "path", opts.config, "interval", cfg.Interval,
		"landscape", cfg.Landscape, "logo", cfg.Logo.Path)

	r := batch.Runner{
		Config:    cfg,
		InputDir:  opts.input,
		OutputDir: opts.output,
		Logger:    c.Logger,
	}
	report, err := r.Run(ctx)
	if err != nil {
		return err
	}

	for _, res := range report.Failed() {
		c.Logger.Warn("not processed", "file", filepath.Base(res.Input), "err", res.Err)
	}
	c.Logger.Infof("%d of %d file(s) gridded, %d page(s) (%s)",
		len(report.Succeeded()), len(report.Results), report.Pages(),
		time.Since(start).Round(time.Millisecond))
	return nil
}
