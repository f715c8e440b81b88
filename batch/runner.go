// Package batch applies a grid configuration to every PDF in a directory.
//
// Files are processed one at a time. A failure affects only its own file: it
// is recorded in the Report, logged, and the run moves on to the next file.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lvillar/pdfgrid"
	"github.com/lvillar/pdfgrid/pageops"
)

// Default directories used by the command line tool.
const (
	DefaultInputDir  = "input"
	DefaultOutputDir = "output"
)

// ErrInputDirMissing is returned by Run when the input directory does not exist.
var ErrInputDirMissing = errors.New("batch: input directory not found")

// Runner processes every PDF of InputDir into OutputDir.
type Runner struct {
	Config    pdfgrid.Config
	InputDir  string
	OutputDir string
	Logger    *log.Logger // nil discards log output
}

// Result is the outcome for one input file.
type Result struct {
	Input    string
	Output   string // empty when Err is set
	Pages    int
	Duration time.Duration
	Err      error
}

// OK reports whether the file was processed successfully.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report lists the results of a run in processing order.
type Report struct {
	Results []Result
}

// Succeeded returns the results of files that were written.
func (r Report) Succeeded() []Result {
	return r.filter(true)
}

// Failed returns the results of files that were skipped because of an error.
func (r Report) Failed() []Result {
	return r.filter(false)
}

func (r Report) filter(ok bool) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.OK() == ok {
			out = append(out, res)
		}
	}
	return out
}

// Pages returns the total number of pages written.
func (r Report) Pages() int {
	n := 0
	for _, res := range r.Results {
		n += res.Pages
	}
	return n
}

// Inputs returns the PDF files of dir in lexical order. The extension match
// is case-insensitive; subdirectories are not descended into.
func Inputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputDirMissing, dir)
		}
		return nil, fmt.Errorf("batch: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Run processes all input files. It returns an error only for conditions that
// stop the whole run: an invalid configuration, a missing input directory, an
// output directory that cannot be created, or cancellation of ctx.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if err := r.Config.Validate(); err != nil {
		return Report{}, err
	}
	files, err := Inputs(r.InputDir)
	if err != nil {
		return Report{}, err
	}
	if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
		return Report{}, fmt.Errorf("batch: creating output directory: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("no PDF files found", "dir", r.InputDir)
		return Report{}, nil
	}

	opts := []pageops.Option{pageops.WithLogger(logger)}
	if path := r.Config.Logo.Path; path != "" {
		logo, err := pageops.LoadLogo(path)
		if err != nil {
			logger.Warn("logo disabled", "path", path, "err", err)
		}
		opts = append(opts, pageops.WithLogo(logo))
	}

	var report Report
	for _, in := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res := r.process(in, opts)
		report.Results = append(report.Results, res)
		if res.OK() {
			logger.Info("gridded", "file", filepath.Base(in), "pages", res.Pages,
				"output", res.Output, "took", res.Duration.Round(time.Millisecond))
		} else {
			logger.Error("skipped", "file", filepath.Base(in), "err", res.Err)
		}
	}
	return report, nil
}

func (r *Runner) process(in string, opts []pageops.Option) Result {
	start := time.Now()
	out := filepath.Join(r.OutputDir, pageops.OutputName(in))
	pages, err := pageops.AddGridToFile(in, out, r.Config, opts...)
	res := Result{Input: in, Pages: pages, Duration: time.Since(start), Err: err}
	if err == nil {
		res.Output = out
	}
	return res
}
