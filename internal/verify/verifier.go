package verify

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL         = "http://localhost:3000"
	DefaultOutputDir       = "verification"
	DefaultNavTimeout      = 60 * time.Second
	DefaultIdleTimeout     = 30 * time.Second
	DefaultSelectorTimeout = 30 * time.Second
	DefaultIdleQuiet       = 500 * time.Millisecond
)

// Page is the browser tab the verifier drives.
type Page interface {
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	WaitNetworkIdle(ctx context.Context, quiet, timeout time.Duration) error
	WaitText(ctx context.Context, text string, timeout time.Duration) error
	Screenshot(ctx context.Context) ([]byte, error)
	HTML(ctx context.Context) (string, error)
}

// Session is a running browser owned by one verification run.
type Session interface {
	NewPage() (Page, error)
	Close() error
}

// Opener starts a browser session.
type Opener func(ctx context.Context) (Session, error)

// DiagnoseFunc writes a diagnostic snapshot of html for a page whose marker
// did not verify.
type DiagnoseFunc func(html, marker, path string) error

// Options are the run parameters. Zero values fall back to the defaults.
type Options struct {
	BaseURL         string
	OutputDir       string
	NavTimeout      time.Duration
	IdleTimeout     time.Duration
	SelectorTimeout time.Duration
	IdleQuiet       time.Duration
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.NavTimeout <= 0 {
		o.NavTimeout = DefaultNavTimeout
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = DefaultIdleTimeout
	}
	if o.SelectorTimeout <= 0 {
		o.SelectorTimeout = DefaultSelectorTimeout
	}
	if o.IdleQuiet <= 0 {
		o.IdleQuiet = DefaultIdleQuiet
	}
	return o
}

// Verifier checks targets one after another against a single browser page.
type Verifier struct {
	Open     Opener
	Options  Options
	Out      io.Writer    // progress and per-target error lines
	Log      io.Writer    // tool notices
	Diagnose DiagnoseFunc // nil disables failure snapshots
	Now      func() time.Time
	NewRunID func() string
}

// New creates a Verifier writing progress to stdout and notices to stderr.
func New(open Opener, opts Options) *Verifier {
	return &Verifier{
		Open:     open,
		Options:  opts.withDefaults(),
		Out:      os.Stdout,
		Log:      os.Stderr,
		Now:      time.Now,
		NewRunID: uuid.NewString,
	}
}

// Run opens a browser, checks every target in order and always closes the
// browser before returning. Target failures are recorded in the report and
// never returned as errors; only failing to get a page at all is.
func (v *Verifier) Run(ctx context.Context, targets []Target) (*Report, error) {
	opts := v.Options.withDefaults()

	report := &Report{
		RunID:     v.NewRunID(),
		BaseURL:   opts.BaseURL,
		OutputDir: opts.OutputDir,
		StartedAt: v.Now(),
	}

	session, err := v.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open browser: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			fmt.Fprintf(v.Log, "[verify] %v\n", err)
		}
	}()

	page, err := session.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	for _, t := range targets {
		report.Results = append(report.Results, v.check(ctx, page, opts, t))
	}

	report.FinishedAt = v.Now()
	return report, nil
}

func (v *Verifier) check(ctx context.Context, page Page, opts Options, t Target) Result {
	start := v.Now()
	res := Result{Target: t, URL: t.URL(opts.BaseURL)}

	fmt.Fprintf(v.Out, "Navigating to %s Page...\n", t.Title)

	if err := v.steps(ctx, page, opts, t, &res); err != nil {
		res.Outcome = err.Outcome
		res.Err = err
		res.Error = err.Error()
		fmt.Fprintf(v.Out, "Error checking %s page: %v\n", t.Name, err)
	} else {
		fmt.Fprintf(v.Out, "%s page screenshot saved.\n", t.Title)
	}

	res.Duration = v.Now().Sub(start)
	return res
}

func (v *Verifier) steps(ctx context.Context, page Page, opts Options, t Target, res *Result) *StepError {
	if err := page.Navigate(ctx, res.URL, opts.NavTimeout); err != nil {
		return stepError(t, NavigationFailed, err)
	}

	if err := page.WaitNetworkIdle(ctx, opts.IdleQuiet, opts.IdleTimeout); err != nil {
		v.diagnose(ctx, page, opts, t, res)
		return stepError(t, NetworkIdleFailed, err)
	}

	if err := page.WaitText(ctx, t.Marker, opts.SelectorTimeout); err != nil {
		v.diagnose(ctx, page, opts, t, res)
		return stepError(t, SelectorTimeout, err)
	}

	data, err := page.Screenshot(ctx)
	if err != nil {
		return stepError(t, ScreenshotFailed, err)
	}
	path := t.ScreenshotPath(opts.OutputDir)
	if err := writeFile(path, data); err != nil {
		return stepError(t, ScreenshotFailed, err)
	}
	res.Screenshot = path
	res.Bytes = len(data)
	return nil
}

// diagnose records what the page rendered instead of the marker. Failures
// here are reported but never change the target's outcome.
func (v *Verifier) diagnose(ctx context.Context, page Page, opts Options, t Target, res *Result) {
	if v.Diagnose == nil {
		return
	}
	html, err := page.HTML(ctx)
	if err != nil {
		fmt.Fprintf(v.Log, "[verify] no diagnostic for %s: %v\n", t.Name, err)
		return
	}
	path := t.DiagnosticPath(opts.OutputDir)
	if err := v.Diagnose(html, t.Marker, path); err != nil {
		fmt.Fprintf(v.Log, "[verify] no diagnostic for %s: %v\n", t.Name, err)
		return
	}
	res.Diagnostic = path
	fmt.Fprintf(v.Log, "[verify] diagnostic written to %s\n", path)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save screenshot: %w", err)
	}
	return nil
}
