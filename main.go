package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"verifypages/internal/browser"
	"verifypages/internal/config"
	"verifypages/internal/formatter"
	"verifypages/internal/snapshot"
	"verifypages/internal/verify"

	"github.com/spf13/cobra"
)

var version = "dev"

var errTargetsFailed = errors.New("one or more pages failed verification")

// flags holds command-line overrides; defaults come from the environment.
type flags struct {
	baseURL         string
	outputDir       string
	only            []string
	navTimeout      time.Duration
	idleTimeout     time.Duration
	selectorTimeout time.Duration
	proxyURL        string
	showUI          bool
	reportFile      string
	strict          bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg, openBrowser).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config, open func(config.Config) verify.Opener) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:     "verifypages",
		Short:   "Check that the history and literature pages render their content",
		Version: version,
		Long: `verifypages drives a headless browser against a locally running site,
waits for each page to finish loading and show its expected Bengali text,
and saves a full-page screenshot of each as evidence.

Failed pages are reported on stdout; the exit code stays 0 unless --strict
is given.`,
		Example: `  # Check both pages on the local dev server
  verifypages

  # Only the literature page, with a markdown report
  verifypages --only literature --report verification/report.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, f, open)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&f.baseURL, "base-url", cfg.BaseURL, "Origin of the site under test (VERIFY_BASE_URL)")
	cmd.Flags().StringVarP(&f.outputDir, "out-dir", "o", cfg.OutputDir, "Directory for screenshots and diagnostics (VERIFY_OUTPUT_DIR)")
	cmd.Flags().StringSliceVar(&f.only, "only", nil, "Check only the named pages (history, literature)")
	cmd.Flags().DurationVar(&f.navTimeout, "nav-timeout", cfg.NavTimeout, "Navigation timeout per page")
	cmd.Flags().DurationVar(&f.idleTimeout, "idle-timeout", cfg.IdleTimeout, "Network idle timeout per page")
	cmd.Flags().DurationVar(&f.selectorTimeout, "selector-timeout", cfg.SelectorTimeout, "Timeout waiting for the expected text")
	cmd.Flags().StringVarP(&f.proxyURL, "proxy", "p", cfg.ProxyURL, "Proxy URL, defaults to VERIFY_PROXY env var")
	cmd.Flags().BoolVar(&f.showUI, "showui", cfg.ShowUI, "Show browser UI (disable headless mode)")
	cmd.Flags().StringVarP(&f.reportFile, "report", "r", "", "Write a run report (.txt, .md or .json)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Exit non-zero when any page fails")

	return cmd
}

func run(ctx context.Context, stdout, stderr io.Writer, cfg config.Config, f *flags, open func(config.Config) verify.Opener) error {
	cfg.BaseURL = f.baseURL
	cfg.OutputDir = f.outputDir
	cfg.NavTimeout = f.navTimeout
	cfg.IdleTimeout = f.idleTimeout
	cfg.SelectorTimeout = f.selectorTimeout
	cfg.ProxyURL = f.proxyURL
	cfg.ShowUI = f.showUI
	if err := cfg.Validate(); err != nil {
		return err
	}

	reportFormat := ""
	if f.reportFile != "" {
		reportFormat = formatter.FormatFromPath(f.reportFile)
		if reportFormat == "" {
			return fmt.Errorf("cannot infer report format from %s (use .txt, .md or .json)", f.reportFile)
		}
	}

	targets, err := verify.Select(f.only)
	if err != nil {
		return err
	}

	v := verify.New(open(cfg), verify.Options{
		BaseURL:         cfg.BaseURL,
		OutputDir:       cfg.OutputDir,
		NavTimeout:      cfg.NavTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		SelectorTimeout: cfg.SelectorTimeout,
	})
	v.Out = stdout
	v.Log = stderr
	v.Diagnose = snapshot.WriteFile

	report, err := v.Run(ctx, targets)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, formatter.Summary(report))

	if f.reportFile != "" {
		out, err := formatter.Format(report, reportFormat)
		if err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
		if err := os.WriteFile(f.reportFile, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(stderr, "[verify] report written to: %s\n", f.reportFile)
	}

	if f.strict && report.Failed() > 0 {
		return errTargetsFailed
	}
	return nil
}

// openBrowser returns an Opener that launches Chromium through rod.
func openBrowser(cfg config.Config) verify.Opener {
	return func(ctx context.Context) (verify.Session, error) {
		b, err := browser.New(browser.Config{
			Headless:  !cfg.ShowUI,
			ProxyURL:  cfg.ProxyURL,
			Bin:       cfg.ChromeBin,
			NoSandbox: cfg.NoSandbox,
		})
		if err != nil {
			return nil, err
		}
		return session{b}, nil
	}
}

// session adapts *browser.Browser to verify.Session.
type session struct {
	*browser.Browser
}

func (s session) NewPage() (verify.Page, error) {
	p, err := s.Browser.NewPage()
	if err != nil {
		return nil, err
	}
	return p, nil
}
