package verify

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Target is one page to check: where it lives, what it must render and
// where its screenshot goes.
type Target struct {
	Name       string // short identifier, used in error lines and --only
	Title      string // display name for progress lines
	Route      string
	Marker     string // text that only appears once real content rendered
	Screenshot string // file name inside the output directory
}

var targets = []Target{
	{
		Name:       "history",
		Title:      "History",
		Route:      "/history",
		Marker:     "পাল সাম্রাজ্যের প্রতিষ্ঠা",
		Screenshot: "history_page.png",
	},
	{
		Name:       "literature",
		Title:      "Literature",
		Route:      "/literature",
		Marker:     "গীতাঞ্জলি",
		Screenshot: "literature_page.png",
	},
}

// Targets returns the built-in targets in verification order.
func Targets() []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}

// Select returns the built-in targets whose names are listed, keeping the
// built-in order. An empty list selects everything.
func Select(names []string) ([]Target, error) {
	if len(names) == 0 {
		return Targets(), nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if !known(n) {
			return nil, fmt.Errorf("unknown target: %s", n)
		}
		want[n] = true
	}

	var out []Target
	for _, t := range targets {
		if want[t.Name] {
			out = append(out, t)
		}
	}
	return out, nil
}

func known(name string) bool {
	for _, t := range targets {
		if t.Name == name {
			return true
		}
	}
	return false
}

// URL joins the target route onto baseURL.
func (t Target) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(t.Route, "/")
}

// ScreenshotPath resolves the screenshot file inside dir.
func (t Target) ScreenshotPath(dir string) string {
	return filepath.Join(dir, t.Screenshot)
}

// DiagnosticPath is the markdown snapshot written next to the screenshot
// when the page loaded but did not verify.
func (t Target) DiagnosticPath(dir string) string {
	base := strings.TrimSuffix(t.Screenshot, filepath.Ext(t.Screenshot))
	return filepath.Join(dir, base+".md")
}
