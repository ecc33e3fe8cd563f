package formatter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verifypages/internal/verify"
)

func sampleReport() *verify.Report {
	targets := verify.Targets()
	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	return &verify.Report{
		RunID:      "run-1",
		BaseURL:    "http://localhost:3000",
		OutputDir:  "verification",
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
		Results: []verify.Result{
			{
				Target:     targets[0],
				URL:        "http://localhost:3000/history",
				Outcome:    verify.Passed,
				Screenshot: "verification/history_page.png",
				Bytes:      2048,
				Duration:   1500 * time.Millisecond,
			},
			{
				Target:     targets[1],
				URL:        "http://localhost:3000/literature",
				Outcome:    verify.SelectorTimeout,
				Error:      "selector timeout: context deadline exceeded",
				Diagnostic: "verification/literature_page.md",
				Duration:   time.Second,
			},
		},
	}
}

func TestFormatText(t *testing.T) {
	out, err := Format(sampleReport(), "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Run run-1 against http://localhost:3000")
	assert.Contains(t, out, "verification/history_page.png")
	assert.Contains(t, out, "FAIL literature")
	assert.Contains(t, out, "selector timeout: context deadline exceeded")
	assert.Contains(t, out, "Verified 1/2 pages.")
}

func TestFormatMarkdown(t *testing.T) {
	out, err := Format(sampleReport(), "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "| History | http://localhost:3000/history | passed | verification/history_page.png |")
	assert.Contains(t, out, "| Literature | http://localhost:3000/literature | selector_timeout | verification/literature_page.md |")
	assert.Contains(t, out, "## Failures")
	assert.Contains(t, out, "- Duration: 3s")
}

func TestFormatJSON(t *testing.T) {
	out, err := Format(sampleReport(), "json")
	require.NoError(t, err)

	var decoded struct {
		RunID   string `json:"run_id"`
		Results []struct {
			Outcome string `json:"outcome"`
			Error   string `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "passed", decoded.Results[0].Outcome)
	assert.Equal(t, "selector_timeout", decoded.Results[1].Outcome)
	assert.Empty(t, decoded.Results[0].Error)
}

func TestFormatUnsupported(t *testing.T) {
	_, err := Format(sampleReport(), "csv")
	assert.EqualError(t, err, "unsupported report format: csv")
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]string{
		"report.json":   "json",
		"out/REPORT.MD": "markdown",
		"r.markdown":    "markdown",
		"summary.txt":   "text",
		"report.yaml":   "",
		"no-extension":  "",
	}
	for path, want := range cases {
		assert.Equal(t, want, FormatFromPath(path), path)
	}
}
