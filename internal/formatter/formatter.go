package formatter

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"verifypages/internal/verify"
)

// Format renders a run report as text, markdown or json.
func Format(report *verify.Report, format string) (string, error) {
	switch format {
	case "text":
		return toText(report), nil
	case "markdown":
		return toMarkdown(report), nil
	case "json":
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(b) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", format)
	}
}

// FormatFromPath infers the report format from a file extension, or
// returns "" when the extension is not recognised.
func FormatFromPath(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return "markdown"
	case ".json":
		return "json"
	case ".txt":
		return "text"
	default:
		return ""
	}
}

// Summary is the closing line printed after a run.
func Summary(report *verify.Report) string {
	return fmt.Sprintf("Verified %d/%d pages.", report.Passed(), len(report.Results))
}

func toText(report *verify.Report) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run %s against %s\n", report.RunID, report.BaseURL))
	for _, r := range report.Results {
		status := "ok"
		if !r.OK() {
			status = "FAIL"
		}
		sb.WriteString(fmt.Sprintf("%-4s %-10s %-20s %s", status, r.Target.Name, r.Outcome, round(r.Duration)))
		if r.Screenshot != "" {
			sb.WriteString("  " + r.Screenshot)
		}
		sb.WriteString("\n")
		if r.Error != "" {
			sb.WriteString("     " + r.Error + "\n")
		}
	}
	sb.WriteString(Summary(report) + "\n")
	return sb.String()
}

func toMarkdown(report *verify.Report) string {
	var sb strings.Builder
	sb.WriteString("# Page verification\n\n")
	sb.WriteString(fmt.Sprintf("- Run: `%s`\n", report.RunID))
	sb.WriteString(fmt.Sprintf("- Base URL: %s\n", report.BaseURL))
	sb.WriteString(fmt.Sprintf("- Duration: %s\n\n", round(report.Duration())))

	sb.WriteString("| Page | URL | Outcome | Evidence |\n")
	sb.WriteString("| --- | --- | --- | --- |\n")
	for _, r := range report.Results {
		evidence := r.Screenshot
		if evidence == "" {
			evidence = r.Diagnostic
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", r.Target.Title, r.URL, r.Outcome, evidence))
	}

	var failed []verify.Result
	for _, r := range report.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	if len(failed) > 0 {
		sb.WriteString("\n## Failures\n\n")
		for _, r := range failed {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", r.Target.Name, r.Error))
		}
	}

	sb.WriteString("\n" + Summary(report) + "\n")
	return sb.String()
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}
