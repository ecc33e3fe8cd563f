// Package snapshot records what a page actually rendered when it failed to
// show its marker text, so a failed run leaves something to look at besides
// a missing screenshot.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// Snapshot holds content pre-extracted from a rendered document.
type Snapshot struct {
	Title         string
	Lang          string
	Marker        string
	MarkerVisible bool
	TextLength    int    // visible text, in runes
	Body          string // body converted to Markdown
}

// Capture parses html and summarises it. Non-rendered elements (scripts,
// styles, templates) are dropped first so hydration payloads that embed the
// marker do not count as visible.
func Capture(html, marker string) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	s := &Snapshot{
		Title:  strings.TrimSpace(doc.Find("title").First().Text()),
		Marker: marker,
	}
	s.Lang, _ = doc.Find("html").First().Attr("lang")

	doc.Find("script, style, noscript, template").Remove()

	body := doc.Find("body").First()
	text := collapseSpace(body.Text())
	s.TextLength = utf8.RuneCountInString(text)
	s.MarkerVisible = marker != "" && strings.Contains(text, collapseSpace(marker))

	bodyHTML, err := body.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to extract body HTML: %w", err)
	}

	converter := md.NewConverter("", true, nil)
	s.Body, err = converter.ConvertString(bodyHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return s, nil
}

// Markdown renders the snapshot as a Markdown document.
func (s *Snapshot) Markdown() string {
	title := s.Title
	if title == "" {
		title = "(untitled)"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Diagnostic: %s\n\n", title))
	sb.WriteString(fmt.Sprintf("- Marker: `%s`\n", s.Marker))
	sb.WriteString(fmt.Sprintf("- Marker visible: %s\n", yesNo(s.MarkerVisible)))
	if s.Lang != "" {
		sb.WriteString(fmt.Sprintf("- Lang: %s\n", s.Lang))
	}
	sb.WriteString(fmt.Sprintf("- Visible text: %d characters\n", s.TextLength))
	sb.WriteString("\n---\n\n")
	sb.WriteString(strings.TrimSpace(s.Body))
	sb.WriteString("\n")
	return sb.String()
}

// Write persists the Markdown rendering to path, creating its directory.
func (s *Snapshot) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create diagnostic dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(s.Markdown()), 0644); err != nil {
		return fmt.Errorf("failed to write diagnostic: %w", err)
	}
	return nil
}

// WriteFile captures html and writes the snapshot to path in one step.
func WriteFile(html, marker, path string) error {
	s, err := Capture(html, marker)
	if err != nil {
		return err
	}
	return s.Write(path)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
