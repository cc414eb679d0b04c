// File path: internal/document/render.go

// Package document renders the deliverable report document from the
// assembled sections and session metadata.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/dca-labs/reportbot/internal/common"
	"github.com/dca-labs/reportbot/internal/grades"
	"github.com/dca-labs/reportbot/internal/report"
)

// Format selects the document artifact type.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Input is the structured content a document is rendered from.
type Input struct {
	Title       string
	Date        string
	Signature   string
	Sections    report.Sections
	Grades      grades.Payload
	YouTubeLink string
	PollLink    string
}

// Renderer writes report documents under a fixed output directory. The file
// name is derived from the record's primary key so concurrent sessions never
// overwrite each other's document.
type Renderer struct {
	outDir string
	format Format
}

// NewRenderer builds a renderer rooted at outDir. An empty format defaults
// to markdown.
func NewRenderer(outDir string, format Format) (*Renderer, error) {
	if strings.TrimSpace(outDir) == "" {
		return nil, fmt.Errorf("output directory required")
	}
	if format == "" {
		format = FormatMarkdown
	}
	if format != FormatMarkdown && format != FormatHTML {
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Renderer{outDir: outDir, format: format}, nil
}

// Render writes the document for the given primary key and returns its path.
func (r *Renderer) Render(in Input, key string) (string, error) {
	logger := common.Logger()
	markdown := buildMarkdown(in)

	var data []byte
	ext := ".md"
	switch r.format {
	case FormatHTML:
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
			return "", fmt.Errorf("convert document: %w", err)
		}
		data = buf.Bytes()
		ext = ".html"
	default:
		data = []byte(markdown)
	}

	path := filepath.Join(r.outDir, FileStem(key)+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	logger.Info("document: rendered", "path", path, "format", string(r.format))
	return path, nil
}

// FileStem converts a primary key into a safe file name stem. The key's date
// component contains slashes, which would otherwise nest directories.
func FileStem(key string) string {
	return strings.ReplaceAll(key, "/", "-")
}

func buildMarkdown(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", in.Title)
	fmt.Fprintf(&b, "**Date:** %s\n\n", in.Date)
	b.WriteString("## Exercise 1\n\n")
	b.WriteString(strings.TrimSpace(in.Sections.Scenario1))
	b.WriteString("\n\n## Exercise 2\n\n")
	b.WriteString(strings.TrimSpace(in.Sections.Scenario2))
	b.WriteString("\n")
	if len(in.Grades) > 0 {
		b.WriteString("\n## Grades\n\n")
		categories := make([]string, 0, len(in.Grades))
		for category := range in.Grades {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			fmt.Fprintf(&b, "- %s: %d\n", category, in.Grades[category])
		}
	}
	if link := strings.TrimSpace(in.YouTubeLink); link != "" && link != report.NoLink {
		fmt.Fprintf(&b, "\n**Video:** %s\n", link)
	}
	if link := strings.TrimSpace(in.PollLink); link != "" && link != report.NoLink {
		fmt.Fprintf(&b, "\n**Polls:** %s\n", link)
	}
	fmt.Fprintf(&b, "\n---\n\n%s\n", in.Signature)
	return b.String()
}
