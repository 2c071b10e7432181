// Package export renders the journal as Markdown or as a standalone HTML page.
package export

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/tLat87/SportJournal/internal/constants"
	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/stats"
)

type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (use md or html)", s)
	}
}

// Ext is the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

//go:embed templates/*.tmpl
var templateFS embed.FS

// Document is everything an export shows.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Entries     []models.JournalEntry
	Summary     stats.Summary
}

func NewDocument(entries []models.JournalEntry, now time.Time) Document {
	return Document{
		Title:       "SportJournal",
		GeneratedAt: now,
		Entries:     entries,
		Summary:     stats.Summarize(entries, now),
	}
}

func (d Document) funcs() template.FuncMap {
	return template.FuncMap{
		"date":    func(t time.Time) string { return t.In(d.GeneratedAt.Location()).Format(constants.DateFormat) },
		"ago":     func(t time.Time) string { return humanize.RelTime(t, d.GeneratedAt, "ago", "from now") },
		"comma":   func(n int) string { return humanize.Comma(int64(n)) },
		"minutes": FormatMinutes,
		"join":    strings.Join,
		"plural": func(n int, one, many string) string {
			if n == 1 {
				return one
			}
			return many
		},
	}
}

// FormatMinutes renders a minute count as "45m", "2h" or "1h 30m".
func FormatMinutes(m int) string {
	h, rest := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, rest)
	}
}

func Markdown(w io.Writer, doc Document) error {
	tmpl, err := template.New("journal.md.tmpl").Funcs(doc.funcs()).ParseFS(templateFS, "templates/journal.md.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse markdown template: %w", err)
	}
	if err := tmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	return nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML renders the Markdown export and converts it with goldmark. Raw HTML in
// entry text is not passed through.
func HTML(w io.Writer, doc Document) error {
	var md bytes.Buffer
	if err := Markdown(&md, doc); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := markdown.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("failed to convert markdown: %w", err)
	}

	page, err := htmltemplate.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse page template: %w", err)
	}
	return page.Execute(w, struct {
		Title   string
		Content htmltemplate.HTML
	}{
		Title:   doc.Title,
		Content: htmltemplate.HTML(body.String()),
	})
}

func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatMarkdown:
		return Markdown(w, doc)
	case FormatHTML:
		return HTML(w, doc)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
