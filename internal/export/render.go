package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// Format is a report encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatText, FormatMarkdown, FormatHTML, FormatJSON, FormatYAML}

// ParseFormat resolves a format name or common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatText:
		return "txt"
	case FormatMarkdown:
		return "md"
	default:
		return string(f)
	}
}

// Render encodes r in format f.
func Render(r Report, f Format) (string, error) {
	switch f {
	case FormatText:
		return renderText(r), nil
	case FormatMarkdown:
		return renderMarkdown(r), nil
	case FormatHTML:
		return renderHTML(r)
	case FormatJSON:
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json report: %w", err)
		}
		return string(b) + "\n", nil
	case FormatYAML:
		b, err := yaml.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("encode yaml report: %w", err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unknown report format %q", string(f))
	}
}

// Summary is the one-line result of a comparison.
func Summary(r Report) string {
	if r.Identical() {
		return "Files are identical"
	}
	noun := "differences"
	if r.Differences == 1 {
		noun = "difference"
	}
	return fmt.Sprintf("%d %s found (+%d -%d ~%d)",
		r.Differences, noun, r.Counts.Added, r.Counts.Removed, r.Counts.Modified)
}

func renderText(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <-> %s\n", r.Left, r.Right)
	b.WriteString(Summary(r) + "\n")

	for _, rec := range r.Blocks {
		fmt.Fprintf(&b, "\n#%d %s %s %s\n", rec.Ordinal+1, rec.symbol, rec.Label, rec.Kind)
		writeLines(&b, "- ", rec.LeftLines)
		writeLines(&b, "+ ", rec.RightLines)
	}
	return b.String()
}

func renderMarkdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Differences: %s ↔ %s\n\n", r.Left, r.Right)
	fmt.Fprintf(&b, "%s\n\n", Summary(r))

	for i, rec := range r.Blocks {
		fmt.Fprintf(&b, "### %d. %s %s\n\n", rec.Ordinal+1, rec.Kind, lineInfo(rec))
		b.WriteString("```diff\n")
		writeLines(&b, "-", rec.LeftLines)
		writeLines(&b, "+", rec.RightLines)
		b.WriteString("```\n\n")

		if i < len(r.Blocks)-1 {
			b.WriteString("---\n\n")
		}
	}
	return b.String()
}

func renderHTML(r Report) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var body bytes.Buffer
	if err := md.Convert([]byte(renderMarkdown(r)), &body); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(r.Left+" ↔ "+r.Right))
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func lineInfo(rec Record) string {
	left := rangeText("left", rec.Left)
	right := rangeText("right", rec.Right)
	return fmt.Sprintf("(%s, %s)", left, right)
}

func rangeText(side string, r Range) string {
	switch {
	case r.End < r.Start:
		return fmt.Sprintf("%s before line %d", side, r.Start)
	case r.End == r.Start:
		return fmt.Sprintf("%s line %d", side, r.Start)
	default:
		return fmt.Sprintf("%s lines %d-%d", side, r.Start, r.End)
	}
}

func writeLines(b *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		b.WriteString(prefix)
		b.WriteString(l)
		b.WriteByte('\n')
	}
}
