// Package syntax colours pane lines for the terminal.
package syntax

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Highlighter provides syntax highlighting for single lines. Lexers are
// resolved once per file name. A nil or disabled Highlighter returns lines
// unchanged.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
	lexers    map[string]chroma.Lexer
	enabled   bool
}

// NewHighlighter creates a highlighter for the named chroma style. Unknown
// names fall back to DefaultStyle.
func NewHighlighter(styleName string, enabled bool) *Highlighter {
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		style = styles.Get(DefaultStyle)
	}
	return &Highlighter{
		style:     style,
		formatter: formatters.TTY256,
		lexers:    make(map[string]chroma.Lexer),
		enabled:   enabled,
	}
}

// Enabled reports whether lines are coloured.
func (h *Highlighter) Enabled() bool { return h != nil && h.enabled }

// SetEnabled turns highlighting on or off.
func (h *Highlighter) SetEnabled(on bool) { h.enabled = on }

// Detect picks the lexer for filename, using sample content when the name
// alone does not identify the language. Later calls with the same name reuse
// the result.
func (h *Highlighter) Detect(filename, sample string) {
	if _, ok := h.lexers[filename]; ok {
		return
	}
	lexer := lexers.Match(filename)
	if lexer == nil && sample != "" {
		lexer = lexers.Analyse(sample)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	h.lexers[filename] = chroma.Coalesce(lexer)
}

// HighlightLine applies syntax highlighting to a single line of code.
func (h *Highlighter) HighlightLine(filename, line string) string {
	if !h.Enabled() || line == "" {
		return line
	}
	h.Detect(filename, "")
	lexer := h.lexers[filename]

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return line
	}

	return strings.TrimRight(buf.String(), "\n")
}
