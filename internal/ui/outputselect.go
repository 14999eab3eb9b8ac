package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JustVugg/duffydiff/internal/export"
	"github.com/JustVugg/duffydiff/internal/output"
)

var (
	pickerHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pickerDimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pickerErrStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

const (
	pickerTitle    = "Export report"
	pickerNoTarget = "No output targets available."
	pickerHint     = "[Enter] send  [f/Tab] format  [q] cancel"
)

// OutputSelectMsg carries the chosen destination and report format.
type OutputSelectMsg struct {
	Target output.OutputTarget
	Format export.Format
}

// OutputCancelMsg closes the export picker without sending anything.
type OutputCancelMsg struct{}

// OutputSelector picks a report format and where to send the report.
// Pane targets are listed first, followed by the fallback targets.
type OutputSelector struct {
	targets []output.OutputTarget
	cursor  int
	format  int // index into export.Formats
	width   int
	height  int
	err     string
}

func NewOutputSelector(targets []output.OutputTarget, format export.Format, width, height int) OutputSelector {
	s := OutputSelector{targets: targets, width: width, height: height}
	for i, f := range export.Formats {
		if f == format {
			s.format = i
			break
		}
	}
	return s
}

// SetError shows a failed delivery until the picker is closed.
func (s *OutputSelector) SetError(msg string) { s.err = msg }

func (s OutputSelector) Format() export.Format { return export.Formats[s.format] }

func (s *OutputSelector) SetSize(width, height int) {
	s.width, s.height = width, height
}

func (s *OutputSelector) move(delta int) {
	s.cursor = max(0, min(s.cursor+delta, len(s.targets)-1))
}

func (s *OutputSelector) cycleFormat() {
	s.format = (s.format + 1) % len(export.Formats)
}

func (s OutputSelector) Update(msg tea.Msg) (OutputSelector, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch km.String() {
	case "j", "down":
		s.move(1)
	case "k", "up":
		s.move(-1)
	case "f", "tab":
		s.cycleFormat()
	case "q", "esc":
		return s, func() tea.Msg { return OutputCancelMsg{} }
	case "enter":
		if len(s.targets) == 0 {
			return s, nil
		}
		sel := OutputSelectMsg{Target: s.targets[s.cursor], Format: s.Format()}
		return s, func() tea.Msg { return sel }
	}
	return s, nil
}

func (s OutputSelector) View() string {
	var b strings.Builder
	b.WriteString(pickerHeadingStyle.Render(pickerTitle) + "\n")

	if len(s.targets) == 0 {
		b.WriteString("  " + pickerNoTarget + "\n\n")
		b.WriteString(pickerDimStyle.Render("  [q] cancel"))
		return b.String()
	}

	b.WriteString("  Format: " + s.renderFormats() + "\n\n")
	b.WriteString(pickerHeadingStyle.Render("Send to:") + "\n")

	panes := s.paneCount()
	for i, t := range s.targets {
		if i == panes && panes > 0 {
			b.WriteString(pickerDimStyle.Render("  ── or ──") + "\n")
		}
		if i == s.cursor {
			b.WriteString(selectedStyle.Render("  > "+t.Label) + "\n")
		} else {
			b.WriteString("    " + t.Label + "\n")
		}
	}

	if s.err != "" {
		b.WriteString("\n" + pickerErrStyle.Render("  Error: "+s.err) + "\n")
	}
	b.WriteString("\n" + pickerDimStyle.Render("  "+pickerHint))
	return b.String()
}

func (s OutputSelector) renderFormats() string {
	parts := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		if i == s.format {
			parts[i] = selectedStyle.Render("[" + string(f) + "]")
		} else {
			parts[i] = " " + string(f) + " "
		}
	}
	return strings.Join(parts, " ")
}

// paneCount is the length of the leading run of pane targets.
func (s OutputSelector) paneCount() int {
	for i, t := range s.targets {
		if t.Kind != output.TargetPane {
			return i
		}
	}
	return len(s.targets)
}
