package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var editorStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("3"))

// EditMsg is sent after every change to the edited text.
type EditMsg struct {
	Side    int
	Content string
}

// EditDoneMsg is sent when the user leaves the editor.
type EditDoneMsg struct {
	Side int
}

// Editor edits the full text of one side.
type Editor struct {
	area   textarea.Model
	active bool
	side   int
	title  string
	width  int
	height int
}

// NewEditor creates an inactive editor.
func NewEditor(width, height int) Editor {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.Prompt = ""
	ta.Cursor.SetMode(cursor.CursorStatic)

	e := Editor{area: ta}
	e.SetSize(width, height)
	return e
}

// Activate loads content for side and focuses the editor.
func (e *Editor) Activate(side int, title, content string) tea.Cmd {
	e.active = true
	e.side = side
	e.title = title
	e.area.SetValue(content)
	e.area.MoveToBegin()
	return e.area.Focus()
}

// Update handles key messages. Every change to the text emits an EditMsg.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	if !e.active {
		return e, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEscape {
		e.active = false
		e.area.Blur()
		side := e.side
		return e, func() tea.Msg { return EditDoneMsg{Side: side} }
	}

	before := e.area.Value()
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	if after := e.area.Value(); after != before {
		edit := EditMsg{Side: e.side, Content: after}
		return e, tea.Batch(cmd, func() tea.Msg { return edit })
	}
	return e, cmd
}

// View renders the editor.
func (e Editor) View() string {
	if !e.active {
		return ""
	}
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("Editing " + e.title + "  [Esc] done")
	return label + "\n" + editorStyle.Render(e.area.View())
}

// Active returns whether the editor is shown.
func (e Editor) Active() bool {
	return e.active
}

// Side returns the side being edited.
func (e Editor) Side() int {
	return e.side
}

// Value returns the current text.
func (e Editor) Value() string {
	return e.area.Value()
}

// SetSize updates the dimensions.
func (e *Editor) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.area.SetWidth(max(width-2, 10))
	e.area.SetHeight(max(height-3, 3))
}
