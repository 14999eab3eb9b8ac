package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/JustVugg/duffydiff/internal/blocks"
	"github.com/JustVugg/duffydiff/internal/document"
	"github.com/JustVugg/duffydiff/internal/export"
	"github.com/JustVugg/duffydiff/internal/output"
	"github.com/JustVugg/duffydiff/internal/schedule"
	"github.com/JustVugg/duffydiff/internal/source"
	"github.com/JustVugg/duffydiff/internal/syntax"
)

type focusArea int

const (
	focusBlockList focusArea = iota
	focusDiffViewer
	focusEditor
	focusPrompt
	focusExport
)

type promptKind int

const (
	promptOpen promptKind = iota
	promptSave
)

const blockListWidth = 28

// FileIO reads and writes side content, enabling tests without a disk.
type FileIO interface {
	Read(path string) (string, error)
	Write(path, content string) error
}

type diskFiles struct{}

func (diskFiles) Read(path string) (string, error)   { return source.ReadFile(path) }
func (diskFiles) Write(path, content string) error { return source.WriteFile(path, content) }

// Options configures a RootModel. Doc is required; everything else has a
// usable zero value.
type Options struct {
	Doc *document.Document
	// Names are the pane titles. Paths are where w saves each side; an
	// empty path prompts for one.
	Names       [2]string
	Paths       [2]string
	Auto        bool
	Delay       time.Duration
	Highlighter *syntax.Highlighter
	Deliverer   *output.Deliverer
	Targets     []output.OutputTarget
	Format      export.Format
	Files       FileIO
	Logger      zerolog.Logger
}

// recomputeMsg is delivered once the debounce delay after an edit has passed.
type recomputeMsg struct {
	ticket schedule.Ticket
}

// deliveredMsg reports the outcome of an export.
type deliveredMsg struct {
	status string
	err    error
}

// RootModel is the top-level Bubble Tea model.
type RootModel struct {
	doc       *document.Document
	sched     *schedule.Scheduler
	files     FileIO
	deliverer *output.Deliverer
	targets   []output.OutputTarget
	format    export.Format
	logger    zerolog.Logger
	now       func() time.Time

	names  [2]string
	paths  [2]string
	active document.Side
	auto   bool

	blockList  BlockList
	diffViewer DiffViewer
	editor     Editor
	selector   OutputSelector
	prompt     textinput.Model
	promptFor  promptKind

	focus       focusArea
	width       int
	height      int
	lastCompare time.Time
	message     string
	messageErr  bool
	showHelp    bool
	quitting    bool
}

// NewRootModel creates the root model. When both sides already hold content
// and no comparison exists yet, it compares immediately.
func NewRootModel(opts Options, width, height int) RootModel {
	doc := opts.Doc
	if doc == nil {
		doc = document.New(opts.Logger, 0)
	}
	files := opts.Files
	if files == nil {
		files = diskFiles{}
	}
	deliverer := opts.Deliverer
	if deliverer == nil {
		deliverer = output.NewDeliverer("", "")
	}
	format := opts.Format
	if format == "" {
		format = export.FormatMarkdown
	}

	pi := textinput.New()
	pi.CharLimit = 4096

	m := RootModel{
		doc:        doc,
		sched:      schedule.New(opts.Delay, doc.Settle, opts.Logger),
		files:      files,
		deliverer:  deliverer,
		targets:    opts.Targets,
		format:     format,
		logger:     opts.Logger.With().Str("component", "RootModel").Logger(),
		now:        time.Now,
		names:      opts.Names,
		paths:      opts.Paths,
		active:     document.Left,
		auto:       opts.Auto,
		blockList:  NewBlockList(blockListWidth, height-3),
		diffViewer: NewDiffViewer(width-blockListWidth-3, height-3, opts.Highlighter),
		editor:     NewEditor(width-blockListWidth-3, height-3),
		prompt:     pi,
		focus:      focusDiffViewer,
		width:      width,
		height:     height,
	}
	for side := range m.names {
		if m.names[side] == "" {
			m.names[side] = document.Side(side).String()
		}
	}

	if doc.Stale() && !doc.Empty(document.Left) && !doc.Empty(document.Right) {
		doc.Recompute()
	}
	if !doc.Stale() {
		m.lastCompare = m.now()
	}
	m.refresh()
	m.diffViewer.SetNames(m.names[0], m.names[1])
	return m
}

// Init returns the initial command.
func (m RootModel) Init() tea.Cmd {
	return nil
}

// Update handles all messages. Returns tea.Model for the interface.
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.blockList.SetSize(blockListWidth, m.height-3)
		m.diffViewer.SetSize(m.width-blockListWidth-3, m.height-3)
		m.editor.SetSize(m.width-blockListWidth-3, m.height-3)
		m.selector.SetSize(m.width, m.height)
		m.prompt.Width = max(m.width-20, 10)
		return m, nil

	case EditMsg:
		side := document.Side(msg.Side)
		if err := m.doc.Edit(side, msg.Content); err != nil {
			m.setError(err)
			return m, nil
		}
		m.showStale()
		if !m.auto {
			return m, nil
		}
		ticket := m.sched.NotifyEdit()
		return m, tea.Tick(m.sched.Delay(), func(time.Time) tea.Msg {
			return recomputeMsg{ticket: ticket}
		})

	case recomputeMsg:
		if m.sched.Fire(msg.ticket) {
			m.compared()
		}
		return m, nil

	case EditDoneMsg:
		m.focus = focusDiffViewer
		return m, nil

	case OutputSelectMsg:
		m.format = msg.Format
		return m, m.export(msg.Target, msg.Format)

	case OutputCancelMsg:
		m.focus = focusDiffViewer
		return m, nil

	case deliveredMsg:
		if msg.err != nil {
			// Leave the selector open so another target can be tried.
			m.selector.SetError(msg.err.Error())
			m.setError(msg.err)
			return m, nil
		}
		if m.focus == focusExport {
			m.focus = focusDiffViewer
		}
		m.setStatus(msg.status)
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case focusEditor:
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		case focusExport:
			var cmd tea.Cmd
			m.selector, cmd = m.selector.Update(msg)
			return m, cmd
		case focusPrompt:
			return m.handlePromptKey(msg)
		}
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m RootModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.focus = focusDiffViewer
		m.prompt.Blur()
		return m, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.prompt.Value())
		m.focus = focusDiffViewer
		m.prompt.Blur()
		if path == "" {
			return m, nil
		}
		if m.promptFor == promptOpen {
			m.openFile(path)
		} else {
			m.paths[m.active] = path
			m.save()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m RootModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Help overlay dismissal
	if m.showHelp {
		if key == "?" || key == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "n", "]":
		m.step(m.doc.Next)
		return m, nil

	case "N", "[":
		m.step(m.doc.Prev)
		return m, nil

	case ">":
		m.mergeCurrent(document.LeftToRight)
		return m, nil

	case "<":
		m.mergeCurrent(document.RightToLeft)
		return m, nil

	case "M":
		dir := document.LeftToRight
		if m.active == document.Right {
			dir = document.RightToLeft
		}
		if err := m.doc.MergeAll(dir); err != nil {
			m.setError(err)
			return m, nil
		}
		m.sched.Cancel()
		m.doc.Recompute()
		m.compared()
		m.setStatus("Copied all of " + m.names[dir.Source()] + " to " + m.names[dir.Dest()])
		return m, nil

	case "u":
		m.travel(m.doc.Undo, "Nothing to undo")
		return m, nil

	case "ctrl+r":
		m.travel(m.doc.Redo, "Nothing to redo")
		return m, nil

	case "f5", "r":
		if !m.sched.Flush() {
			m.doc.Settle()
		}
		m.compared()
		return m, nil

	case "a":
		m.auto = !m.auto
		if m.auto {
			m.setStatus("Auto-compare on")
		} else {
			m.sched.Cancel()
			m.setStatus("Auto-compare off")
		}
		return m, nil

	case "tab":
		m.active = m.active.Other()
		m.diffViewer.SetActiveSide(int(m.active))
		return m, nil

	case "i":
		m.focus = focusEditor
		return m, m.editor.Activate(int(m.active), m.names[m.active], m.doc.Text(m.active))

	case "o":
		return m, m.startPrompt(promptOpen, "")

	case "w":
		if m.paths[m.active] == "" {
			return m, m.startPrompt(promptSave, "")
		}
		m.save()
		return m, nil

	case "e":
		if m.doc.Stale() {
			m.setError(export.ErrStale)
			return m, nil
		}
		m.selector = NewOutputSelector(m.targets, m.format, m.width, m.height)
		m.focus = focusExport
		return m, nil

	case "h":
		m.focus = focusBlockList
		return m, nil

	case "l":
		m.focus = focusDiffViewer
		return m, nil

	case "enter":
		if m.focus == focusBlockList {
			m.gotoBlock(m.blockList.SelectedIndex())
			m.focus = focusDiffViewer
		}
		return m, nil
	}

	// Route to focused sub-model
	switch m.focus {
	case focusBlockList:
		var cmd tea.Cmd
		m.blockList, cmd = m.blockList.Update(msg)
		return m, cmd

	case focusDiffViewer:
		var cmd tea.Cmd
		m.diffViewer, cmd = m.diffViewer.Update(msg)
		m.syncSelection()
		return m, cmd
	}

	return m, nil
}

// step moves the current block with next or prev.
func (m *RootModel) step(move func() (blocks.Block, error)) {
	b, err := move()
	if err != nil {
		m.setError(err)
		return
	}
	m.showCurrent(b.Ordinal)
}

func (m *RootModel) gotoBlock(ordinal int) {
	b, err := m.doc.Goto(ordinal)
	if err != nil {
		m.setError(err)
		return
	}
	m.showCurrent(b.Ordinal)
}

// mergeCurrent merges the current block and keeps the cursor at the same
// ordinal, or the last block when the merged one was the last.
func (m *RootModel) mergeCurrent(dir document.Direction) {
	cur, ok := m.doc.Cursor()
	if !ok {
		if m.doc.Stale() {
			m.setError(document.ErrStaleBlockSet)
		} else {
			m.setStatus("No current difference")
		}
		return
	}
	if err := m.doc.Merge(cur, dir); err != nil {
		m.setError(err)
		return
	}
	m.doc.Recompute()
	var err error
	if n := m.doc.Blocks().Len(); n > 0 {
		_, err = m.doc.Goto(min(cur, n-1))
	}
	m.compared()
	if err != nil {
		m.setError(err)
	}
}

// travel runs undo or redo and recomputes.
func (m *RootModel) travel(move func() error, empty string) {
	if err := move(); err != nil {
		if errors.Is(err, document.ErrEmptyHistory) {
			m.setStatus(empty)
		} else {
			m.setError(err)
		}
		return
	}
	m.sched.Cancel()
	m.doc.Recompute()
	m.compared()
}

func (m *RootModel) startPrompt(kind promptKind, value string) tea.Cmd {
	m.promptFor = kind
	m.prompt.Prompt = "Open into " + m.names[m.active] + ": "
	if kind == promptSave {
		m.prompt.Prompt = "Save " + m.names[m.active] + " as: "
	}
	m.prompt.SetValue(value)
	m.focus = focusPrompt
	return m.prompt.Focus()
}

// openFile loads path into the active side and compares when both sides
// hold content.
func (m *RootModel) openFile(path string) {
	content, err := m.files.Read(path)
	if err != nil {
		m.setError(err)
		return
	}
	if err := m.doc.Load(m.active, content); err != nil {
		m.setError(err)
		return
	}
	m.sched.Cancel()
	m.names[m.active] = path
	m.paths[m.active] = path
	m.diffViewer.SetNames(m.names[0], m.names[1])
	m.logger.Debug().Str("side", m.active.String()).Str("path", path).Msg("opened file")

	if !m.doc.Empty(document.Left) && !m.doc.Empty(document.Right) {
		m.doc.Recompute()
		m.compared()
	} else {
		m.showStale()
	}
	m.setStatus("Opened " + path)
}

func (m *RootModel) save() {
	path := m.paths[m.active]
	if err := m.files.Write(path, m.doc.Text(m.active)); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Saved " + path)
}

// export renders the report and hands it to the deliverer off the event loop.
func (m RootModel) export(target output.OutputTarget, format export.Format) tea.Cmd {
	r, err := export.Build(m.doc, m.names[0], m.names[1])
	if err != nil {
		return func() tea.Msg { return deliveredMsg{err: err} }
	}
	content, err := export.Render(r, format)
	if err != nil {
		return func() tea.Msg { return deliveredMsg{err: err} }
	}
	d := *m.deliverer
	d.Ext = format.Ext()
	return func() tea.Msg {
		status, err := d.Deliver(target, content)
		return deliveredMsg{status: status, err: err}
	}
}

// compared records a finished comparison and redraws from it.
func (m *RootModel) compared() {
	m.lastCompare = m.now()
	m.refresh()
}

// refresh rebuilds the panels from the document's block set.
func (m *RootModel) refresh() {
	if m.doc.Stale() {
		m.showStale()
		return
	}
	left, right := m.doc.Lines(document.Left), m.doc.Lines(document.Right)
	set := m.doc.Blocks()
	m.diffViewer.SetContent(BuildRows(set.Ops()), left, right)
	m.blockList.SetBlocks(set.Blocks())
	cur, _ := m.doc.Cursor()
	m.showCurrent(cur)
}

// showStale displays the raw content while the block set is out of date.
func (m *RootModel) showStale() {
	left, right := m.doc.Lines(document.Left), m.doc.Lines(document.Right)
	m.diffViewer.SetContent(BuildPlainRows(len(left), len(right)), left, right)
	m.diffViewer.SetCurrentBlock(blocks.None)
	m.blockList.SetStale(true)
}

func (m *RootModel) showCurrent(ordinal int) {
	m.blockList.SetCurrent(ordinal)
	m.diffViewer.SetCurrentBlock(ordinal)
}

// syncSelection follows the viewer cursor in the block list.
func (m *RootModel) syncSelection() {
	if ord := m.diffViewer.BlockAtCursor(); ord != blocks.None {
		m.blockList.Select(ord)
		return
	}
	if !m.doc.Stale() {
		m.blockList.Select(m.doc.Blocks().Nearest(m.diffViewer.ScrollFraction()))
	}
}

func (m *RootModel) setStatus(s string) {
	m.message = s
	m.messageErr = false
}

func (m *RootModel) setError(err error) {
	m.logger.Debug().Err(err).Msg("command failed")
	m.message = describeError(err)
	m.messageErr = true
}

func describeError(err error) string {
	switch {
	case errors.Is(err, document.ErrStaleBlockSet), errors.Is(err, export.ErrStale):
		return "Comparison is out of date; press F5 to compare"
	case errors.Is(err, document.ErrInvalidDirection):
		return "That side has no lines in this block"
	case errors.Is(err, document.ErrOutOfRange):
		return "No differences"
	}
	return err.Error()
}

// View renders the full UI.
func (m RootModel) View() string {
	if m.showHelp {
		return RenderHelp()
	}
	if m.focus == focusExport {
		return m.selector.View()
	}

	var b strings.Builder

	// Header
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Render(fmt.Sprintf(" duffydiff — %s ↔ %s ", m.names[0], m.names[1]))
	b.WriteString(header)
	b.WriteString("\n")

	listPanel := lipgloss.NewStyle().
		Width(blockListWidth).
		Height(m.height - 3).
		BorderRight(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.blockList.View())

	body := m.diffViewer.View()
	if m.focus == focusEditor {
		body = m.editor.View()
	}
	diffPanel := lipgloss.NewStyle().
		Width(m.width - blockListWidth - 3).
		Height(m.height - 3).
		Render(body)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, listPanel, diffPanel))
	b.WriteString("\n")

	if m.focus == focusPrompt {
		b.WriteString(m.prompt.View())
	} else {
		b.WriteString(m.renderStatusBar())
	}

	return b.String()
}

func (m RootModel) renderStatusBar() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	parts := []string{m.compareStatus()}

	if !m.doc.Stale() {
		if cur, ok := m.doc.Cursor(); ok {
			parts = append(parts, fmt.Sprintf("difference %d of %d", cur+1, m.doc.Blocks().Len()))
		}
		c := m.doc.Counts()
		parts = append(parts, fmt.Sprintf("+%d -%d ~%d", c.Added, c.Removed, c.Modified))
	}
	if !m.lastCompare.IsZero() {
		parts = append(parts, "compared "+m.lastCompare.Format("15:04:05"))
	}
	auto := "auto off"
	if m.auto {
		auto = "auto on"
	}
	parts = append(parts, auto, "[?]help")

	status := dim.Render(" " + strings.Join(parts, "  │  "))
	if m.message != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		if m.messageErr {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		}
		status += "  " + style.Render(m.message)
	}
	return status
}

func (m RootModel) compareStatus() string {
	switch {
	case m.sched.Pending():
		return "comparing…"
	case m.doc.Stale():
		return "out of date"
	case m.doc.Blocks().Empty():
		return "Files are identical"
	case m.doc.Blocks().Len() == 1:
		return "1 difference found"
	default:
		return fmt.Sprintf("%d differences found", m.doc.Blocks().Len())
	}
}

// Document returns the document the model edits.
func (m RootModel) Document() *document.Document {
	return m.doc
}

// Quitting returns whether the user asked to quit.
func (m RootModel) Quitting() bool {
	return m.quitting
}
