package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/JustVugg/duffydiff/internal/align"
	"github.com/JustVugg/duffydiff/internal/blocks"
	"github.com/JustVugg/duffydiff/internal/syntax"
)

var (
	addedLineStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	modifiedLineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	lineNoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle        = lipgloss.NewStyle().Bold(true)
	cursorLineBg       = lipgloss.Color("236")
	currentBlockBg     = lipgloss.Color("238")
	fillerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	sideSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	paneTitleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// emptyStyle is a reusable zero-value style to avoid allocating lipgloss.NewStyle() per call.
var emptyStyle = lipgloss.NewStyle()

const (
	gutterWidth = 5 // formatLineNo output
	tabWidth    = 4
)

// formatLineNo formats a line number right-aligned in a 4-char field followed by a space.
// Returns "     " (5 spaces) for lineNo <= 0.
func formatLineNo(lineNo int) string {
	if lineNo <= 0 {
		return "     "
	}
	var buf [5]byte
	buf[4] = ' '
	n := lineNo
	i := 3
	for n > 0 && i >= 0 {
		buf[i] = byte('0' + n%10)
		n /= 10
		i--
	}
	for i >= 0 {
		buf[i] = ' '
		i--
	}
	return string(buf[:])
}

// DiffViewer is a Bubble Tea sub-model showing both sides as aligned rows.
type DiffViewer struct {
	rows      []Row
	firstRows []int
	lines     [2][]string
	names     [2]string
	cursor    int
	offset    int // scroll offset
	width     int
	height    int
	current   int // current block ordinal
	active    int // side whose title is emphasised
	hl        *syntax.Highlighter
}

// NewDiffViewer creates a new diff viewer.
func NewDiffViewer(width, height int, hl *syntax.Highlighter) DiffViewer {
	return DiffViewer{
		width:   width,
		height:  height,
		current: blocks.None,
		hl:      hl,
	}
}

// SetContent replaces the rows and the side lines they index into. The
// cursor is kept where possible.
func (dv *DiffViewer) SetContent(rows []Row, left, right []string) {
	dv.rows = rows
	dv.firstRows = FirstRows(rows)
	dv.lines = [2][]string{left, right}
	if dv.cursor >= len(rows) {
		dv.cursor = max(len(rows)-1, 0)
	}
	dv.adjustScroll()
}

// SetNames sets the pane titles, also used to pick a syntax lexer.
func (dv *DiffViewer) SetNames(left, right string) {
	dv.names = [2]string{left, right}
	if dv.hl != nil {
		dv.hl.Detect(left, strings.Join(firstN(dv.lines[0], 20), "\n"))
		dv.hl.Detect(right, strings.Join(firstN(dv.lines[1], 20), "\n"))
	}
}

// SetActiveSide marks side 0 (left) or 1 (right) as active.
func (dv *DiffViewer) SetActiveSide(side int) {
	dv.active = side
}

// SetCurrentBlock highlights ordinal and scrolls its first row into view.
// blocks.None clears the highlight.
func (dv *DiffViewer) SetCurrentBlock(ordinal int) {
	dv.current = ordinal
	if ordinal >= 0 && ordinal < len(dv.firstRows) {
		dv.cursor = dv.firstRows[ordinal]
		dv.centerCursor()
	}
}

// Update handles key messages for vim-style scrolling.
func (dv DiffViewer) Update(msg tea.Msg) (DiffViewer, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if dv.cursor < len(dv.rows)-1 {
				dv.cursor++
				dv.adjustScroll()
			}
		case "k", "up":
			if dv.cursor > 0 {
				dv.cursor--
				dv.adjustScroll()
			}
		case "G":
			dv.cursor = max(len(dv.rows)-1, 0)
			dv.adjustScroll()
		case "g":
			dv.cursor = 0
			dv.offset = 0
		case "ctrl+d":
			dv.moveCursor(dv.height / 2)
		case "ctrl+u":
			dv.moveCursor(-dv.height / 2)
		case "ctrl+f", "pgdown":
			dv.moveCursor(dv.height)
		case "ctrl+b", "pgup":
			dv.moveCursor(-dv.height)
		}
	}
	return dv, nil
}

func (dv *DiffViewer) moveCursor(delta int) {
	dv.cursor += delta
	if dv.cursor >= len(dv.rows) {
		dv.cursor = len(dv.rows) - 1
	}
	if dv.cursor < 0 {
		dv.cursor = 0
	}
	dv.adjustScroll()
}

func (dv *DiffViewer) bodyHeight() int {
	return max(dv.height-1, 1) // title row
}

func (dv *DiffViewer) adjustScroll() {
	h := dv.bodyHeight()
	if dv.cursor < dv.offset {
		dv.offset = dv.cursor
	}
	if dv.cursor >= dv.offset+h {
		dv.offset = dv.cursor - h + 1
	}
}

func (dv *DiffViewer) centerCursor() {
	h := dv.bodyHeight()
	dv.offset = max(dv.cursor-h/3, 0)
	if maxOff := len(dv.rows) - h; dv.offset > maxOff {
		dv.offset = max(maxOff, 0)
	}
	dv.adjustScroll()
}

// CursorRow returns the current cursor row.
func (dv DiffViewer) CursorRow() int {
	return dv.cursor
}

// BlockAtCursor returns the block ordinal under the cursor, or blocks.None.
func (dv DiffViewer) BlockAtCursor() int {
	if dv.cursor >= 0 && dv.cursor < len(dv.rows) {
		return dv.rows[dv.cursor].Block
	}
	return blocks.None
}

// ScrollFraction returns the cursor position normalised to [0,1].
func (dv DiffViewer) ScrollFraction() float64 {
	if len(dv.rows) <= 1 {
		return 0
	}
	return float64(dv.cursor) / float64(len(dv.rows)-1)
}

// TotalRows returns the number of rows.
func (dv DiffViewer) TotalRows() int {
	return len(dv.rows)
}

// SetSize updates the dimensions.
func (dv *DiffViewer) SetSize(width, height int) {
	dv.width = width
	dv.height = height
	dv.adjustScroll()
}

// View renders the titles and the visible rows.
func (dv DiffViewer) View() string {
	halfWidth := max((dv.width-3)/2, gutterWidth+2)

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(dv.renderTitle(0, halfWidth))
	b.WriteString(sideSeparatorStyle.Render("│"))
	b.WriteString(dv.renderTitle(1, halfWidth))
	b.WriteByte('\n')

	if len(dv.rows) == 0 {
		b.WriteString("  Nothing to compare. Open a file with o.")
		return b.String()
	}

	end := min(dv.offset+dv.bodyHeight(), len(dv.rows))
	b.Grow((end - dv.offset) * (dv.width + 64))

	for i := dv.offset; i < end; i++ {
		r := dv.rows[i]
		isCursor := i == dv.cursor
		inCurrent := r.Block != blocks.None && r.Block == dv.current

		if isCursor {
			b.WriteString(cursorStyle.Background(cursorLineBg).Render("→ "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(dv.renderCell(0, r.Left, r.Kind, inCurrent, halfWidth))
		b.WriteString(dv.renderMarker(r, inCurrent))
		b.WriteString(dv.renderCell(1, r.Right, r.Kind, inCurrent, halfWidth))
		b.WriteByte('\n')
	}

	return b.String()
}

func (dv DiffViewer) renderTitle(side, w int) string {
	title := dv.names[side]
	if title == "" {
		title = [2]string{"(left)", "(right)"}[side]
	}
	title = runewidth.Truncate(" "+title, w, "…")
	pad := strings.Repeat(" ", max(w-runewidth.StringWidth(title), 0))
	if side == dv.active {
		return activeTitleStyle.Render(title) + pad
	}
	return paneTitleStyle.Render(title) + pad
}

func (dv DiffViewer) renderMarker(r Row, inCurrent bool) string {
	style := sideSeparatorStyle
	if inCurrent {
		style = style.Background(currentBlockBg)
	}
	switch r.Kind {
	case align.Delete:
		return style.Foreground(lipgloss.Color("1")).Render("−")
	case align.Insert:
		return style.Foreground(lipgloss.Color("2")).Render("+")
	case align.Replace:
		return style.Foreground(lipgloss.Color("3")).Render("≠")
	}
	return style.Render("│")
}

func (dv DiffViewer) renderCell(side, idx int, kind align.Kind, inCurrent bool, w int) string {
	textWidth := max(w-gutterWidth, 1)

	lnStyle := lineNoStyle
	bg := emptyStyle
	if inCurrent {
		lnStyle = lnStyle.Background(currentBlockBg)
		bg = bg.Background(currentBlockBg)
	}

	if idx < 0 || idx >= len(dv.lines[side]) {
		filler := strings.Repeat(" ", textWidth)
		if kind != align.Equal {
			filler = fillerStyle.Inherit(bg).Render(strings.Repeat("╱", textWidth))
		}
		return bg.Render(strings.Repeat(" ", gutterWidth)) + filler
	}

	plain := runewidth.Truncate(expandTabs(dv.lines[side][idx]), textWidth, "…")
	pad := strings.Repeat(" ", max(textWidth-runewidth.StringWidth(plain), 0))

	var content string
	if kind == align.Equal {
		content = dv.hl.HighlightLine(dv.names[side], plain) + pad
	} else {
		style := blockStyle(kind)
		if inCurrent {
			style = style.Bold(true).Background(currentBlockBg)
		}
		content = style.Render(plain + pad)
	}

	return lnStyle.Render(formatLineNo(idx+1)) + content
}

func blockStyle(kind align.Kind) lipgloss.Style {
	switch kind {
	case align.Delete:
		return removedLineStyle
	case align.Insert:
		return addedLineStyle
	default:
		return modifiedLineStyle
	}
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

func firstN(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
