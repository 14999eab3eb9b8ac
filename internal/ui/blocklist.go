package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/JustVugg/duffydiff/internal/align"
	"github.com/JustVugg/duffydiff/internal/blocks"
)

var (
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	currentStyle    = lipgloss.NewStyle().Bold(true).Background(currentBlockBg)
	unselectedStyle = lipgloss.NewStyle()
	staleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// BlockList is a Bubble Tea sub-model listing the diff blocks.
type BlockList struct {
	blocks  []blocks.Block
	cursor  int
	current int
	offset  int
	stale   bool
	width   int
	height  int
}

// NewBlockList creates an empty block list.
func NewBlockList(width, height int) BlockList {
	return BlockList{
		current: blocks.None,
		width:   width,
		height:  height,
	}
}

// SetBlocks replaces the listed blocks.
func (bl *BlockList) SetBlocks(bs []blocks.Block) {
	bl.blocks = bs
	bl.stale = false
	if bl.cursor >= len(bs) {
		bl.cursor = max(len(bs)-1, 0)
	}
	bl.adjustScroll()
}

// SetStale dims the list while the content is being edited.
func (bl *BlockList) SetStale(stale bool) {
	bl.stale = stale
}

// SetCurrent marks the document's current block and selects it.
func (bl *BlockList) SetCurrent(ordinal int) {
	bl.current = ordinal
	if ordinal >= 0 && ordinal < len(bl.blocks) {
		bl.cursor = ordinal
		bl.adjustScroll()
	}
}

// Select moves the selection without changing the current block.
func (bl *BlockList) Select(ordinal int) {
	if ordinal >= 0 && ordinal < len(bl.blocks) {
		bl.cursor = ordinal
		bl.adjustScroll()
	}
}

// Init returns no initial command.
func (bl BlockList) Init() tea.Cmd {
	return nil
}

// Update handles key messages for vim-style navigation.
func (bl BlockList) Update(msg tea.Msg) (BlockList, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if bl.cursor < len(bl.blocks)-1 {
				bl.cursor++
			}
		case "k", "up":
			if bl.cursor > 0 {
				bl.cursor--
			}
		case "G":
			bl.cursor = max(len(bl.blocks)-1, 0)
		case "g":
			bl.cursor = 0
		}
		bl.adjustScroll()
	}
	return bl, nil
}

func (bl *BlockList) adjustScroll() {
	h := max(bl.height, 1)
	if bl.cursor < bl.offset {
		bl.offset = bl.cursor
	}
	if bl.cursor >= bl.offset+h {
		bl.offset = bl.cursor - h + 1
	}
}

// View renders the block list.
func (bl BlockList) View() string {
	if len(bl.blocks) == 0 {
		if bl.stale {
			return staleStyle.Render("comparing…")
		}
		return "No differences"
	}

	var b strings.Builder
	end := min(bl.offset+max(bl.height, 1), len(bl.blocks))
	for i := bl.offset; i < end; i++ {
		blk := bl.blocks[i]
		line := runewidth.Truncate(blockEntry(blk), max(bl.width-2, 1), "…")

		switch {
		case bl.stale:
			line = staleStyle.Render("  " + line)
		case i == bl.cursor && i == bl.current:
			line = currentStyle.Render("▸ " + line)
		case i == bl.cursor:
			line = selectedStyle.Render("▸ " + line)
		case i == bl.current:
			line = currentStyle.Render("  " + line)
		default:
			line = unselectedStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// blockEntry formats one block: kind symbol, line label and the merge
// actions the kind allows.
func blockEntry(b blocks.Block) string {
	actions := ""
	if b.Kind != align.Insert {
		actions += "→"
	}
	if b.Kind != align.Delete {
		actions += "←"
	}
	return fmt.Sprintf("%s %-8s %s", b.Symbol(), b.Label(), actions)
}

// SelectedIndex returns the selected ordinal, or blocks.None when empty.
func (bl BlockList) SelectedIndex() int {
	if len(bl.blocks) == 0 {
		return blocks.None
	}
	return bl.cursor
}

// Len returns the number of listed blocks.
func (bl BlockList) Len() int {
	return len(bl.blocks)
}

// SetSize updates the dimensions.
func (bl *BlockList) SetSize(width, height int) {
	bl.width = width
	bl.height = height
	bl.adjustScroll()
}
