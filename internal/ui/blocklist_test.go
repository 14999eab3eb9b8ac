package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JustVugg/duffydiff/internal/align"
	"github.com/JustVugg/duffydiff/internal/blocks"
)

func testBlocks() []blocks.Block {
	left := []string{"gone", "a", "b", "c"}
	right := []string{"a", "B", "c", "new"}
	return blocks.FromOps(align.Lines(left, right), 1).Blocks()
}

func TestBlockListNavigation(t *testing.T) {
	bl := NewBlockList(24, 10)
	bl.SetBlocks(testBlocks())

	if bl.SelectedIndex() != 0 {
		t.Errorf("initial cursor = %d, want 0", bl.SelectedIndex())
	}

	bl, _ = bl.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if bl.SelectedIndex() != 1 {
		t.Errorf("after j: cursor = %d, want 1", bl.SelectedIndex())
	}

	bl, _ = bl.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if bl.SelectedIndex() != 2 {
		t.Errorf("after G: cursor = %d, want 2", bl.SelectedIndex())
	}

	bl, _ = bl.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if bl.SelectedIndex() != 2 {
		t.Errorf("j at bottom: cursor = %d, want 2", bl.SelectedIndex())
	}

	bl, _ = bl.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if bl.SelectedIndex() != 0 {
		t.Errorf("after g: cursor = %d, want 0", bl.SelectedIndex())
	}
}

func TestBlockListEntries(t *testing.T) {
	bl := NewBlockList(24, 10)
	bl.SetBlocks(testBlocks())
	view := bl.View()

	for _, want := range []string{"− L1", "≠ L3", "+ R4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	bs := testBlocks()
	if got := blockEntry(bs[0]); !strings.HasSuffix(got, "→") {
		t.Errorf("delete entry %q should only offer →", got)
	}
	if got := blockEntry(bs[1]); !strings.HasSuffix(got, "→←") {
		t.Errorf("replace entry %q should offer both directions", got)
	}
	if got := blockEntry(bs[2]); !strings.HasSuffix(got, " ←") {
		t.Errorf("insert entry %q should only offer ←", got)
	}
}

func TestBlockListEmpty(t *testing.T) {
	bl := NewBlockList(24, 10)
	if bl.SelectedIndex() != blocks.None {
		t.Errorf("empty list selection = %d, want None", bl.SelectedIndex())
	}
	if !strings.Contains(bl.View(), "No differences") {
		t.Error("expected empty message")
	}
	bl.SetStale(true)
	if !strings.Contains(bl.View(), "comparing") {
		t.Error("expected stale message")
	}
}

func TestBlockListSetCurrent(t *testing.T) {
	bl := NewBlockList(24, 10)
	bl.SetBlocks(testBlocks())
	bl.SetCurrent(2)
	if bl.SelectedIndex() != 2 {
		t.Errorf("SetCurrent(2): selection = %d", bl.SelectedIndex())
	}

	bl.SetBlocks(testBlocks()[:1])
	if bl.SelectedIndex() != 0 {
		t.Errorf("shrunk list selection = %d, want 0", bl.SelectedIndex())
	}
}
