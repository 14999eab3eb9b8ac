package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JustVugg/duffydiff/internal/align"
	"github.com/JustVugg/duffydiff/internal/blocks"
	"github.com/JustVugg/duffydiff/internal/syntax"
)

func makeTestViewer(height int) DiffViewer {
	left := []string{"package main", "old line", "unchanged"}
	right := []string{"package main", "new line", "another new", "unchanged"}
	dv := NewDiffViewer(80, height, syntax.NewHighlighter("", false))
	dv.SetContent(BuildRows(align.Lines(left, right)), left, right)
	dv.SetNames("a.go", "b.go")
	return dv
}

func TestDiffViewNavigation(t *testing.T) {
	dv := makeTestViewer(20)

	if dv.CursorRow() != 0 {
		t.Errorf("initial cursor = %d, want 0", dv.CursorRow())
	}

	dv, _ = dv.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if dv.CursorRow() != 1 {
		t.Errorf("after j: cursor = %d, want 1", dv.CursorRow())
	}

	dv, _ = dv.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if dv.CursorRow() != 0 {
		t.Errorf("after k: cursor = %d, want 0", dv.CursorRow())
	}

	dv, _ = dv.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if dv.CursorRow() != dv.TotalRows()-1 {
		t.Errorf("after G: cursor = %d, want %d", dv.CursorRow(), dv.TotalRows()-1)
	}

	dv, _ = dv.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if dv.CursorRow() != 0 {
		t.Errorf("after g: cursor = %d, want 0", dv.CursorRow())
	}
}

func TestDiffViewBlockAtCursor(t *testing.T) {
	dv := makeTestViewer(20)

	if got := dv.BlockAtCursor(); got != blocks.None {
		t.Errorf("row 0 block = %d, want None", got)
	}
	dv, _ = dv.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if got := dv.BlockAtCursor(); got != 0 {
		t.Errorf("row 1 block = %d, want 0", got)
	}
}

func TestDiffViewSetCurrentBlock(t *testing.T) {
	dv := makeTestViewer(20)

	dv.SetCurrentBlock(0)
	if dv.CursorRow() != 1 {
		t.Errorf("cursor = %d, want first row of block 0", dv.CursorRow())
	}

	dv.SetCurrentBlock(blocks.None)
	if dv.CursorRow() != 1 {
		t.Errorf("clearing the current block moved the cursor to %d", dv.CursorRow())
	}
}

func TestDiffViewScrollFraction(t *testing.T) {
	dv := makeTestViewer(20)
	if got := dv.ScrollFraction(); got != 0 {
		t.Errorf("fraction at top = %v, want 0", got)
	}
	dv, _ = dv.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if got := dv.ScrollFraction(); got != 1 {
		t.Errorf("fraction at bottom = %v, want 1", got)
	}
}

func TestDiffViewPageScrolling(t *testing.T) {
	left := make([]string, 100)
	for i := range left {
		left[i] = "line"
	}
	dv := NewDiffViewer(80, 12, nil)
	dv.SetContent(BuildPlainRows(len(left), len(left)), left, left)

	dv, _ = dv.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if dv.CursorRow() != 6 {
		t.Errorf("after ctrl+d: cursor = %d, want 6", dv.CursorRow())
	}
	dv, _ = dv.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	if dv.CursorRow() != 18 {
		t.Errorf("after ctrl+f: cursor = %d, want 18", dv.CursorRow())
	}
	dv, _ = dv.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	dv, _ = dv.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if dv.CursorRow() != 0 {
		t.Errorf("after ctrl+b, ctrl+u: cursor = %d, want 0", dv.CursorRow())
	}

	view := dv.View()
	if n := strings.Count(view, "\n"); n > 12 {
		t.Errorf("view has %d lines, want at most the viewer height", n)
	}
}

func TestDiffViewRenderNotEmpty(t *testing.T) {
	dv := makeTestViewer(20)

	view := dv.View()
	for _, want := range []string{"a.go", "b.go", "package main", "old line", "another new", "≠", "╱"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestDiffViewTruncatesWideLines(t *testing.T) {
	left := []string{strings.Repeat("x", 200)}
	dv := NewDiffViewer(60, 10, nil)
	dv.SetContent(BuildPlainRows(1, 0), left, nil)

	if !strings.Contains(dv.View(), "…") {
		t.Error("expected a truncation marker")
	}
}

func TestDiffViewNoContent(t *testing.T) {
	dv := NewDiffViewer(80, 20, nil)
	view := dv.View()
	if !strings.Contains(view, "Nothing to compare") {
		t.Error("expected an empty-state message")
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"no tabs", "no tabs"},
		{"\tx", "    x"},
		{"ab\tc", "ab  c"},
	}
	for _, tt := range tests {
		if got := expandTabs(tt.in); got != tt.want {
			t.Errorf("expandTabs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatLineNo(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "     "},
		{7, "   7 "},
		{1234, "1234 "},
	}
	for _, tt := range tests {
		if got := formatLineNo(tt.n); got != tt.want {
			t.Errorf("formatLineNo(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
