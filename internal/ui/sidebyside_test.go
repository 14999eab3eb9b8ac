package ui

import (
	"testing"

	"github.com/JustVugg/duffydiff/internal/align"
	"github.com/JustVugg/duffydiff/internal/blocks"
)

func TestBuildRowsReplace(t *testing.T) {
	ops := align.Lines([]string{"a", "b", "c"}, []string{"a", "x", "y", "c"})
	rows := BuildRows(ops)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	want := []Row{
		{Left: 0, Right: 0, Kind: align.Equal, Block: blocks.None},
		{Left: 1, Right: 1, Kind: align.Replace, Block: 0},
		{Left: -1, Right: 2, Kind: align.Replace, Block: 0},
		{Left: 2, Right: 3, Kind: align.Equal, Block: blocks.None},
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row[%d] = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestBuildRowsInsertAndDelete(t *testing.T) {
	ops := align.Lines([]string{"gone", "a"}, []string{"a", "new"})
	rows := BuildRows(ops)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Right != -1 || rows[0].Block != 0 {
		t.Errorf("delete row = %+v", rows[0])
	}
	if rows[2].Left != -1 || rows[2].Block != 1 {
		t.Errorf("insert row = %+v", rows[2])
	}

	first := FirstRows(rows)
	if len(first) != 2 || first[0] != 0 || first[1] != 2 {
		t.Errorf("FirstRows = %v, want [0 2]", first)
	}
}

func TestBuildRowsEmpty(t *testing.T) {
	if rows := BuildRows(nil); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestBuildPlainRows(t *testing.T) {
	rows := BuildPlainRows(1, 3)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Left != 0 || rows[0].Right != 0 {
		t.Errorf("row[0] = %+v", rows[0])
	}
	if rows[2].Left != -1 || rows[2].Right != 2 || rows[2].Block != blocks.None {
		t.Errorf("row[2] = %+v", rows[2])
	}
}
