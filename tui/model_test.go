package tui

import (
	"testing"

	"github.com/bassamadnan/vimail/mail"
)

func TestShownCount(t *testing.T) {
	tests := []struct {
		total, visible, want int
	}{
		{3, 10, 3},
		{10, 3, 3},
		{5, 5, 5},
		{0, 10, 0},
		{10, 0, 0},
		{4, -2, 0},
	}
	for _, tt := range tests {
		if got := shownCount(tt.total, tt.visible); got != tt.want {
			t.Errorf("shownCount(%d, %d) = %d, want %d", tt.total, tt.visible, got, tt.want)
		}
	}
}

func TestCursorSaturates(t *testing.T) {
	for shown := 1; shown <= 6; shown++ {
		c := newCursor(shown, 10)

		c.up()
		if c.pos != 0 {
			t.Fatalf("shown %d: up from 0 moved to %d", shown, c.pos)
		}
		for step := 1; step < shown; step++ {
			c.down()
			if c.pos != step {
				t.Fatalf("shown %d: after %d downs pos = %d", shown, step, c.pos)
			}
		}
		c.down()
		if c.pos != shown-1 {
			t.Errorf("shown %d: down at last row moved to %d", shown, c.pos)
		}
		for i := 0; i < 2*shown; i++ {
			c.up()
		}
		if c.pos != 0 {
			t.Errorf("shown %d: repeated up stopped at %d, want 0", shown, c.pos)
		}
	}
}

func TestCursorStopsAtVisibleRows(t *testing.T) {
	c := newCursor(50, 4)
	for i := 0; i < 10; i++ {
		c.down()
	}
	if c.pos != 3 {
		t.Errorf("pos = %d, want 3", c.pos)
	}
}

func TestEmptyCursor(t *testing.T) {
	c := newCursor(0, 10)
	if !c.empty() {
		t.Fatal("empty() = false, want true")
	}
	c.down()
	c.up()
	if c.pos != 0 {
		t.Errorf("pos = %d, want 0", c.pos)
	}
}

func TestRecords(t *testing.T) {
	r := NewRecords([]mail.Message{
		{From: "alice", To: "bob", Subject: "first", Body: "hello"},
	})
	r.Append(Record{Header: "second"})

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	first := r.At(0)
	if first.LeftHeader != "alice" || first.RightHeader != "bob" || first.Header != "first" || first.Content != "hello" {
		t.Errorf("At(0) = %+v", *first)
	}
	if got := r.At(1).Header; got != "second" {
		t.Errorf("At(1).Header = %q, want %q", got, "second")
	}
	if r.At(2) != nil || r.At(-1) != nil {
		t.Error("At() out of range returned a record")
	}

	var nilRecords *Records
	if nilRecords.Len() != 0 || nilRecords.At(0) != nil {
		t.Error("nil Records is not empty")
	}
}
