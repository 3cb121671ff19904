package window

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/panekit/panekit/cell"
	"github.com/panekit/panekit/screen"
)

func newTestScreen(t *testing.T) (*screen.Screen, tcell.SimulationScreen) {
	t.Helper()
	s, sim, err := screen.NewSimulation(80, 24)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	t.Cleanup(s.Fini)
	return s, sim
}

func TestNewPositionRoundTrip(t *testing.T) {
	s, _ := newTestScreen(t)

	tests := []struct {
		rows, cols, y, x int
	}{
		{24, 80, 0, 0},
		{5, 10, 3, 7},
		{1, 1, 23, 79},
	}
	for _, tt := range tests {
		w, err := New(s, tt.rows, tt.cols, tt.y, tt.x, "")
		if err != nil {
			t.Fatalf("New(%dx%d at %d,%d) failed: %v", tt.rows, tt.cols, tt.y, tt.x, err)
		}
		y, x := w.Origin()
		if y != tt.y || x != tt.x {
			t.Errorf("expected origin (%d,%d), got (%d,%d)", tt.y, tt.x, y, x)
		}
		rows, cols := w.Size()
		if rows != tt.rows || cols != tt.cols {
			t.Errorf("expected size %dx%d, got %dx%d", tt.rows, tt.cols, rows, cols)
		}
	}
}

func TestNewRejectsInvalidGeometry(t *testing.T) {
	s, _ := newTestScreen(t)

	tests := []struct {
		name             string
		rows, cols, y, x int
	}{
		{"zero rows", 0, 10, 0, 0},
		{"negative cols", 5, -1, 0, 0},
		{"negative origin", 5, 5, -1, 0},
		{"exceeds height", 25, 10, 0, 0},
		{"exceeds width from offset", 5, 20, 0, 70},
	}
	for _, tt := range tests {
		if _, err := New(s, tt.rows, tt.cols, tt.y, tt.x, tt.name); !errors.Is(err, ErrAllocation) {
			t.Errorf("%s: expected ErrAllocation, got %v", tt.name, err)
		}
	}
}

func TestNameDefaultsToID(t *testing.T) {
	s, _ := newTestScreen(t)

	w, err := New(s, 5, 5, 0, 0, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if w.Name() == "" || w.Name() != w.ID() {
		t.Errorf("expected name to default to id %q, got %q", w.ID(), w.Name())
	}

	named, err := New(s, 5, 5, 5, 0, "named")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if named.Name() != "named" || named.Name() == named.ID() {
		t.Errorf("expected explicit name, got %q (id %q)", named.Name(), named.ID())
	}
}

func TestDeriveChildAbsoluteOrigin(t *testing.T) {
	s, _ := newTestScreen(t)

	parent, err := New(s, 20, 60, 2, 5, "parent")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	child, err := parent.Derive("child", 5, 10, 3, 4)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	y, x := child.Origin()
	if y != 2+3 || x != 5+4 {
		t.Errorf("expected child origin (5,9), got (%d,%d)", y, x)
	}
	if child.Parent() != parent {
		t.Error("expected parent back-reference")
	}

	grand, err := child.Derive("grand", 2, 2, 1, 1)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	y, x = grand.Origin()
	if y != 6 || x != 10 {
		t.Errorf("expected grandchild origin (6,10), got (%d,%d)", y, x)
	}
}

func TestDeriveDuplicateName(t *testing.T) {
	s, _ := newTestScreen(t)

	parent, _ := New(s, 20, 60, 0, 0, "parent")
	if _, err := parent.Derive("sub", 5, 10, 0, 0); err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if _, err := parent.Derive("sub", 5, 10, 5, 0); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestDeriveEscapingParentFails(t *testing.T) {
	s, _ := newTestScreen(t)

	parent, _ := New(s, 10, 10, 0, 0, "parent")
	if _, err := parent.Derive("big", 5, 20, 0, 0); !errors.Is(err, ErrAllocation) {
		t.Errorf("expected ErrAllocation, got %v", err)
	}
}

func TestRemoveChild(t *testing.T) {
	s, _ := newTestScreen(t)

	parent, _ := New(s, 20, 60, 0, 0, "parent")
	parent.Derive("a", 5, 10, 0, 0)
	parent.Derive("b", 5, 10, 5, 0)

	if err := parent.RemoveChild("a"); err != nil {
		t.Fatalf("RemoveChild failed: %v", err)
	}
	if parent.Child("a") != nil {
		t.Error("expected 'a' gone after removal")
	}

	// A missing name fails and leaves the set untouched.
	if err := parent.RemoveChild("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if parent.Children() != 1 || parent.Child("b") == nil {
		t.Error("expected sub-window set unchanged after failed removal")
	}
}

func TestSharedSurface(t *testing.T) {
	s, _ := newTestScreen(t)

	parent, _ := New(s, 20, 60, 0, 0, "parent")
	child, _ := parent.Derive("child", 5, 10, 3, 4)

	if err := child.WriteAt("Z", 0, 0, cell.AttrNormal); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}

	// The write lands on the parent's surface at the child's offset.
	ch, _, err := parent.ReadCellAt(3, 4)
	if err != nil {
		t.Fatalf("ReadCellAt failed: %v", err)
	}
	if ch != 'Z' {
		t.Errorf("expected 'Z' on parent surface, got %q", ch)
	}
}

func TestBoxOffsetsWrites(t *testing.T) {
	s, _ := newTestScreen(t)

	w, _ := New(s, 10, 20, 0, 0, "boxed")
	w.Box()
	if !w.Boxed() {
		t.Fatal("expected boxed flag set")
	}

	if err := w.WriteAt("A", 0, 0, cell.AttrNormal); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}
	ch, _, _ := w.ReadCellAt(1, 1)
	if ch != 'A' {
		t.Errorf("expected boxed write at (1,1), got %q", ch)
	}

	// The border itself occupies the edge.
	edge, attr, _ := w.ReadCellAt(0, 0)
	if edge != cell.ACSULCorner || attr&cell.AttrAltCharset == 0 {
		t.Errorf("expected corner glyph at edge, got %q attr %#x", edge, attr)
	}

	// Unbox restores never-boxed addressing.
	w.Unbox()
	if err := w.WriteAt("B", 0, 0, cell.AttrNormal); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}
	ch, _, _ = w.ReadCellAt(0, 0)
	if ch != 'B' {
		t.Errorf("expected unboxed write at (0,0), got %q", ch)
	}
}

func TestInner(t *testing.T) {
	s, _ := newTestScreen(t)

	w, _ := New(s, 10, 20, 0, 0, "w")
	if rows, cols := w.Inner(); rows != 10 || cols != 20 {
		t.Errorf("expected 10x20 unboxed inner, got %dx%d", rows, cols)
	}
	w.Box()
	if rows, cols := w.Inner(); rows != 8 || cols != 18 {
		t.Errorf("expected 8x18 boxed inner, got %dx%d", rows, cols)
	}
}

func TestWriteOutOfBounds(t *testing.T) {
	s, _ := newTestScreen(t)

	w, _ := New(s, 5, 10, 0, 0, "w")
	if err := w.WriteAt("this text is far too long", 0, 0, cell.AttrNormal); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds for long write, got %v", err)
	}
	if err := w.WriteAt("x", 5, 0, cell.AttrNormal); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds for row past end, got %v", err)
	}

	// Nothing was written by the failed attempts.
	ch, _, _ := w.ReadCellAt(0, 0)
	if ch != ' ' {
		t.Errorf("expected untouched cell, got %q", ch)
	}
}

func TestCursorWrite(t *testing.T) {
	s, _ := newTestScreen(t)

	w, _ := New(s, 5, 20, 0, 0, "w")
	if err := w.WriteAt("ab", 2, 3, cell.AttrNormal); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}
	// A coordinate-free write continues at the cursor.
	if err := w.Write("cd", cell.AttrBold); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	ch, attr, _ := w.ReadCellAt(2, 5)
	if ch != 'c' || attr != cell.AttrBold {
		t.Errorf("expected bold 'c' at (2,5), got %q attr %#x", ch, attr)
	}
}

func TestReadCellAtDecodesAttr(t *testing.T) {
	s, _ := newTestScreen(t)

	w, _ := New(s, 5, 10, 0, 0, "w")
	want := cell.ColorPair(screen.PairBar) | cell.AttrBold
	if err := w.WriteAt("Q", 1, 2, want); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}
	ch, attr, err := w.ReadCellAt(1, 2)
	if err != nil {
		t.Fatalf("ReadCellAt failed: %v", err)
	}
	if ch != 'Q' || attr != want {
		t.Errorf("expected ('Q', %#x), got (%q, %#x)", want, ch, attr)
	}
}

func TestComposeBlitsToScreen(t *testing.T) {
	s, sim := newTestScreen(t)

	w, _ := New(s, 3, 10, 5, 7, "w")
	if err := w.WriteAt("hi", 1, 1, cell.AttrNormal); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}

	w.Compose()
	s.Flush()

	r, _, _, _ := sim.GetContent(8, 6) // absolute (y=5+1, x=7+1)
	if r != 'h' {
		t.Errorf("expected 'h' at absolute (6,8), got %q", r)
	}
}

func TestMoveTo(t *testing.T) {
	s, _ := newTestScreen(t)

	w, _ := New(s, 3, 10, 0, 0, "w")
	w.MoveTo(4, 6)
	y, x := w.Origin()
	if y != 4 || x != 6 {
		t.Errorf("expected origin (4,6) after move, got (%d,%d)", y, x)
	}

	rows, cols := w.Size()
	if rows != 3 || cols != 10 {
		t.Errorf("expected size unchanged by move, got %dx%d", rows, cols)
	}
}

func TestMoveToBlanksVacatedRegion(t *testing.T) {
	s, sim := newTestScreen(t)

	w, _ := New(s, 3, 10, 5, 7, "w")
	if err := w.WriteAt("hi", 1, 1, cell.AttrNormal); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}
	w.Compose()
	s.Flush()

	w.MoveTo(10, 20)
	w.Compose()
	s.Flush()

	// The old location is blanked, not left as a ghost.
	r, _, _, _ := sim.GetContent(8, 6)
	if r != ' ' {
		t.Errorf("expected vacated cell blanked, got %q", r)
	}
	r, _, _, _ = sim.GetContent(21, 11)
	if r != 'h' {
		t.Errorf("expected content at the new origin, got %q", r)
	}
}

func TestEraseUsesBackground(t *testing.T) {
	s, _ := newTestScreen(t)

	w, _ := New(s, 3, 10, 0, 0, "w")
	w.SetBackground(cell.ColorPair(screen.PairBar))
	w.WriteAt("text", 0, 0, cell.AttrNormal)
	w.Erase()

	ch, attr, _ := w.ReadCellAt(0, 0)
	if ch != ' ' || attr.Pair() != screen.PairBar {
		t.Errorf("expected blank bar-pair cell after erase, got %q attr %#x", ch, attr)
	}
}
