package window

import "github.com/panekit/panekit/cell"

// Buffer is the cell surface backing a window and every sub-window
// derived from it. Derived windows address the same buffer at an
// offset, so a write through a child is visible through its parent.
type Buffer struct {
	cells []cell.Value
	rows  int
	cols  int
}

// NewBuffer allocates a surface filled with blank cells.
func NewBuffer(rows, cols int) *Buffer {
	b := &Buffer{
		cells: make([]cell.Value, rows*cols),
		rows:  rows,
		cols:  cols,
	}
	blank := cell.Encode(' ', cell.AttrNormal)
	for i := range b.cells {
		b.cells[i] = blank
	}
	return b
}

// inBounds reports whether the cell lies on the surface.
func (b *Buffer) inBounds(y, x int) bool {
	return y >= 0 && y < b.rows && x >= 0 && x < b.cols
}

// Set writes one packed cell. Out-of-bounds writes are dropped.
func (b *Buffer) Set(y, x int, v cell.Value) bool {
	if !b.inBounds(y, x) {
		return false
	}
	b.cells[y*b.cols+x] = v
	return true
}

// Get reads one packed cell.
func (b *Buffer) Get(y, x int) (cell.Value, bool) {
	if !b.inBounds(y, x) {
		return 0, false
	}
	return b.cells[y*b.cols+x], true
}
