// Package window implements the compositor unit: a rectangular region
// of the terminal with its own local coordinate space, an ownership
// tree of named sub-windows, an optional border, and a z-order handle
// used during compositing.
//
// A window created with New owns its cell surface. A window derived
// with Derive shares its owner's surface at a relative offset, so the
// parent composites the child's cells for free. The parent link is
// navigational only; ownership always flows downward.
package window

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/panekit/panekit/cell"
	"github.com/panekit/panekit/panel"
	"github.com/panekit/panekit/screen"
)

var (
	// ErrAllocation reports invalid geometry at creation time.
	ErrAllocation = errors.New("window: invalid geometry")
	// ErrOutOfBounds reports a write or read outside the window rectangle.
	ErrOutOfBounds = errors.New("window: outside window rectangle")
	// ErrDuplicateName reports a sub-window name already in use.
	ErrDuplicateName = errors.New("window: sub-window name already in use")
	// ErrNotFound reports a missing sub-window.
	ErrNotFound = errors.New("window: no such sub-window")
)

// Drawable is implemented by window kinds that paint their own
// content. A plain window without content is a valid Drawable that
// paints nothing.
type Drawable interface {
	Draw()
}

// Window is one rectangular region of the terminal surface.
type Window struct {
	id   string
	name string
	scr  *screen.Screen

	buf        *Buffer
	bufY, bufX int // window origin within the shared surface
	rows, cols int
	y, x       int // absolute for owned windows, parent-relative for derived

	boxed      bool
	bg         cell.Attr
	curY, curX int

	parent   *Window
	children map[string]*Window
	pan      *panel.Panel

	drawFunc func(*Window)
}

// New allocates a window with its own surface at an absolute origin.
// The name defaults to the window's id when empty. Fails with
// ErrAllocation when the rectangle is degenerate or exceeds the
// screen.
func New(scr *screen.Screen, rows, cols, y, x int, name string) (*Window, error) {
	if rows <= 0 || cols <= 0 || y < 0 || x < 0 {
		return nil, fmt.Errorf("%w: %dx%d at (%d,%d)", ErrAllocation, rows, cols, y, x)
	}
	sw, sh := scr.Size()
	if y+rows > sh || x+cols > sw {
		return nil, fmt.Errorf("%w: %dx%d at (%d,%d) exceeds %dx%d screen",
			ErrAllocation, rows, cols, y, x, sw, sh)
	}

	id := uuid.NewString()
	if name == "" {
		name = id
	}
	return &Window{
		id:       id,
		name:     name,
		scr:      scr,
		buf:      NewBuffer(rows, cols),
		rows:     rows,
		cols:     cols,
		y:        y,
		x:        x,
		children: make(map[string]*Window),
	}, nil
}

// Derive allocates a sub-window whose coordinates are relative to w
// and whose cells live on w's surface. Fails with ErrDuplicateName if
// w already owns a sub-window of that name, or ErrAllocation if the
// rectangle escapes w.
func (w *Window) Derive(name string, rows, cols, y, x int) (*Window, error) {
	id := uuid.NewString()
	if name == "" {
		name = id
	}
	if _, ok := w.children[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if rows <= 0 || cols <= 0 || y < 0 || x < 0 || y+rows > w.rows || x+cols > w.cols {
		return nil, fmt.Errorf("%w: %dx%d at (%d,%d) escapes %q", ErrAllocation, rows, cols, y, x, w.name)
	}

	child := &Window{
		id:       id,
		name:     name,
		scr:      w.scr,
		buf:      w.buf,
		bufY:     w.bufY + y,
		bufX:     w.bufX + x,
		rows:     rows,
		cols:     cols,
		y:        y,
		x:        x,
		parent:   w,
		children: make(map[string]*Window),
	}
	w.children[name] = child
	return child, nil
}

// Child returns the named sub-window, or nil.
func (w *Window) Child(name string) *Window {
	return w.children[name]
}

// Children returns the number of sub-windows.
func (w *Window) Children() int {
	return len(w.children)
}

// RemoveChild removes and drops the named sub-window, detaching its
// z-order handle if it has one. Fails with ErrNotFound and leaves the
// sub-window set unchanged when absent.
func (w *Window) RemoveChild(name string) error {
	c, ok := w.children[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if c.pan != nil {
		c.pan.Remove()
	}
	delete(w.children, name)
	return nil
}

// ID returns the window's stable unique id.
func (w *Window) ID() string { return w.id }

// Name returns the window's human-readable name.
func (w *Window) Name() string { return w.name }

// Parent returns the owning window for derived windows, or nil. The
// link is for coordinate translation only; never use it for lifetime
// decisions.
func (w *Window) Parent() *Window { return w.parent }

// Size returns the window dimensions in cells.
func (w *Window) Size() (rows, cols int) {
	return w.rows, w.cols
}

// Inner returns the writable dimensions, shrunk by the border when
// boxed.
func (w *Window) Inner() (rows, cols int) {
	if w.boxed {
		return w.rows - 2, w.cols - 2
	}
	return w.rows, w.cols
}

// Origin returns the window's absolute origin on the screen. For a
// derived window this walks the parent chain, so a child at relative
// (dy,dx) under a parent at (py,px) reports (py+dy, px+dx).
func (w *Window) Origin() (y, x int) {
	if w.parent != nil {
		py, px := w.parent.Origin()
		return py + w.y, px + w.x
	}
	return w.y, w.x
}

// MoveTo repositions the window's origin without resizing. For
// derived windows the coordinates stay parent-relative. A moved
// top-level window blanks the screen region it vacates, so the next
// recompose does not leave ghost cells behind; lower panels repaint
// over the blank on the following update. Moving a window out of
// bounds is not checked here; compositing clips.
func (w *Window) MoveTo(y, x int) {
	if w.parent == nil && (y != w.y || x != w.x) {
		w.eraseScreenRect()
	}
	w.y = y
	w.x = x
}

// eraseScreenRect blanks the window's current rectangle in the screen
// back buffer without touching the window's own cells.
func (w *Window) eraseScreenRect() {
	absY, absX := w.Origin()
	blank := cell.Encode(' ', cell.AttrNormal)
	for y := 0; y < w.rows; y++ {
		for x := 0; x < w.cols; x++ {
			w.scr.SetCell(absX+x, absY+y, blank)
		}
	}
}

// Boxed reports whether the window currently has a border.
func (w *Window) Boxed() bool { return w.boxed }

// Box draws a border along the window edge. While boxed, addressed
// writes are offset by one cell in each axis so content stays inside
// the border.
func (w *Window) Box() {
	w.drawBorder(false)
	w.boxed = true
}

// Unbox erases the border and restores unboxed write addressing.
func (w *Window) Unbox() {
	w.drawBorder(true)
	w.boxed = false
}

func (w *Window) drawBorder(erase bool) {
	if w.rows < 2 || w.cols < 2 {
		return
	}

	attr := w.bg | cell.AttrAltCharset
	ul, ur, ll, lr := cell.ACSULCorner, cell.ACSURCorner, cell.ACSLLCorner, cell.ACSLRCorner
	hl, vl := cell.ACSHLine, cell.ACSVLine
	if erase {
		attr = w.bg
		ul, ur, ll, lr, hl, vl = ' ', ' ', ' ', ' ', ' ', ' '
	}

	w.buf.Set(w.bufY, w.bufX, cell.Encode(ul, attr))
	w.buf.Set(w.bufY, w.bufX+w.cols-1, cell.Encode(ur, attr))
	w.buf.Set(w.bufY+w.rows-1, w.bufX, cell.Encode(ll, attr))
	w.buf.Set(w.bufY+w.rows-1, w.bufX+w.cols-1, cell.Encode(lr, attr))
	for x := 1; x < w.cols-1; x++ {
		w.buf.Set(w.bufY, w.bufX+x, cell.Encode(hl, attr))
		w.buf.Set(w.bufY+w.rows-1, w.bufX+x, cell.Encode(hl, attr))
	}
	for y := 1; y < w.rows-1; y++ {
		w.buf.Set(w.bufY+y, w.bufX, cell.Encode(vl, attr))
		w.buf.Set(w.bufY+y, w.bufX+w.cols-1, cell.Encode(vl, attr))
	}
}

// WriteAt writes text starting at (y,x) in window coordinates,
// offset inside the border while boxed. The whole run must fit the
// rectangle or nothing is written and ErrOutOfBounds is returned. The
// write cursor is left after the text.
func (w *Window) WriteAt(text string, y, x int, attr cell.Attr) error {
	if w.boxed {
		y++
		x++
	}
	return w.write(text, y, x, attr)
}

// Write writes text at the current cursor position.
func (w *Window) Write(text string, attr cell.Attr) error {
	return w.write(text, w.curY, w.curX, attr)
}

func (w *Window) write(text string, y, x int, attr cell.Attr) error {
	if y < 0 || x < 0 || y >= w.rows || x+len(text) > w.cols {
		return fmt.Errorf("%w: %d bytes at (%d,%d) in %dx%d", ErrOutOfBounds, len(text), y, x, w.rows, w.cols)
	}
	for i := 0; i < len(text); i++ {
		w.buf.Set(w.bufY+y, w.bufX+x+i, cell.Encode(text[i], attr))
	}
	w.curY, w.curX = y, x+len(text)
	return nil
}

// ReadCellAt decodes the cell at (y,x) in window coordinates. Reads
// are not border-offset, matching the raw surface addressing.
func (w *Window) ReadCellAt(y, x int) (byte, cell.Attr, error) {
	if y < 0 || x < 0 || y >= w.rows || x >= w.cols {
		return 0, 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, y, x, w.rows, w.cols)
	}
	v, _ := w.buf.Get(w.bufY+y, w.bufX+x)
	ch, attr := cell.Decode(v)
	return ch, attr, nil
}

// SetBackground records the background attribute and repaints blank
// cells with it. Text keeps its own attributes.
func (w *Window) SetBackground(attr cell.Attr) {
	w.bg = attr
	for y := 0; y < w.rows; y++ {
		for x := 0; x < w.cols; x++ {
			v, _ := w.buf.Get(w.bufY+y, w.bufX+x)
			if ch, _ := cell.Decode(v); ch == ' ' || ch == 0 {
				w.buf.Set(w.bufY+y, w.bufX+x, cell.Encode(' ', attr))
			}
		}
	}
}

// Erase fills the window with blank cells in the background
// attribute. The border, if any, is erased with everything else.
func (w *Window) Erase() {
	blank := cell.Encode(' ', w.bg)
	for y := 0; y < w.rows; y++ {
		for x := 0; x < w.cols; x++ {
			w.buf.Set(w.bufY+y, w.bufX+x, blank)
		}
	}
	w.curY, w.curX = 0, 0
}

// Clear erases the window and forces a full repaint on the next
// flush.
func (w *Window) Clear() {
	w.Erase()
	w.scr.Sync()
}

// AttachPanel binds the z-order handle assigned by the compositor.
func (w *Window) AttachPanel(p *panel.Panel) {
	w.pan = p
}

// Panel returns the window's z-order handle, or nil for derived
// windows composited through their parent.
func (w *Window) Panel() *panel.Panel {
	return w.pan
}

// Compose blits the window's cells into the screen back buffer at its
// absolute origin. Derived windows live on the owner's surface, so
// composing a window carries its sub-windows with it. Compose never
// flushes; the screen flush is a separate batched call.
func (w *Window) Compose() {
	absY, absX := w.Origin()
	for y := 0; y < w.rows; y++ {
		for x := 0; x < w.cols; x++ {
			v, ok := w.buf.Get(w.bufY+y, w.bufX+x)
			if !ok {
				continue
			}
			w.scr.SetCell(absX+x, absY+y, v)
		}
	}
}

// SetDrawFunc installs the content hook invoked by Draw. Window kinds
// without content simply leave it unset.
func (w *Window) SetDrawFunc(fn func(*Window)) {
	w.drawFunc = fn
}

// Draw paints the window's content through its hook, if any. A window
// without content draws nothing.
func (w *Window) Draw() {
	if w.drawFunc != nil {
		w.drawFunc(w)
	}
}

// String describes the window for logs.
func (w *Window) String() string {
	y, x := w.Origin()
	return fmt.Sprintf("window %q (%s) %dx%d at (%d,%d)", w.name, w.id, w.rows, w.cols, y, x)
}
