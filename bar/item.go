package bar

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/panekit/panekit/cell"
	"github.com/panekit/panekit/screen"
	"github.com/panekit/panekit/window"
)

// MenuItem is one dropdown entry on the menu bar. The dropdown window
// is pre-rendered at construction time since its entries are static
// for the item's lifetime; visibility is controlled entirely through
// the dropdown's z-order handle.
type MenuItem struct {
	label      string
	key        screen.Key
	begX, endX int
	active     bool

	bar  *MenuBar
	drop *window.Window
}

func newMenuItem(b *MenuBar, label string, key screen.Key, begX int, entries []string) (*MenuItem, error) {
	slot := runewidth.StringWidth(label) + 4

	height := len(entries) + 1
	width := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e) + 2; w > width {
			width = w
		}
	}
	if width < slot {
		width = slot
	}

	drop, err := window.New(b.scr, height, width, 1, begX, "menu:"+label)
	if err != nil {
		return nil, err
	}
	drop.SetBackground(cell.ColorPair(screen.PairBar))

	barAttr := cell.ColorPair(screen.PairBar)
	lineAttr := barAttr | cell.AttrAltCharset
	side := string(cell.ACSVLine)
	for y := 0; y < height-1; y++ {
		drop.WriteAt(side, y, 0, lineAttr)
		drop.WriteAt(side, y, width-1, lineAttr)
	}
	bottom := string(cell.ACSLLCorner) + strings.Repeat(string(cell.ACSHLine), width-2) + string(cell.ACSLRCorner)
	drop.WriteAt(bottom, height-1, 0, lineAttr)
	for i, entry := range entries {
		drop.WriteAt(entry, i, 1, barAttr)
	}

	p := b.stack.Add(drop)
	p.Hide()
	drop.AttachPanel(p)

	return &MenuItem{
		label: label,
		key:   key,
		begX:  begX,
		endX:  begX + slot,
		bar:   b,
		drop:  drop,
	}, nil
}

// Label returns the display text.
func (it *MenuItem) Label() string { return it.label }

// Key returns the bound key code.
func (it *MenuItem) Key() screen.Key { return it.key }

// Span returns the item's start and end columns on the bar.
func (it *MenuItem) Span() (begX, endX int) { return it.begX, it.endX }

// Active reports whether the dropdown is open.
func (it *MenuItem) Active() bool { return it.active }

// Dropdown returns the floating dropdown window.
func (it *MenuItem) Dropdown() *window.Window { return it.drop }

// draw renders the bar label, highlighted while active.
func (it *MenuItem) draw() {
	attr := cell.ColorPair(screen.PairBar)
	if it.active {
		attr = cell.ColorPair(screen.PairStandard)
	}
	_ = it.bar.Window.WriteAt("  "+it.label+"  ", 0, it.begX, attr)
}

// Toggle flips the dropdown between open and closed.
func (it *MenuItem) Toggle() {
	if it.active {
		it.Close()
	} else {
		it.Open()
	}
}

// Open shows the dropdown and raises it to the top of the z-order.
// Opening an already-open item closes it first, so a repeated open
// still ends on top.
func (it *MenuItem) Open() {
	if it.active {
		it.Close()
	}
	it.active = true
	p := it.drop.Panel()
	p.Show()
	p.Top()
	it.bar.stack.Update()
}

// Close hides the dropdown, removing it from compositing without
// destroying its cells.
func (it *MenuItem) Close() {
	if !it.active {
		return
	}
	it.drop.Panel().Hide()
	it.active = false
	it.bar.stack.Update()
}

// FooterItem is one stateless action entry on the footer bar.
type FooterItem struct {
	label      string
	key        screen.Key
	begX, endX int

	bar    *FooterBar
	action func()
}

func newFooterItem(b *FooterBar, label string, key screen.Key, begX int, action func()) *FooterItem {
	width := runewidth.StringWidth(label) + 4 + runewidth.StringWidth(screen.KeyName(key))
	return &FooterItem{
		label:  label,
		key:    key,
		begX:   begX,
		endX:   begX + width,
		bar:    b,
		action: action,
	}
}

// Label returns the display text.
func (it *FooterItem) Label() string { return it.label }

// Key returns the bound key code.
func (it *FooterItem) Key() screen.Key { return it.key }

// Span returns the item's start and end columns on the bar.
func (it *FooterItem) Span() (begX, endX int) { return it.begX, it.endX }

// draw renders the label in the bar style and the key name
// emphasized after it.
func (it *FooterItem) draw() {
	barAttr := cell.ColorPair(screen.PairBar)
	w := it.bar.Window
	if err := w.WriteAt("  "+it.label+" ", 0, it.begX, barAttr); err != nil {
		return
	}
	_ = w.Write(screen.KeyName(it.key), barAttr|cell.AttrBold)
	_ = w.Write(" ", barAttr)
}
