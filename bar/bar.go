// Package bar implements the menu-bar and footer-bar widget layer:
// one-row top-level windows that pack interactive items left to right
// and delegate open/close lifecycle to the shortcut registry.
package bar

import (
	"errors"

	"github.com/panekit/panekit/cell"
	"github.com/panekit/panekit/panel"
	"github.com/panekit/panekit/screen"
	"github.com/panekit/panekit/shortcut"
	"github.com/panekit/panekit/window"
)

// ErrBarBoxed is returned when trying to border a bar; bars are
// always borderless single rows.
var ErrBarBoxed = errors.New("bar: bars cannot be boxed")

// MenuBar is the top-row bar of dropdown menus.
type MenuBar struct {
	*window.Window

	scr       *screen.Screen
	stack     *panel.Stack
	shortcuts *shortcut.Manager
	items     []*MenuItem
}

// NewMenuBar allocates the one-row bar across the top of the screen
// and registers it with the compositor.
func NewMenuBar(scr *screen.Screen, stack *panel.Stack, sm *shortcut.Manager) (*MenuBar, error) {
	cols, _ := scr.Size()
	w, err := window.New(scr, 1, cols, 0, 0, "menubar")
	if err != nil {
		return nil, err
	}
	w.SetBackground(cell.ColorPair(screen.PairBar))

	b := &MenuBar{
		Window:    w,
		scr:       scr,
		stack:     stack,
		shortcuts: sm,
	}
	w.AttachPanel(stack.Add(b))
	return b, nil
}

// Box refuses; bars are borderless.
func (b *MenuBar) Box() error { return ErrBarBoxed }

// Unbox refuses; bars are borderless.
func (b *MenuBar) Unbox() error { return ErrBarBoxed }

// Draw renders every item label in its current state.
func (b *MenuBar) Draw() {
	for _, it := range b.items {
		it.draw()
	}
}

// Compose redraws the item labels and blits the bar.
func (b *MenuBar) Compose() {
	b.Draw()
	b.Window.Compose()
}

// Items returns the bar's items in packing order.
func (b *MenuBar) Items() []*MenuItem {
	return b.items
}

// nextX returns the packing offset after the last item.
func (b *MenuBar) nextX() int {
	if n := len(b.items); n > 0 {
		return b.items[n-1].endX
	}
	return 0
}

// AddItem appends a dropdown item bound to key. A KeyNone key
// defaults to the label's first character. The item's open/close pair
// is registered with the shortcut manager, so adding two items on the
// same key fails with the registry's duplicate error.
func (b *MenuBar) AddItem(label string, entries []string, key screen.Key) (*MenuItem, error) {
	if key == screen.KeyNone && label != "" {
		key = screen.Key(label[0])
	}

	it, err := newMenuItem(b, label, key, b.nextX(), entries)
	if err != nil {
		return nil, err
	}
	if err := b.shortcuts.Add(key, it.Open, it.Close); err != nil {
		it.drop.Panel().Remove()
		return nil, err
	}
	b.items = append(b.items, it)
	return it, nil
}

// FooterBar is the bottom-row bar of action items.
type FooterBar struct {
	*window.Window

	scr       *screen.Screen
	stack     *panel.Stack
	shortcuts *shortcut.Manager
	items     []*FooterItem
}

// NewFooterBar allocates the one-row bar across the bottom of the
// screen and registers it with the compositor.
func NewFooterBar(scr *screen.Screen, stack *panel.Stack, sm *shortcut.Manager) (*FooterBar, error) {
	cols, rows := scr.Size()
	w, err := window.New(scr, 1, cols, rows-1, 0, "footerbar")
	if err != nil {
		return nil, err
	}
	w.SetBackground(cell.ColorPair(screen.PairBar))

	b := &FooterBar{
		Window:    w,
		scr:       scr,
		stack:     stack,
		shortcuts: sm,
	}
	w.AttachPanel(stack.Add(b))
	return b, nil
}

// Box refuses; bars are borderless.
func (b *FooterBar) Box() error { return ErrBarBoxed }

// Unbox refuses; bars are borderless.
func (b *FooterBar) Unbox() error { return ErrBarBoxed }

// Draw renders every item label with its key name.
func (b *FooterBar) Draw() {
	for _, it := range b.items {
		it.draw()
	}
}

// Compose redraws the item labels and blits the bar.
func (b *FooterBar) Compose() {
	b.Draw()
	b.Window.Compose()
}

// Items returns the bar's items in packing order.
func (b *FooterBar) Items() []*FooterItem {
	return b.items
}

func (b *FooterBar) nextX() int {
	if n := len(b.items); n > 0 {
		return b.items[n-1].endX
	}
	return 0
}

// AddItem appends a fire-and-forget action item bound to key. The
// action has nothing to deactivate, so its deactivate callback is
// absent from the registry.
func (b *FooterBar) AddItem(label string, key screen.Key, action func()) (*FooterItem, error) {
	it := newFooterItem(b, label, key, b.nextX(), action)
	if err := b.shortcuts.Add(key, action, nil); err != nil {
		return nil, err
	}
	b.items = append(b.items, it)
	return it, nil
}
