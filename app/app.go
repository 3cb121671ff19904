// Package app is the root composition: the window registry, the
// screen, the optional bars, the shortcut registry, and the
// poll-dispatch-redraw cycle that drives them.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/panekit/panekit/bar"
	"github.com/panekit/panekit/panel"
	"github.com/panekit/panekit/screen"
	"github.com/panekit/panekit/shortcut"
	"github.com/panekit/panekit/window"
)

// ErrNoWindows is returned by key reads and run cycles when no window
// is registered to read from.
var ErrNoWindows = errors.New("app: no windows to fetch keys from")

// Config selects the optional bars and tunes the poll cycle.
type Config struct {
	// MenuBar reserves the top row for a menu bar.
	MenuBar bool
	// FooterBar reserves the bottom row for a footer bar.
	FooterBar bool
	// PollWait bounds the non-blocking key read each cycle. Zero
	// selects screen.DefaultPollWait.
	PollWait time.Duration
}

// App owns the top-level windows and drives the cycle. Like the rest
// of the toolkit it is single-threaded: one goroutine runs the cycle
// and mutates the window tree.
type App struct {
	scr       *screen.Screen
	stack     *panel.Stack
	shortcuts *shortcut.Manager
	menu      *bar.MenuBar
	footer    *bar.FooterBar

	order   []string
	windows map[string]*window.Window

	pollWait time.Duration
}

// New acquires the terminal and assembles an App. The screen must be
// released with Close on every exit path.
func New(cfg Config) (*App, error) {
	scr, err := screen.New()
	if err != nil {
		return nil, err
	}
	a, err := newApp(scr, cfg)
	if err != nil {
		scr.Fini()
		return nil, err
	}
	return a, nil
}

// NewWithScreen assembles an App over an existing screen, which the
// caller keeps responsibility for releasing. Used with simulation
// screens in tests.
func NewWithScreen(scr *screen.Screen, cfg Config) (*App, error) {
	return newApp(scr, cfg)
}

func newApp(scr *screen.Screen, cfg Config) (*App, error) {
	a := &App{
		scr:       scr,
		stack:     panel.NewStack(),
		shortcuts: shortcut.New(),
		windows:   make(map[string]*window.Window),
		pollWait:  cfg.PollWait,
	}
	if a.pollWait <= 0 {
		a.pollWait = screen.DefaultPollWait
	}

	var err error
	if cfg.MenuBar {
		if a.menu, err = bar.NewMenuBar(scr, a.stack, a.shortcuts); err != nil {
			return nil, err
		}
	}
	if cfg.FooterBar {
		if a.footer, err = bar.NewFooterBar(scr, a.stack, a.shortcuts); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Screen returns the terminal surface.
func (a *App) Screen() *screen.Screen { return a.scr }

// Shortcuts returns the key registry.
func (a *App) Shortcuts() *shortcut.Manager { return a.shortcuts }

// Stack returns the z-order stack.
func (a *App) Stack() *panel.Stack { return a.stack }

// MenuBar returns the menu bar, or nil if not configured.
func (a *App) MenuBar() *bar.MenuBar { return a.menu }

// FooterBar returns the footer bar, or nil if not configured.
func (a *App) FooterBar() *bar.FooterBar { return a.footer }

// AddWindow creates a top-level window, shrinking the requested
// height by one row per configured bar and pushing the origin below
// the menu bar, so callers can ask for full-screen geometry without
// caring which bars exist.
func (a *App) AddWindow(name string, rows, cols, y, x int) (*window.Window, error) {
	if _, ok := a.windows[name]; ok {
		return nil, fmt.Errorf("%w: %q", window.ErrDuplicateName, name)
	}

	if a.menu != nil {
		rows--
		y++
	}
	if a.footer != nil {
		rows--
	}

	w, err := window.New(a.scr, rows, cols, y, x, name)
	if err != nil {
		return nil, err
	}
	w.AttachPanel(a.stack.Add(w))
	a.windows[name] = w
	a.order = append(a.order, name)
	return w, nil
}

// Window returns a registered top-level window, or nil.
func (a *App) Window(name string) *window.Window {
	return a.windows[name]
}

// Windows returns the number of registered top-level windows.
func (a *App) Windows() int {
	return len(a.windows)
}

// RemoveWindow drops a top-level window and its z-order handle.
func (a *App) RemoveWindow(name string) error {
	w, ok := a.windows[name]
	if !ok {
		return fmt.Errorf("%w: %q", window.ErrNotFound, name)
	}
	if w.Panel() != nil {
		w.Panel().Remove()
	}
	delete(a.windows, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return nil
}

// PollKey reads one key. Blocking mode waits indefinitely;
// non-blocking mode waits at most the configured poll wait and
// returns screen.KeyNone on timeout. Fails with ErrNoWindows when no
// window is registered.
func (a *App) PollKey(blocking bool) (screen.Key, error) {
	if len(a.windows) == 0 {
		return screen.KeyNone, ErrNoWindows
	}
	if blocking {
		return a.scr.WaitKey(), nil
	}
	return a.scr.PollKey(a.pollWait), nil
}

// ReadKey implements shortcut.KeySource for the dispatch cycle.
func (a *App) ReadKey() screen.Key {
	return a.scr.PollKey(a.pollWait)
}

// Unget implements shortcut.KeySource.
func (a *App) Unget(k screen.Key) {
	a.scr.Unget(k)
}

// Refresh recomposes every visible panel bottom-to-top and flushes
// the screen in one batched write.
func (a *App) Refresh() {
	a.stack.Update()
	a.scr.Flush()
}

// RunCycle executes one iteration: every top-level window draws its
// content, one shortcut dispatch runs, then everything is recomposed
// and flushed. Draw hooks always run before dispatch, which runs
// before the flush.
func (a *App) RunCycle() error {
	if len(a.windows) == 0 {
		return ErrNoWindows
	}
	for _, name := range a.order {
		a.windows[name].Draw()
	}
	a.shortcuts.Check(a)
	a.Refresh()
	return nil
}

// Run repeats RunCycle until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := a.RunCycle(); err != nil {
			return err
		}
	}
}

// Close releases the terminal.
func (a *App) Close() {
	a.scr.Fini()
}
