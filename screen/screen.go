// Package screen owns the process-wide terminal surface.
//
// Exactly one Screen may exist per process. New fails with
// ErrScreenActive while another Screen is live; Fini releases the
// terminal and the singleton slot and is safe to call more than once.
// All drawing goes through SetCell into the backend's back buffer and
// reaches the physical terminal only on Flush.
package screen

import (
	"errors"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/panekit/panekit/cell"
)

// ErrScreenActive is returned by New when a Screen already exists.
var ErrScreenActive = errors.New("screen: a screen is already active")

// Default color pair ids, mirroring the classic bar/standard split.
const (
	// PairBar is black-on-white, the menu and footer bar background.
	PairBar = 254
	// PairStandard is white-on-black, the normal text pair.
	PairStandard = 255
)

// DefaultPollWait is the bounded wait used by timed key reads when the
// caller does not configure one.
const DefaultPollWait = 200 * time.Millisecond

var (
	activeMu sync.Mutex
	active   *Screen
)

// Screen is the terminal surface handle. Apart from the input pump
// goroutine it owns, a Screen is meant to be driven from a single
// goroutine; its drawing methods are not safe for concurrent use.
type Screen struct {
	ts    tcell.Screen
	pairs map[int]tcell.Style

	events chan tcell.Event
	done   chan struct{}

	pushMu   sync.Mutex
	pushback []Key

	finiOnce sync.Once
}

// New enters raw, no-echo mode on the real terminal and registers the
// default color pairs. It fails with ErrScreenActive if a Screen is
// already live.
func New() (*Screen, error) {
	ts, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return initScreen(ts)
}

// NewSimulation builds a Screen over an in-memory simulation backend
// of the given size. The returned SimulationScreen can inject input
// and inspect cell contents in tests.
func NewSimulation(width, height int) (*Screen, tcell.SimulationScreen, error) {
	ts := tcell.NewSimulationScreen("UTF-8")
	s, err := initScreen(ts)
	if err != nil {
		return nil, nil, err
	}
	ts.SetSize(width, height)
	return s, ts, nil
}

func initScreen(ts tcell.Screen) (*Screen, error) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		return nil, ErrScreenActive
	}

	if err := ts.Init(); err != nil {
		return nil, err
	}

	s := &Screen{
		ts:     ts,
		pairs:  make(map[int]tcell.Style),
		events: make(chan tcell.Event, 64),
		done:   make(chan struct{}),
	}
	s.RegisterPair(PairBar, tcell.ColorBlack, tcell.ColorWhite)
	s.RegisterPair(PairStandard, tcell.ColorWhite, tcell.ColorBlack)

	Go(s.pump)

	active = s
	return s, nil
}

// pump forwards backend events to the input channel. It exits, closing
// the channel, when the backend is finalized: either PollEvent returns
// nil, or Fini signals done while the pump is blocked on a full
// channel that nothing is draining.
func (s *Screen) pump() {
	defer close(s.events)
	for {
		ev := s.ts.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Fini restores the terminal and releases the singleton slot. Safe to
// call multiple times and required on every exit path.
func (s *Screen) Fini() {
	s.finiOnce.Do(func() {
		close(s.done)
		s.ts.Fini()
		activeMu.Lock()
		if active == s {
			active = nil
		}
		activeMu.Unlock()
	})
}

// Size returns the terminal dimensions in cells.
func (s *Screen) Size() (cols, rows int) {
	w, h := s.ts.Size()
	return w, h
}

// RegisterPair binds a color pair id to a foreground/background pair.
// Ids occupy one byte; pair 0 is always the backend default style.
func (s *Screen) RegisterPair(id int, fg, bg tcell.Color) {
	s.pairs[id&0xFF] = tcell.StyleDefault.Foreground(fg).Background(bg)
}

// style resolves an attribute to a backend style.
func (s *Screen) style(a cell.Attr) tcell.Style {
	st, ok := s.pairs[a.Pair()]
	if !ok {
		st = tcell.StyleDefault
	}
	if a&cell.AttrBold != 0 {
		st = st.Bold(true)
	}
	if a&cell.AttrDim != 0 {
		st = st.Dim(true)
	}
	if a&cell.AttrReverse != 0 {
		st = st.Reverse(true)
	}
	if a&cell.AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if a&cell.AttrBlink != 0 {
		st = st.Blink(true)
	}
	return st
}

// SetCell writes one packed cell into the back buffer. A zero
// character renders as a space.
func (s *Screen) SetCell(x, y int, v cell.Value) {
	ch, attr := cell.Decode(v)
	var r rune
	switch {
	case attr&cell.AttrAltCharset != 0:
		r = cell.ACSRune(ch)
	case ch == 0:
		r = ' '
	default:
		r = rune(ch)
	}
	s.ts.SetContent(x, y, r, nil, s.style(attr))
}

// Flush pushes the back buffer to the physical terminal in one batched
// write. This is the only point where drawing I/O happens.
func (s *Screen) Flush() {
	s.ts.Show()
}

// Sync forces a full repaint on the next flush.
func (s *Screen) Sync() {
	s.ts.Sync()
}

// Beep sounds the terminal bell.
func (s *Screen) Beep() {
	s.ts.Beep()
}
