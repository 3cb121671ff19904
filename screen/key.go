package screen

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Key is a single input key code. Printable keys carry their character
// value; special keys are offset above the character space.
type Key int32

// KeyNone is the sentinel returned when no key was pressed within a
// timed read.
const KeyNone Key = -1

// specialBase lifts backend key codes above the printable range so the
// two never collide.
const specialBase Key = 0x10000

// Special key codes.
const (
	KeyEscape    = specialBase + Key(tcell.KeyEscape)
	KeyEnter     = specialBase + Key(tcell.KeyEnter)
	KeyTab       = specialBase + Key(tcell.KeyTab)
	KeyBacktab   = specialBase + Key(tcell.KeyBacktab)
	KeyBackspace = specialBase + Key(tcell.KeyBackspace2)
	KeyDelete    = specialBase + Key(tcell.KeyDelete)
	KeyInsert    = specialBase + Key(tcell.KeyInsert)

	KeyUp       = specialBase + Key(tcell.KeyUp)
	KeyDown     = specialBase + Key(tcell.KeyDown)
	KeyLeft     = specialBase + Key(tcell.KeyLeft)
	KeyRight    = specialBase + Key(tcell.KeyRight)
	KeyHome     = specialBase + Key(tcell.KeyHome)
	KeyEnd      = specialBase + Key(tcell.KeyEnd)
	KeyPageUp   = specialBase + Key(tcell.KeyPgUp)
	KeyPageDown = specialBase + Key(tcell.KeyPgDn)

	KeyF1  = specialBase + Key(tcell.KeyF1)
	KeyF2  = specialBase + Key(tcell.KeyF2)
	KeyF3  = specialBase + Key(tcell.KeyF3)
	KeyF4  = specialBase + Key(tcell.KeyF4)
	KeyF5  = specialBase + Key(tcell.KeyF5)
	KeyF6  = specialBase + Key(tcell.KeyF6)
	KeyF7  = specialBase + Key(tcell.KeyF7)
	KeyF8  = specialBase + Key(tcell.KeyF8)
	KeyF9  = specialBase + Key(tcell.KeyF9)
	KeyF10 = specialBase + Key(tcell.KeyF10)
	KeyF11 = specialBase + Key(tcell.KeyF11)
	KeyF12 = specialBase + Key(tcell.KeyF12)

	KeyCtrlA = specialBase + Key(tcell.KeyCtrlA)
	KeyCtrlB = specialBase + Key(tcell.KeyCtrlB)
	KeyCtrlC = specialBase + Key(tcell.KeyCtrlC)
	KeyCtrlD = specialBase + Key(tcell.KeyCtrlD)
	KeyCtrlE = specialBase + Key(tcell.KeyCtrlE)
	KeyCtrlF = specialBase + Key(tcell.KeyCtrlF)
	KeyCtrlG = specialBase + Key(tcell.KeyCtrlG)
	KeyCtrlK = specialBase + Key(tcell.KeyCtrlK)
	KeyCtrlL = specialBase + Key(tcell.KeyCtrlL)
	KeyCtrlN = specialBase + Key(tcell.KeyCtrlN)
	KeyCtrlO = specialBase + Key(tcell.KeyCtrlO)
	KeyCtrlP = specialBase + Key(tcell.KeyCtrlP)
	KeyCtrlQ = specialBase + Key(tcell.KeyCtrlQ)
	KeyCtrlR = specialBase + Key(tcell.KeyCtrlR)
	KeyCtrlS = specialBase + Key(tcell.KeyCtrlS)
	KeyCtrlT = specialBase + Key(tcell.KeyCtrlT)
	KeyCtrlU = specialBase + Key(tcell.KeyCtrlU)
	KeyCtrlV = specialBase + Key(tcell.KeyCtrlV)
	KeyCtrlW = specialBase + Key(tcell.KeyCtrlW)
	KeyCtrlX = specialBase + Key(tcell.KeyCtrlX)
	KeyCtrlY = specialBase + Key(tcell.KeyCtrlY)
	KeyCtrlZ = specialBase + Key(tcell.KeyCtrlZ)
)

// KeyName returns a short human-readable name for a key, used by
// footer item rendering.
func KeyName(k Key) string {
	switch {
	case k == KeyNone:
		return "None"
	case k >= specialBase:
		if name, ok := tcell.KeyNames[tcell.Key(k-specialBase)]; ok {
			return name
		}
		return fmt.Sprintf("Key(%d)", int(k-specialBase))
	default:
		return string(rune(k))
	}
}

// keyFromEvent extracts a key code from a backend event, if it is a
// key event at all.
func keyFromEvent(ev tcell.Event) (Key, bool) {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return KeyNone, false
	}
	if kev.Key() == tcell.KeyRune {
		// Runes at or above the special-key offset would collide
		// with special codes. They cannot land in single-byte cells
		// anyway, so they are dropped rather than misread.
		if r := kev.Rune(); Key(r) < specialBase {
			return Key(r), true
		}
		return KeyNone, false
	}
	return specialBase + Key(kev.Key()), true
}

// WaitKey blocks until a key is available and returns it. Pushed-back
// keys are delivered first. Returns KeyNone if the screen is finalized
// while waiting.
func (s *Screen) WaitKey() Key {
	if k, ok := s.takePushback(); ok {
		return k
	}
	for {
		ev, ok := <-s.events
		if !ok {
			return KeyNone
		}
		if k, ok := keyFromEvent(ev); ok {
			return k
		}
	}
}

// PollKey waits up to wait for a key and returns KeyNone on timeout.
// Pushed-back keys are delivered first. After a successful read any
// remaining type-ahead is flushed, matching the bounded-wait read of
// the poll cycle.
func (s *Screen) PollKey(wait time.Duration) Key {
	if k, ok := s.takePushback(); ok {
		return k
	}
	if wait <= 0 {
		wait = DefaultPollWait
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return KeyNone
			}
			if k, ok := keyFromEvent(ev); ok {
				s.flushInput()
				return k
			}
		case <-timer.C:
			return KeyNone
		}
	}
}

// Unget pushes a key back onto the input stream. The pushback order is
// last-in first-out, so an unconsumed key is re-read before anything
// typed after it.
func (s *Screen) Unget(k Key) {
	if k == KeyNone {
		return
	}
	s.pushMu.Lock()
	s.pushback = append(s.pushback, k)
	s.pushMu.Unlock()
}

func (s *Screen) takePushback() (Key, bool) {
	s.pushMu.Lock()
	defer s.pushMu.Unlock()
	if n := len(s.pushback); n > 0 {
		k := s.pushback[n-1]
		s.pushback = s.pushback[:n-1]
		return k, true
	}
	return KeyNone, false
}

// flushInput discards buffered input events. Pushed-back keys survive
// a flush.
func (s *Screen) flushInput() {
	for {
		select {
		case _, ok := <-s.events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
