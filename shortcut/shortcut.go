// Package shortcut routes single keypresses to registered handlers.
//
// The dispatch rule enforces at-most-one-active semantics without a
// central "currently open" variable: any keypress, bound or not, first
// runs the deactivate callback of every registered entry, then the
// matching activate callback if the key is bound. Deactivating every
// entry rather than just the active one is the documented invariant;
// it is what keeps a stray open dropdown impossible.
package shortcut

import (
	"errors"
	"fmt"

	"github.com/panekit/panekit/screen"
)

var (
	// ErrShortcutExists reports a duplicate registration without force.
	ErrShortcutExists = errors.New("shortcut: key already assigned")
	// ErrShortcutDeletion reports a failed removal consistency check.
	ErrShortcutDeletion = errors.New("shortcut: key still present after removal")
)

// Handler is an activate or deactivate callback.
type Handler func()

// KeySource supplies single-key reads with pushback for unconsumed
// keys.
type KeySource interface {
	// ReadKey returns the next key, or screen.KeyNone if none was
	// pressed within the source's bounded wait.
	ReadKey() screen.Key
	// Unget pushes an unconsumed key back onto the input stream.
	Unget(screen.Key)
}

type binding struct {
	activate   Handler
	deactivate Handler
}

// Manager is the key-to-callback registry. It is driven from the poll
// cycle and is not safe for concurrent use.
type Manager struct {
	shortcuts map[screen.Key]binding
}

// New returns an empty registry.
func New() *Manager {
	return &Manager{shortcuts: make(map[screen.Key]binding)}
}

// Add registers a key with its activate callback and an optional
// deactivate callback (nil for fire-and-forget actions). Fails with
// ErrShortcutExists if the key is already bound; use Set to overwrite.
func (m *Manager) Add(key screen.Key, activate, deactivate Handler) error {
	if _, ok := m.shortcuts[key]; ok {
		return fmt.Errorf("%w: %s", ErrShortcutExists, screen.KeyName(key))
	}
	m.shortcuts[key] = binding{activate: activate, deactivate: deactivate}
	return nil
}

// Set registers a key, silently overwriting any existing binding.
func (m *Manager) Set(key screen.Key, activate, deactivate Handler) {
	m.shortcuts[key] = binding{activate: activate, deactivate: deactivate}
}

// Remove unbinds a key and verifies it is gone. The consistency check
// failing with ErrShortcutDeletion indicates registry corruption, not
// caller misuse.
func (m *Manager) Remove(key screen.Key) error {
	delete(m.shortcuts, key)
	if _, ok := m.shortcuts[key]; ok {
		return fmt.Errorf("%w: %s", ErrShortcutDeletion, screen.KeyName(key))
	}
	return nil
}

// Len returns the number of registered shortcuts.
func (m *Manager) Len() int {
	return len(m.shortcuts)
}

// Dispatch runs one transition for the pressed key and reports
// whether the key was consumed. KeyNone performs no transition at
// all. Any other key first deactivates every registered entry, then
// activates the matching one if bound.
func (m *Manager) Dispatch(key screen.Key) bool {
	if key == screen.KeyNone {
		return false
	}

	b, bound := m.shortcuts[key]
	for _, sc := range m.shortcuts {
		if sc.deactivate != nil {
			sc.deactivate()
		}
	}
	if !bound {
		return false
	}
	if b.activate != nil {
		b.activate()
	}
	return true
}

// Check runs one poll-and-dispatch cycle against a key source. An
// unbound key is pushed back for a downstream consumer.
func (m *Manager) Check(src KeySource) {
	key := src.ReadKey()
	if key == screen.KeyNone {
		return
	}
	if !m.Dispatch(key) {
		src.Unget(key)
	}
}
