package screen

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandleCrash restores the terminal and prints the panic with its
// stack trace before exiting. Call it from a deferred recover in main
// so a crash never leaves the terminal in raw mode:
//
//	defer func() { screen.HandleCrash(recover()) }()
func HandleCrash(r any) {
	if r == nil {
		return
	}

	activeMu.Lock()
	s := active
	activeMu.Unlock()
	if s != nil {
		s.Fini()
	}

	fmt.Fprintf(os.Stderr, "crash detected: %v\n", r)
	fmt.Fprintf(os.Stderr, "stack trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery. Use this instead
// of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
