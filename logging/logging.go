// Package logging writes diagnostics to a file. Terminal programs own
// stdout and stderr for the screen, so a file is the only place log
// output can go without corrupting the display. Until Init is called
// every call is a no-op.
package logging

import (
	"fmt"
	"log"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	logger *log.Logger
	file   *os.File
)

// Init opens path for appending and routes subsequent calls to it.
func Init(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
	}
	file = f
	logger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	return nil
}

// Close flushes and detaches the log file. Safe to call without Init.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
		file = nil
		logger = nil
	}
}

// Printf logs a formatted line.
func Printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		logger.Printf(format, args...)
	}
}

// Error logs a non-nil error.
func Error(err error) {
	if err == nil {
		return
	}
	Printf("error: %v", err)
}
