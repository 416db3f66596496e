// Package debug provides conditional debug logging for tr.
//
// Debug logging is enabled by setting the TR_DEBUG environment variable:
//
//	TR_DEBUG=1 tr --export radar.svg
//
// Messages go to stderr with timestamps, or to the file named by
// TR_DEBUG_FILE. The dashboard owns the terminal, so it redirects output to a
// file before starting. When disabled (default), all functions are no-ops.
//
// Usage:
//
//	func load() {
//	    defer debug.LogEnterExit("load")()
//	    debug.Log("loaded %d trends", n)
//	}
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const prefix = "[TR_DEBUG] "

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("TR_DEBUG") == "" {
		return
	}
	enabled = true
	var out io.Writer = os.Stderr
	if path := os.Getenv("TR_DEBUG_FILE"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		}
	}
	logger = log.New(out, prefix, log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = log.New(w, prefix, log.Ltime|log.Lmicroseconds)
		return
	}
	logger.SetOutput(w)
}

// RedirectToFile sends debug output to path when logging is enabled and
// output still goes to stderr. It returns a close function.
func RedirectToFile(path string) (func() error, error) {
	if !Enabled() || os.Getenv("TR_DEBUG_FILE") != "" {
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	SetOutput(f)
	return f.Close, nil
}

func printf(format string, args ...any) {
	mu.Lock()
	l, on := logger, enabled
	mu.Unlock()
	if on && l != nil {
		l.Printf(format, args...)
	}
}

// Log writes a debug message if debug logging is enabled.
func Log(format string, args ...any) {
	printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	printf("%s took %v", name, d)
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if cond {
		printf(format, args...)
	}
}

// LogEnterExit logs function entry and exit with timing.
//
//	defer debug.LogEnterExit("BuildRadar")()
func LogEnterExit(name string) func() {
	if !Enabled() {
		return func() {}
	}
	printf("-> %s", name)
	start := time.Now()
	return func() {
		printf("<- %s (%v)", name, time.Since(start))
	}
}

// Dump logs a value with its type.
func Dump(name string, v any) {
	if !Enabled() {
		return
	}
	printf("%s: %T = %+v", name, v, v)
}
