package typecheck

import (
	"fmt"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// WarningHandler receives non-fatal engine diagnostics: skipped forward
// references under the Warn policy, string-form references that slipped
// through resolution, and extension load failures.
type WarningHandler func(msg string)

var (
	warnMu      sync.Mutex
	warnHandler WarningHandler = stderrWarning
)

// SetWarningHandler replaces the warning sink and returns a function that
// restores the previous one. Tests use this to capture diagnostics.
func SetWarningHandler(h WarningHandler) (restore func()) {
	warnMu.Lock()
	prev := warnHandler
	warnHandler = h
	warnMu.Unlock()
	return func() {
		warnMu.Lock()
		warnHandler = prev
		warnMu.Unlock()
	}
}

func warnf(format string, args ...any) {
	warnMu.Lock()
	h := warnHandler
	warnMu.Unlock()
	if h != nil {
		h(fmt.Sprintf(format, args...))
	}
}

// stderrWarning writes to stderr, with ANSI color only when stderr is an
// actual terminal.
func stderrWarning(msg string) {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "\x1b[33mwarning:\x1b[0m %s\n", msg)
		return
	}
	fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
}
