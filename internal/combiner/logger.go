package combiner

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger prints wrapping and numbering decisions when verbose mode is enabled.
// Messages are indented by the depth of the fragment being combined.
type Logger struct {
	enabled bool
	out     io.Writer
	depth   int
}

// NewLogger creates a new logger instance writing to stderr.
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		out:     os.Stderr,
	}
}

// SetOutput sets the output writer for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Log prints a formatted message if verbose mode is enabled.
func (l *Logger) Log(format string, args ...interface{}) {
	if !l.enabled {
		return
	}
	fmt.Fprintf(l.out, "[regcombine] %s%s\n", strings.Repeat("  ", l.depth), fmt.Sprintf(format, args...))
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	if l.enabled {
		fmt.Fprintf(l.out, "\n[regcombine] === %s ===\n", name)
	}
}

// Nest increases indentation until the returned func is called.
func (l *Logger) Nest() func() {
	l.depth++
	return func() { l.depth-- }
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}
