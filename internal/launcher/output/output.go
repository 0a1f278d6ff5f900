package output

import "time"

// Printer defines the progress output interface.
type Printer interface {
	Printf(format string, args ...any)
	PersistentPrintf(format string, args ...any)
	Okf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
	DebugSincef(startTime time.Time, format string, args ...any)
}

// Discard is a Printer that drops all output.
type Discard struct{}

// Printf implements Printer.
func (Discard) Printf(string, ...any) {}

// PersistentPrintf implements Printer.
func (Discard) PersistentPrintf(string, ...any) {}

// Okf implements Printer.
func (Discard) Okf(string, ...any) {}

// Errorf implements Printer.
func (Discard) Errorf(string, ...any) {}

// Debugf implements Printer.
func (Discard) Debugf(string, ...any) {}

// DebugSincef implements Printer.
func (Discard) DebugSincef(time.Time, string, ...any) {}
