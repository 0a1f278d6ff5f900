package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

const (
	spinnerDelay   = 100 * time.Millisecond
	spinnerCharSet = 14
	spinnerColor   = "green"
	ansiRed        = "\x1b[31m"
	ansiGreen      = "\x1b[32m"
	ansiReset      = "\x1b[0m"
)

// Printer renders CLI progress output with optional spinner.
type Printer struct {
	v bool
	q bool
	s *spinner.Spinner
}

// New creates a Printer configured for verbose/quiet output.
func New(verbose, quiet bool) *Printer {
	if quiet || verbose {
		return &Printer{
			v: verbose,
			q: quiet,
			s: nil,
		}
	}

	spin := spinner.New(spinner.CharSets[spinnerCharSet], spinnerDelay)
	_ = spin.Color(spinnerColor)

	p := &Printer{
		v: verbose,
		q: quiet,
		s: spin,
	}
	p.s.Start()
	return p
}

// Printf updates the spinner line or prints a log line.
func (p *Printer) Printf(format string, args ...any) {
	if p.s != nil && !p.v {
		p.s.Suffix = fmt.Sprintf(" "+format, args...)
	}
	if p.v {
		fmt.Printf(format+"\n", args...) //nolint:forbidigo
	}
}

// PersistentPrintf prints a persistent line that survives spinner updates.
func (p *Printer) PersistentPrintf(format string, args ...any) {
	if p.s != nil && !p.v {
		p.s.Stop()
		fmt.Printf("%s\n", fmt.Sprintf(format, args...)) //nolint:forbidigo
		p.s.Restart()
	}
	if p.v {
		fmt.Printf("%s\n", fmt.Sprintf(format, args...)) //nolint:forbidigo
	}
}

// Okf prints a success message with a colored marker.
func (p *Printer) Okf(format string, args ...any) {
	p.PersistentPrintf("%s✔%s "+format, append([]any{ansiGreen, ansiReset}, args...)...)
}

// Errorf prints an error message with a colored marker.
func (p *Printer) Errorf(format string, args ...any) {
	p.PersistentPrintf("%s✗%s "+format, append([]any{ansiRed, ansiReset}, args...)...)
}

// Debugf prints a debug message when verbose mode is enabled.
func (p *Printer) Debugf(format string, args ...any) {
	if p.v {
		fmt.Printf("🚧 Debug: "+format+"\n", args...) //nolint:forbidigo
	}
}

// DebugSincef prints a debug message with timing info.
func (p *Printer) DebugSincef(start time.Time, format string, args ...any) {
	if p.v {
		fmt.Printf("⏱️ Debug Timing ("+time.Since(start).Round(time.Millisecond).String()+"): "+format+"\n", args...) //nolint:forbidigo
	}
}

// Watch re-renders the tracker list on every notifier event until stop is
// closed. Finished trackers are printed once as persistent lines; active
// ones share the spinner suffix.
func (p *Printer) Watch(trackers *Trackers, notifier *Notifier, stop <-chan struct{}) {
	events := notifier.Subscribe()
	reported := make(map[*Tracker]bool)
	for {
		select {
		case <-stop:
			p.render(trackers, reported)
			return
		case <-events:
			p.render(trackers, reported)
		}
	}
}

func (p *Printer) render(trackers *Trackers, reported map[*Tracker]bool) {
	var active []string
	for _, t := range trackers.Snapshot() {
		if _, done := t.FinishedAt(); done {
			if !reported[t] {
				reported[t] = true
				if t.Failed() {
					p.Errorf("%s", t.Title())
				} else {
					p.Okf("%s", t.Title())
				}
			}
			continue
		}
		active = append(active, formatTracker(t))
	}
	if len(active) > 0 {
		p.Printf("%s", strings.Join(active, " | "))
	}
}

func formatTracker(t *Tracker) string {
	if fraction, ok := t.Fraction(); ok {
		return fmt.Sprintf("%s %.0f%%", t.Title(), fraction*100)
	}
	return t.Title()
}

// Write implements io.Writer for log output integration.
func (p *Printer) Write(payload []byte) (int, error) {
	message := strings.TrimRight(string(payload), "\n")
	if message == "" {
		return len(payload), nil
	}
	if p.s != nil && !p.v {
		p.s.Stop()
		fmt.Println(message) //nolint:forbidigo
		p.s.Restart()
		return len(payload), nil
	}
	if p.v {
		fmt.Println(message) //nolint:forbidigo
	}
	return len(payload), nil
}

// Close stops the spinner if it is running.
func (p *Printer) Close() {
	if p.s != nil {
		p.s.Stop()
	}
}
