package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Display shows a spinner while work runs and prints a status line when it ends.
// Without a TTY the spinner is skipped and only status lines are written.
type Display struct {
	w       io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
}

// NewDisplay creates a Display writing to w.
func NewDisplay(w io.Writer, caps TerminalCapabilities) *Display {
	return &Display{
		w:       w,
		caps:    caps,
		symbols: SelectSymbols(caps),
	}
}

// Start begins the spinner with the given message.
func (d *Display) Start(msg string) {
	if !d.caps.IsTTY {
		return
	}
	d.Stop()
	d.spin = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(d.w))
	d.spin.Suffix = " " + msg
	d.spin.Start()
}

// Stop halts the spinner, if running.
func (d *Display) Stop() {
	if d.spin != nil {
		d.spin.Stop()
		d.spin = nil
	}
}

// Success stops the spinner and prints a success line.
func (d *Display) Success(msg string) {
	d.Stop()
	mark := d.symbols.Checkmark
	if d.caps.SupportsColor {
		mark = color.GreenString(mark)
	}
	fmt.Fprintf(d.w, "%s %s\n", mark, msg)
}

// Failure stops the spinner and prints a failure line.
func (d *Display) Failure(msg string) {
	d.Stop()
	mark := d.symbols.Failure
	if d.caps.SupportsColor {
		mark = color.RedString(mark)
	}
	fmt.Fprintf(d.w, "%s %s\n", mark, msg)
}
