// Package progress renders step progress for the release pipeline. On a TTY
// it shows a spinner while an external tool runs; otherwise it degrades to
// plain line output so logs stay readable in CI.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// StepSpinner displays progress for a single long-running pipeline step.
type StepSpinner struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
}

// NewStepSpinner creates a StepSpinner writing to out.
func NewStepSpinner(out io.Writer) *StepSpinner {
	caps := DetectTerminalCapabilities()
	return &StepSpinner{
		out:     out,
		caps:    caps,
		symbols: SelectSymbols(caps),
	}
}

// Start begins showing progress for the named step.
// Without a TTY it prints a single plain line instead of animating.
func (p *StepSpinner) Start(message string) {
	if !p.caps.IsTTY {
		fmt.Fprintf(p.out, "%s...\n", message)
		return
	}

	p.spin = spinner.New(spinner.CharSets[p.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(p.out))
	p.spin.Suffix = " " + message
	p.spin.Start()
}

// Success stops the spinner and prints a completion line.
func (p *StepSpinner) Success(message string) {
	p.stop()
	fmt.Fprintf(p.out, "%s %s\n", p.symbols.Checkmark, message)
}

// Fail stops the spinner and prints a failure line.
func (p *StepSpinner) Fail(message string) {
	p.stop()
	fmt.Fprintf(p.out, "%s %s\n", p.symbols.Failure, message)
}

func (p *StepSpinner) stop() {
	if p.spin != nil {
		p.spin.Stop()
		p.spin = nil
	}
}
