// Package display renders per-step progress to the terminal. It is the
// only package doing user-facing output; everything else reports through
// the pipeline.Reporter interface.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Markers used when emoji output is disabled.
const (
	plainOK   = "ok"
	plainFail = "FAIL"
)

// Options controls how progress is rendered.
type Options struct {
	// Quiet suppresses all progress output.
	Quiet bool
	// Emoji uses ✔/❎ markers instead of plain text ones.
	Emoji bool
}

// TerminalReporter implements pipeline.Reporter with a pterm spinner per
// step, persisted as a result line when the step finishes. Output
// degrades to plain lines when stdout is not a terminal.
type TerminalReporter struct {
	opts    Options
	out     io.Writer
	tty     bool
	spinner *pterm.SpinnerPrinter
}

// NewTerminalReporter builds a reporter writing to stdout.
func NewTerminalReporter(opts Options) *TerminalReporter {
	return &TerminalReporter{
		opts: opts,
		out:  os.Stdout,
		tty:  isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// StepStart begins a spinner for the step. Steps run one at a time, so a
// single active spinner is enough.
func (r *TerminalReporter) StepStart(repo, op string) {
	if r.opts.Quiet || !r.tty {
		return
	}
	spinner, err := pterm.DefaultSpinner.
		WithWriter(r.out).
		Start(fmt.Sprintf("%s: %s", repo, op))
	if err != nil {
		return
	}
	r.spinner = spinner
}

// StepDone persists the step's result line.
func (r *TerminalReporter) StepDone(repo, op string, ok bool) {
	if r.opts.Quiet {
		return
	}

	text := fmt.Sprintf("%s: %s", repo, op)

	if !r.tty {
		fmt.Fprintf(r.out, "%s %s\n", r.marker(ok), text)
		return
	}

	if r.spinner == nil {
		return
	}
	spinner := r.spinner
	r.spinner = nil

	if r.opts.Emoji {
		spinner.SuccessPrinter = &pterm.PrefixPrinter{
			MessageStyle: &pterm.ThemeDefault.SuccessMessageStyle,
			Prefix:       pterm.Prefix{Style: &pterm.ThemeDefault.SuccessPrefixStyle, Text: "✔"},
		}
		spinner.FailPrinter = &pterm.PrefixPrinter{
			MessageStyle: &pterm.ThemeDefault.ErrorMessageStyle,
			Prefix:       pterm.Prefix{Style: &pterm.ThemeDefault.ErrorPrefixStyle, Text: "❎"},
		}
	}
	if ok {
		spinner.Success(text)
		return
	}
	spinner.Fail(text)
}

func (r *TerminalReporter) marker(ok bool) string {
	if r.opts.Emoji {
		if ok {
			return "✔"
		}
		return "❎"
	}
	if ok {
		return plainOK
	}
	return plainFail
}
