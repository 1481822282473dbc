// Package console prints leveled user-facing messages.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// Printer writes leveled messages. Info and Success go to Out, Warn and
// Error to Err. A nil Printer discards everything, which keeps callers free
// of nil checks.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.out(), format+"\n", args...)
}

func (p *Printer) Successf(format string, args ...any) {
	_, _ = successColor.Fprintf(p.out(), format+"\n", args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	_, _ = warnColor.Fprintf(p.err(), "warning: "+format+"\n", args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	_, _ = errorColor.Fprintf(p.err(), "error: "+format+"\n", args...)
}

func (p *Printer) out() io.Writer {
	if p == nil {
		return io.Discard
	}
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func (p *Printer) err() io.Writer {
	if p == nil {
		return io.Discard
	}
	if p.Err == nil {
		return os.Stderr
	}
	return p.Err
}
