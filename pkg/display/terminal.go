package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Terminal prints changes of the surface as text.
type Terminal struct {
	Out io.Writer

	label  *color.Color
	toggle *color.Color
	dim    *color.Color
}

// NewTerminal creates a Terminal surface writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		Out:    out,
		label:  color.New(color.FgCyan, color.Bold),
		toggle: color.New(color.FgYellow),
		dim:    color.New(color.Faint),
	}
}

// SetToggleLabel implements Surface.
func (t *Terminal) SetToggleLabel(label string) error {
	_, err := t.toggle.Fprintf(t.Out, "[%s]\n", label)
	return err
}

// Put implements Surface.
func (t *Terminal) Put(b *Block) error {
	if _, err := t.label.Fprintln(t.Out, b.Label()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(t.Out, indent(b.Text, "  "))
	return err
}

// Remove implements Surface.
func (t *Terminal) Remove(id string) error {
	_, err := t.dim.Fprintf(t.Out, "%s: released\n", id)
	return err
}

// Clear implements Surface.
func (t *Terminal) Clear() error {
	_, err := t.dim.Fprintln(t.Out, "(cleared)")
	return err
}

func indent(text, prefix string) string {
	return prefix + strings.Replace(text, "\n", "\n"+prefix, -1)
}
