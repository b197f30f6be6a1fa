package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// Printer writes results to Out and diagnostics to Err.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool
}

var (
	headerColor  = color.New(color.Bold, color.Underline)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	faintColor   = color.New(color.Faint, color.Italic)
)

// Table prints rows aligned under header.
func (p *Printer) Table(header []string, rows [][]string) {
	if len(rows) == 0 {
		_, _ = faintColor.Fprintln(p.Out, " none")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 80
	tbl.Wrap = true

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = headerColor.Sprint(h)
	}
	tbl.AddRow(cells...)
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = c
		}
		tbl.AddRow(cells...)
	}
	_, _ = fmt.Fprintln(p.Out, tbl)
}

// Title prints a bold underlined heading.
func (p *Printer) Title(format string, args ...any) {
	_, _ = headerColor.Fprintf(p.Out, format+"\n", args...)
}

// Println writes a plain result line.
func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.Out, args...)
}

// Printf writes a plain result.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.Out, format, args...)
}

// Info writes an informational line unless Quiet is set.
func (p *Printer) Info(format string, args ...any) {
	if p.Quiet {
		return
	}
	_, _ = faintColor.Fprintf(p.Out, format+"\n", args...)
}

// Success writes a confirmation line.
func (p *Printer) Success(format string, args ...any) {
	_, _ = successColor.Fprintf(p.Out, format+"\n", args...)
}

// Warn writes a warning to Err.
func (p *Printer) Warn(format string, args ...any) {
	_, _ = warnColor.Fprintf(p.Err, "Warning: "+format+"\n", args...)
}

// Error writes an error to Err.
func (p *Printer) Error(format string, args ...any) {
	_, _ = errorColor.Fprintf(p.Err, "Error: "+format+"\n", args...)
}
