package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vlog/internal/diag"
	"vlog/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	noteColor = color.New(color.Faint)
	gutter    = color.New(color.FgBlue)
)

// Pretty renders the bag in a human-readable form. Callers are expected to
// Sort the bag first. Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEVERITY> <CODE>: <message>
//	   7 | assign o = a |;
//	     |               ^~~
//
// followed by its notes in the same layout when opts.ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d.Primary, d.Severity.String(), severityColor(d.Severity), opts,
			fmt.Sprintf("%s: %s", d.Code.ID(), d.Message))
		writeContext(w, fs, d.Primary, opts)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			writeHeading(w, fs, n.Span, "note", noteColor, opts, n.Msg)
			writeContext(w, fs, n.Span, opts)
		}
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, sp source.Span, label string, c *color.Color, opts PrettyOpts, msg string) {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	if opts.Color {
		label = c.Sprint(label)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s\n",
		formatPath(f.Path, opts.PathMode), start.Line, start.Col, label, msg)
}

// writeContext prints the offending source line with a caret underline. The
// underline width follows the display width of the span text, so wide runes
// do not shift the marker.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && sp.Empty() {
		return
	}

	prefix := line
	if int(start.Col-1) <= len(line) {
		prefix = line[:start.Col-1]
	}
	pad := runewidth.StringWidth(prefix)

	marked := uint32(1)
	if end.Line == start.Line && end.Col > start.Col {
		marked = end.Col - start.Col
	}
	spanText := ""
	if int(start.Col-1) <= len(line) {
		hi := min(int(start.Col-1+marked), len(line))
		spanText = line[start.Col-1 : hi]
	}
	width := runewidth.StringWidth(spanText)
	if width < 1 {
		width = 1
	}

	underline := "^" + strings.Repeat("~", width-1)
	num := fmt.Sprintf("%4d | ", start.Line)
	bar := fmt.Sprintf("%4s | ", "")
	if opts.Color {
		num = gutter.Sprint(num)
		bar = gutter.Sprint(bar)
		underline = errColor.Sprint(underline)
	}
	fmt.Fprintf(w, "%s%s\n", num, line)
	fmt.Fprintf(w, "%s%s%s\n", bar, strings.Repeat(" ", pad), underline)
}
