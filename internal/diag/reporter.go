package diag

import "vlog/internal/source"

// Reporter is the minimal sink contract the lexer and parser report into.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter collects reported diagnostics into a Bag.
type BagReporter struct {
	Bag *Bag
}

func NewBagReporter(max int) *BagReporter {
	return &BagReporter{Bag: NewBag(max)}
}

func (r *BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	d := Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
	}
	for _, n := range notes {
		d = d.WithNote(n.Span, n.Msg)
	}
	r.Bag.Add(d)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}

// Error is a shortcut for reporting a SevError diagnostic without notes.
func Error(r Reporter, code Code, primary source.Span, msg string) {
	if r != nil {
		r.Report(code, SevError, primary, msg, nil)
	}
}

// Warning is a shortcut for reporting a SevWarning diagnostic without notes.
func Warning(r Reporter, code Code, primary source.Span, msg string) {
	if r != nil {
		r.Report(code, SevWarning, primary, msg, nil)
	}
}
