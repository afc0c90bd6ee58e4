package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vlog/internal/driver"
	"vlog/internal/source"
	"vlog/internal/ui"
)

type parseOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

// runParseUI drives ParseFiles behind a Bubble Tea progress view. The parse
// runs in its own goroutine and feeds the model through the events channel;
// the channel close is what tells the model to quit.
func runParseUI(ctx context.Context, title string, files []string, opts driver.DirOptions) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		fs, results, err := driver.ParseFiles(ctx, files, optsCopy)
		close(events)
		outcomeCh <- parseOutcome{fs: fs, results: results, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := awaitParse(events, outcomeCh)
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

// awaitParse collects the parse outcome after the view is gone. The view
// may have quit early (ctrl+c) with events still undelivered, leaving the
// parse goroutine blocked on a send; drain the channel until it closes
// before waiting on the outcome.
func awaitParse(events <-chan driver.Event, outcomeCh <-chan parseOutcome) parseOutcome {
	for range events {
	}
	return <-outcomeCh
}
