package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sikort/internal/ui"
	"sikort/internal/verify"
)

type verifyOutcome struct {
	result *verify.Result
	err    error
}

func runVerifyWithUI(ctx context.Context, title string, files []string, req verify.Request) (*verify.Result, error) {
	events := make(chan verify.Event, 256)
	outcomeCh := make(chan verifyOutcome, 1)

	go func() {
		req.Progress = verify.ChannelSink{Ch: events}
		res, err := verify.Run(ctx, req)
		outcomeCh <- verifyOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the workers from blocking on a channel nobody reads
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
