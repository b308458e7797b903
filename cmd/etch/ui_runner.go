package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"etch/internal/genpipeline"
	"etch/internal/scaffold"
	"etch/internal/ui"
)

type stripOutcome struct {
	summary *genpipeline.Summary
	err     error
}

type newOutcome struct {
	result scaffold.NewResult
	err    error
}

type genOutcome struct {
	result scaffold.GenResult
	err    error
}

func runStripWithUI(ctx context.Context, title string, files []string, req *genpipeline.StripRequest) (*genpipeline.Summary, error) {
	if req == nil {
		return nil, fmt.Errorf("missing strip request")
	}
	events := make(chan genpipeline.Event, 256)
	outcomeCh := make(chan stripOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = genpipeline.ChannelSink{Ch: events}
		sum, err := genpipeline.StripTree(ctx, reqCopy)
		outcomeCh <- stripOutcome{summary: sum, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.summary, uiErr
	}
	return outcome.summary, outcome.err
}

// runNewWithUI starts with no rows; the model grows them as the scaffold
// announces files.
func runNewWithUI(ctx context.Context, title string, req *scaffold.NewRequest) (scaffold.NewResult, error) {
	if req == nil {
		return scaffold.NewResult{}, fmt.Errorf("missing scaffold request")
	}
	events := make(chan genpipeline.Event, 256)
	outcomeCh := make(chan newOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = genpipeline.ChannelSink{Ch: events}
		res, err := scaffold.CreateProject(ctx, reqCopy)
		outcomeCh <- newOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

func runGenerateWithUI(ctx context.Context, title string, req *scaffold.GenRequest) (scaffold.GenResult, error) {
	if req == nil {
		return scaffold.GenResult{}, fmt.Errorf("missing generator request")
	}
	events := make(chan genpipeline.Event, 256)
	outcomeCh := make(chan genOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = genpipeline.ChannelSink{Ch: events}
		res, err := scaffold.RunGenerator(ctx, reqCopy)
		outcomeCh <- genOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
