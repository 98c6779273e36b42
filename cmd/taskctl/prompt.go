package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errAborted is returned by a prompter when the user presses Ctrl-C.
var errAborted = errors.New("aborted")

// inputConfig configures one field prompt.
type inputConfig struct {
	Message   string
	Default   string
	Help      string
	MaxLen    int
	Multiline bool
}

// prompter abstracts the terminal so the session loop can be tested
// without one.
type prompter interface {
	Ask(ctx context.Context, cfg inputConfig) (string, error)
	Info(msg string)
}

type surveyPrompter struct {
	out io.Writer
}

func (p *surveyPrompter) Ask(ctx context.Context, cfg inputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var prompt survey.Prompt
	if cfg.Multiline {
		prompt = &survey.Multiline{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}
	} else {
		prompt = &survey.Input{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}
	}

	var opts []survey.AskOpt
	if cfg.MaxLen > 0 {
		opts = append(opts, survey.WithValidator(survey.MaxLength(cfg.MaxLen)))
	}

	var out string
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", errAborted
		}
		return "", err
	}
	return out, nil
}

func (p *surveyPrompter) Info(msg string) {
	_, _ = fmt.Fprintln(p.out, msg)
}
