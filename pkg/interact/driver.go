package interact

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
)

// SelectConfig configures a single-choice prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// PromptDriver abstracts the terminal so the control loop can be tested
// without one.
type PromptDriver interface {
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

// DefaultDriver picks the survey driver when stdin and stdout are both
// terminals and the line driver otherwise.
func DefaultDriver() PromptDriver {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return NewSurveyDriver(os.Stdout)
	}
	return NewLineDriver(os.Stdin, os.Stdout)
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver prompts with arrow-key menus; Info lines go to out.
func NewSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out}
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out string
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return indexOf(cfg.Options, out), nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

type lineDriver struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineDriver reads numbered choices one line at a time. It suits pipes
// and scripted sessions where survey cannot take over the terminal.
func NewLineDriver(in io.Reader, out io.Writer) PromptDriver {
	return &lineDriver{in: bufio.NewReader(in), out: out}
}

func (d *lineDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprintln(d.out, cfg.Message)
		for i, option := range cfg.Options {
			fmt.Fprintf(d.out, "  %d) %s\n", i+1, option)
		}
		fmt.Fprint(d.out, "> ")

		line, err := d.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" && err != nil {
			if errors.Is(err, io.EOF) {
				return 0, ErrAborted
			}
			return 0, err
		}
		if line == "q" || line == "quit" {
			return 0, ErrAborted
		}
		if line == "" && cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
			return cfg.DefaultIndex, nil
		}
		choice, convErr := strconv.Atoi(line)
		if convErr == nil && choice >= 1 && choice <= len(cfg.Options) {
			return choice - 1, nil
		}
		fmt.Fprintf(d.out, "invalid choice %q\n", line)
	}
}

func (d *lineDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}
