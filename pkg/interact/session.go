package interact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/render"
)

const (
	headingColor = "#818cf8"
	quitLabel    = "Quit"
	wordWrap     = 80
)

type Option func(*Session)

// WithPromptDriver overrides the driver chosen by DefaultDriver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithPlain disables markdown styling and colors.
func WithPlain() Option {
	return func(s *Session) {
		s.plain = true
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session shows a card instance in the terminal and lets the user activate
// its controls until they quit.
type Session struct {
	driver   PromptDriver
	plain    bool
	logger   *slog.Logger
	profile  termenv.Profile
	markdown func(string) (string, error)
}

func New(options ...Option) (*Session, error) {
	s := &Session{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		profile: termenv.ColorProfile(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = DefaultDriver()
	}

	if s.plain {
		s.profile = termenv.Ascii
		return s, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("interact: configure markdown renderer: %w", err)
	}
	s.markdown = r.Render
	return s, nil
}

// Run loops over show, choose, activate. It returns nil when the user quits
// or the card has no controls left to press.
func (s *Session) Run(ctx context.Context, inst *render.Instance) error {
	for {
		if err := s.show(ctx, inst); err != nil {
			return err
		}

		controls := inst.Controls()
		if len(controls) == 0 {
			return nil
		}
		options := make([]string, 0, len(controls)+1)
		for _, control := range controls {
			options = append(options, ControlLabel(control))
		}
		options = append(options, quitLabel)

		idx, err := s.driver.Select(ctx, SelectConfig{Message: "Activate a control", Options: options, DefaultIndex: -1})
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("interact: prompt: %w", err)
		}
		if idx < 0 || idx >= len(controls) {
			return nil
		}

		key := controls[idx].Key
		s.logger.Debug("interactive activation", "key", key)
		if err := inst.Activate(key); err != nil {
			return fmt.Errorf("interact: %w", err)
		}
	}
}

func (s *Session) show(ctx context.Context, inst *render.Instance) error {
	title := "Card"
	if version := inst.Card().Version; version != "" {
		title += " " + version
	}
	heading := s.profile.String(title).Foreground(s.profile.Color(headingColor)).Bold().String()
	if err := s.driver.Info(ctx, heading); err != nil {
		return err
	}

	if s.plain {
		return s.driver.Info(ctx, PlainText(inst.Card(), inst.HTML()))
	}
	rendered, err := s.markdown(Markdown(inst.Card(), inst.HTML()))
	if err != nil {
		return fmt.Errorf("interact: render outline: %w", err)
	}
	return s.driver.Info(ctx, strings.TrimRight(rendered, "\n"))
}

// Markdown turns the outline of markup into paragraphs. An empty card
// yields a single italic note.
func Markdown(c card.Card, markup string) string {
	if c.Empty() {
		return "_empty card_"
	}
	lines := strings.Split(Outline(markup), "\n")
	for idx, line := range lines {
		lines[idx] = escapeMarkdown(line)
	}
	return strings.Join(lines, "\n\n")
}

// PlainText is the outline of markup as shown without markdown styling.
func PlainText(c card.Card, markup string) string {
	if c.Empty() {
		return "(empty card)"
	}
	return Outline(markup)
}

// ControlLabel is the menu entry for control.
func ControlLabel(control render.Control) string {
	title := control.Title
	if title == "" {
		title = control.Key
	}
	switch control.Type {
	case card.TypeActionShowCard:
		if control.Expanded {
			return title + " [collapse]"
		}
		return title + " [expand]"
	case card.TypeActionToggleVisibility:
		if len(control.Targets) == 0 {
			return title + " [toggle]"
		}
		return title + " [toggle: " + strings.Join(control.Targets, ", ") + "]"
	default:
		return title
	}
}
