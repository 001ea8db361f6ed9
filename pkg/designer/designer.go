package designer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/goliatone/go-cardrender/pkg/validation"
)

type Option func(*Designer)

// WithLogger routes load and persist diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Designer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithKey persists under key instead of StorageKey.
func WithKey(key string) Option {
	return func(d *Designer) {
		if key != "" {
			d.key = key
		}
	}
}

// Designer holds the editor state and writes every change through to a
// Store. Listeners run after each change, outside the lock.
type Designer struct {
	// saveMu orders writes so the stored snapshot always matches the last
	// in-memory change. It is taken before mu.
	saveMu    sync.Mutex
	mu        sync.RWMutex
	state     State
	store     Store
	key       string
	logger    *slog.Logger
	listeners map[int]func(State)
	nextID    int
}

// New loads the persisted state from store. A missing or unreadable
// snapshot leaves the designer at DefaultState.
func New(ctx context.Context, store Store, options ...Option) *Designer {
	if store == nil {
		store = NewMemoryStore()
	}
	d := &Designer{
		state:     DefaultState(),
		store:     store,
		key:       StorageKey,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		listeners: make(map[int]func(State)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}

	raw, err := store.Load(ctx, d.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			d.logger.Warn("designer state load failed", "key", d.key, "err", err)
		}
		return d
	}
	loaded := DefaultState()
	if err := json.Unmarshal(raw, &loaded); err != nil {
		d.logger.Warn("designer state is not valid JSON", "key", d.key, "err", err)
		return d
	}
	if loaded.Session.Mode == "" {
		loaded.Session.Mode = DefaultMode
	}
	d.state = loaded
	return d
}

// State returns a copy of the current state.
func (d *Designer) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state.clone()
}

// Replace swaps the whole state.
func (d *Designer) Replace(ctx context.Context, next State) error {
	return d.mutate(ctx, func(State) State { return next.clone() })
}

// Update merges patch into the state.
func (d *Designer) Update(ctx context.Context, patch Patch) error {
	return d.mutate(ctx, func(s State) State { return s.apply(patch) })
}

// SetCard replaces the document card. A nil card clears it.
func (d *Designer) SetCard(ctx context.Context, cardJSON map[string]any) error {
	return d.mutate(ctx, func(s State) State {
		s.Document.CardJSON = cardJSON
		return s
	})
}

func (d *Designer) SetSuggestions(ctx context.Context, suggestions []string) error {
	return d.Update(ctx, Patch{Suggestions: &suggestions})
}

func (d *Designer) SetValidation(ctx context.Context, result validation.Result) error {
	return d.Update(ctx, Patch{Validation: &result})
}

// ResetSession forgets the workflow run while keeping the mode.
func (d *Designer) ResetSession(ctx context.Context) error {
	return d.mutate(ctx, func(s State) State {
		s.Session = Session{Mode: s.Session.Mode}
		return s
	})
}

// ResumeSession attaches the editor to an existing run.
func (d *Designer) ResumeSession(ctx context.Context, runID, jottID string) error {
	return d.mutate(ctx, func(s State) State {
		s.Session.RunID = runID
		s.Session.JottID = jottID
		return s
	})
}

// Subscribe registers fn to run after every change and returns a func that
// removes it.
func (d *Designer) Subscribe(fn func(State)) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.listeners, id)
	}
}

// mutate applies fn, persists the result and notifies listeners. The
// in-memory state is updated even when persisting fails.
func (d *Designer) mutate(ctx context.Context, fn func(State) State) error {
	d.saveMu.Lock()
	d.mu.Lock()
	d.state = fn(d.state.clone())
	snapshot := d.state.clone()
	listeners := make([]func(State), 0, len(d.listeners))
	for _, l := range d.listeners {
		listeners = append(listeners, l)
	}
	d.mu.Unlock()

	err := d.persist(ctx, snapshot)
	d.saveMu.Unlock()

	for _, l := range listeners {
		l(snapshot.clone())
	}
	return err
}

func (d *Designer) persist(ctx context.Context, s State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("designer: encode state: %w", err)
	}
	if err := d.store.Save(ctx, d.key, raw); err != nil {
		d.logger.Warn("designer state save failed", "key", d.key, "err", err)
		return fmt.Errorf("designer: save state: %w", err)
	}
	return nil
}
