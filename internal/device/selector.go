package device

import (
	"time"

	"go.uber.org/zap"
)

const (
	// PromptDelay is how long after startup the selection prompt appears.
	PromptDelay = 100 * time.Millisecond
	// TransitionDelay is how long the prompt takes to hide after a choice.
	TransitionDelay = 300 * time.Millisecond
)

// Store persists the preference.
type Store interface {
	GetPreference(key string) (string, bool, error)
	SetPreference(key, value string) error
	DeletePreference(key string) error
}

// Binder is called whenever a layout becomes active.
type Binder func(Layout)

// PromptState tracks the selection prompt.
type PromptState int

const (
	PromptHidden PromptState = iota
	PromptVisible
	PromptHiding
)

// Selector owns which presentation is active.
type Selector struct {
	store  Store
	opts   LayoutOptions
	bind   Binder
	logger *zap.Logger

	active    Type
	hasActive bool
	prompt    PromptState
	pending   Type
}

// NewSelector creates a selector. bind may be nil.
func NewSelector(store Store, opts LayoutOptions, bind Binder, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		store:  store,
		opts:   opts,
		bind:   bind,
		logger: logger.Named("device"),
	}
}

// CheckPreference reads the saved preference once. When one exists its layout
// is activated and true is returned. Otherwise the caller shows the prompt
// after PromptDelay.
func (s *Selector) CheckPreference() (Type, bool) {
	value, found, err := s.store.GetPreference(PreferenceKey)
	if err != nil {
		s.logger.Warn("read device preference", zap.Error(err))
		return "", false
	}
	if !found || value == "" {
		return "", false
	}

	t, known := Parse(value)
	if !known {
		s.logger.Warn("unknown device preference, using mobile", zap.String("value", value))
	}
	s.Activate(t)
	return t, true
}

// ShowPrompt makes the selection prompt visible.
func (s *Selector) ShowPrompt() {
	s.prompt = PromptVisible
}

// Prompt returns the prompt state.
func (s *Selector) Prompt() PromptState {
	return s.prompt
}

// Select persists t and starts hiding the prompt. The caller activates the
// layout with Activate(Pending()) after TransitionDelay.
func (s *Selector) Select(t Type) error {
	s.pending = t
	s.prompt = PromptHiding
	if err := s.store.SetPreference(PreferenceKey, string(t)); err != nil {
		s.logger.Error("save device preference", zap.Error(err))
		return err
	}
	return nil
}

// Pending returns the type chosen by the last Select.
func (s *Selector) Pending() Type {
	return s.pending
}

// Activate makes t the only visible layout and binds it. Activating the same
// type again re-binds it.
func (s *Selector) Activate(t Type) Layout {
	if s.prompt == PromptHiding {
		s.prompt = PromptHidden
	}
	s.active = t
	s.hasActive = true
	layout := LayoutFor(t, s.opts)
	if s.bind != nil {
		s.bind(layout)
	}
	s.logger.Debug("layout activated", zap.Stringer("device", t))
	return layout
}

// Active returns the active type; ok is false before any activation.
func (s *Selector) Active() (t Type, ok bool) {
	return s.active, s.hasActive
}

// Reset forgets the saved preference so the prompt shows on next check.
func (s *Selector) Reset() error {
	return s.store.DeletePreference(PreferenceKey)
}
