// Package forms holds entity drafts while they are edited and submits them
// once they pass validation.
package forms

import (
	"context"
	"errors"
	"fmt"
	"sync"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/validator"
)

type State int

const (
	Clean State = iota
	Dirty
	Submitting
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case Submitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var ErrSubmitInProgress = errors.New("submit already in progress")

// SubmitFunc performs the create or update call with a validated draft.
type SubmitFunc[D any] func(ctx context.Context, draft D) error

type Option[D any] func(*Form[D])

func WithNotifier[D any](n events.Notifier) Option[D] {
	return func(f *Form[D]) { f.notifier = n }
}

// ResetOnSuccess returns the form to its defaults after a successful submit,
// as create forms do.
func ResetOnSuccess[D any]() Option[D] {
	return func(f *Form[D]) { f.resetOnSuccess = true }
}

// WithSuccessMessage sets the notification sent after a successful submit.
func WithSuccessMessage[D any](msg string) Option[D] {
	return func(f *Form[D]) { f.successMessage = msg }
}

// Form is safe for concurrent use. The submit call runs without the lock held.
type Form[D any] struct {
	name           string
	validator      *validator.Validator
	defaults       func() D
	clone          func(D) D
	normalize      func(D) D
	notifier       events.Notifier
	resetOnSuccess bool
	successMessage string

	mu     sync.Mutex
	state  State
	draft  D
	errors apperrors.ValidationErrors
}

// newForm starts from defaults(); Reset returns there.
func newForm[D any](name string, v *validator.Validator, defaults func() D, opts ...Option[D]) *Form[D] {
	if v == nil {
		v = validator.New()
	}
	f := &Form[D]{
		name:      name,
		validator: v,
		defaults:  defaults,
		clone:     func(d D) D { return d },
		normalize: func(d D) D { return d },
	}
	for _, opt := range opts {
		opt(f)
	}
	f.draft = defaults()
	return f
}

func (f *Form[D]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the current draft.
func (f *Form[D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clone(f.draft)
}

// Errors returns the field errors of the last failed validation.
func (f *Form[D]) Errors() apperrors.ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append(apperrors.ValidationErrors(nil), f.errors...)
}

// Update applies fn to the draft and marks the form dirty.
func (f *Form[D]) Update(fn func(*D)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Submitting {
		return ErrSubmitInProgress
	}
	fn(&f.draft)
	f.state = Dirty
	return nil
}

// Validate checks the draft without submitting it.
func (f *Form[D]) Validate() apperrors.ValidationErrors {
	f.mu.Lock()
	draft := f.normalize(f.clone(f.draft))
	f.mu.Unlock()

	ve := f.check(draft)

	f.mu.Lock()
	f.errors = ve
	f.mu.Unlock()
	return ve
}

func (f *Form[D]) check(draft D) apperrors.ValidationErrors {
	err := f.validator.Validate(draft)
	if err == nil {
		return nil
	}
	if ve, ok := apperrors.AsValidationErrors(err); ok {
		return ve
	}
	return apperrors.ValidationErrors{*apperrors.NewValidationError(f.name, err.Error(), nil)}
}

// Reset discards edits and returns to the defaults.
func (f *Form[D]) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Submitting {
		return ErrSubmitInProgress
	}
	f.draft = f.defaults()
	f.errors = nil
	f.state = Clean
	return nil
}

// Submit validates the draft and, when it is valid, hands it to submit.
// Validation failures are returned without calling submit.
func (f *Form[D]) Submit(ctx context.Context, submit SubmitFunc[D]) error {
	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}
	draft := f.normalize(f.clone(f.draft))
	ve := f.check(draft)
	f.errors = ve
	if len(ve) > 0 {
		f.mu.Unlock()
		return ve
	}
	f.state = Submitting
	f.mu.Unlock()

	err := submit(ctx, draft)

	f.mu.Lock()
	if err != nil {
		f.state = Dirty
		if ve, ok := apperrors.AsValidationErrors(err); ok {
			f.errors = ve
		}
		f.mu.Unlock()

		if f.notifier != nil {
			f.notifier.Error(ctx, f.name, apperrors.Message(err))
		}
		return err
	}

	if f.resetOnSuccess {
		f.draft = f.defaults()
	} else {
		f.draft = draft
	}
	f.state = Clean
	f.mu.Unlock()

	if f.notifier != nil && f.successMessage != "" {
		f.notifier.Success(ctx, f.name, f.successMessage)
	}
	return nil
}
