// Package listing keeps a fetched collection for display: a local text
// filter, a server-side skill filter and confirm-then-delete.
package listing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/SAP-F-2025/assessment-console/internal/events"
)

// Query holds the filters the server applies.
type Query struct {
	SkillID string
}

type Fetcher[T any] func(ctx context.Context, q Query) ([]T, error)

type Deleter func(ctx context.Context, id string) error

// Confirmer asks the user before a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

type ConfirmFunc func(ctx context.Context, message string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool {
	return f(ctx, message)
}

// AlwaysConfirm is for callers that already asked, like `--yes`.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) bool { return true })

type Option[T any] func(*Page[T])

// WithDeleter enables Delete; id extracts the identifier matched against.
func WithDeleter[T any](del Deleter, id func(T) string) Option[T] {
	return func(p *Page[T]) {
		p.del = del
		p.id = id
	}
}

func WithNotifier[T any](n events.Notifier) Option[T] {
	return func(p *Page[T]) { p.notifier = n }
}

func WithEmitter[T any](e *events.Emitter) Option[T] {
	return func(p *Page[T]) { p.emitter = e }
}

func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(p *Page[T]) { p.logger = l }
}

// WithConfirmMessage overrides the delete prompt.
func WithConfirmMessage[T any](msg string) Option[T] {
	return func(p *Page[T]) { p.confirmMessage = msg }
}

// Page is safe for concurrent use. Fetches run without the lock; only the
// response of the latest fetch is applied.
type Page[T any] struct {
	resource       string
	fetch          Fetcher[T]
	fields         func(T) []string
	del            Deleter
	id             func(T) string
	notifier       events.Notifier
	emitter        *events.Emitter
	logger         *slog.Logger
	confirmMessage string

	mu         sync.Mutex
	items      []T
	search     string
	query      Query
	generation uint64
	loading    bool
	disposed   bool
	err        error
}

// NewPage lists resource (singular, e.g. "test"); fields feeds the text filter.
func NewPage[T any](resource string, fetch Fetcher[T], fields func(T) []string, opts ...Option[T]) *Page[T] {
	p := &Page[T]{
		resource:       resource,
		fetch:          fetch,
		fields:         fields,
		logger:         slog.New(slog.DiscardHandler),
		confirmMessage: fmt.Sprintf("Are you sure you want to delete this %s?", resource),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load fetches with the current query. A response overtaken by a newer
// Load, or arriving after Dispose, is dropped.
func (p *Page[T]) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return nil
	}
	p.generation++
	gen := p.generation
	q := p.query
	p.loading = true
	p.mu.Unlock()

	items, err := p.fetch(ctx, q)

	p.mu.Lock()
	if p.disposed || gen != p.generation {
		p.mu.Unlock()
		p.logger.DebugContext(ctx, "dropping stale response", "resource", p.resource, "generation", gen)
		return nil
	}
	p.loading = false
	p.err = err
	if err != nil {
		p.items = nil
		p.mu.Unlock()

		p.logger.WarnContext(ctx, "list fetch failed", "resource", p.resource, "error", err)
		p.notifyError(ctx, fmt.Sprintf("Failed to load %ss", p.resource))
		return err
	}
	p.items = items
	p.mu.Unlock()
	return nil
}

// SetSearch changes the local text filter; no request is made.
func (p *Page[T]) SetSearch(term string) {
	p.mu.Lock()
	p.search = term
	p.mu.Unlock()
}

// SetSkill changes the server-side skill filter and reloads.
func (p *Page[T]) SetSkill(ctx context.Context, skillID string) error {
	p.mu.Lock()
	p.query.SkillID = skillID
	p.mu.Unlock()
	return p.Load(ctx)
}

// Dispose stops the page from applying any further response.
func (p *Page[T]) Dispose() {
	p.mu.Lock()
	p.disposed = true
	p.loading = false
	p.mu.Unlock()
}

// Items is the held collection with the text filter applied.
func (p *Page[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Filter(p.items, p.search, p.fields)
}

// All is the held collection, unfiltered.
func (p *Page[T]) All() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

func (p *Page[T]) Query() Query {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

func (p *Page[T]) Search() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.search
}

func (p *Page[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Err is the error of the last applied fetch.
func (p *Page[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Delete asks confirm, deletes id on the server and drops it from the held
// collection. It reports whether the item was deleted; a declined prompt
// returns false and a nil error.
func (p *Page[T]) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if p.del == nil {
		return false, fmt.Errorf("%s list does not support delete", p.resource)
	}
	if confirm != nil && !confirm.Confirm(ctx, p.confirmMessage) {
		return false, nil
	}

	if err := p.del(ctx, id); err != nil {
		p.logger.WarnContext(ctx, "delete failed", "resource", p.resource, "id", id, "error", err)
		msg := fmt.Sprintf("Failed to delete %s", p.resource)
		if apperrors.IsRequestFailed(err) {
			msg += ": " + apperrors.Message(err)
		}
		p.notifyError(ctx, msg)
		return false, err
	}

	p.mu.Lock()
	kept := p.items[:0:0]
	for _, item := range p.items {
		if p.id(item) != id {
			kept = append(kept, item)
		}
	}
	p.items = kept
	p.mu.Unlock()

	if p.notifier != nil {
		p.notifier.Success(ctx, p.resource, fmt.Sprintf("%s deleted successfully", capitalize(p.resource)))
	}
	p.emitter.Emit(ctx, events.NewDeletedEvent(p.resource, id))
	return true, nil
}

func (p *Page[T]) notifyError(ctx context.Context, msg string) {
	if p.notifier != nil {
		p.notifier.Error(ctx, p.resource, msg)
	}
}

// Filter keeps items where any field contains term, case-insensitively.
// An empty term keeps everything.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || fields == nil {
		return append([]T(nil), items...)
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
