// Package review implements the admin submission-review workflow: a cached
// view of the remote submission collection with server-side sort/filter,
// client-side search, and optimistic status toggling.
package review

import (
	"context"
	"strings"
	"sync"

	"github.com/payam/backend/internal/model"
)

// Store is the remote collection the engine reads and mutates.
type Store interface {
	FetchSubmissions(ctx context.Context, opts model.SubmissionListOptions) ([]model.Submission, error)
	UpdateSubmissionStatus(ctx context.Context, id string, status model.Status) error
}

// Engine owns an in-memory snapshot of the submission collection. All
// methods are safe for concurrent use; the snapshot is only ever replaced
// by the most recently issued fetch (stale responses are discarded).
type Engine struct {
	store Store

	mu      sync.Mutex
	subs    []model.Submission
	gen     uint64
	loading int
}

// New creates an Engine over the given store with an empty snapshot.
func New(store Store) *Engine {
	return &Engine{store: store}
}

// Fetch re-queries the remote collection with the given sort/filter options
// and replaces the snapshot on success. Each call is stamped with a
// generation; if another Fetch starts before this one resolves, the older
// response is dropped instead of overwriting newer data. On error the
// snapshot is left untouched. The loading flag is cleared on every path.
func (e *Engine) Fetch(ctx context.Context, opts model.SubmissionListOptions) error {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	e.loading++
	e.mu.Unlock()

	subs, err := e.store.FetchSubmissions(ctx, opts.Normalized())

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading--
	if err != nil {
		return err
	}
	if gen != e.gen {
		// A newer fetch superseded this one; its result wins.
		return nil
	}
	e.subs = subs
	return nil
}

// Loading reports whether any fetch is still in flight.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading > 0
}

// Snapshot returns a copy of the current in-memory collection in its
// server-provided order.
func (e *Engine) Snapshot() []model.Submission {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Submission, len(e.subs))
	copy(out, e.subs)
	return out
}

// Search returns the submissions whose name, email or subject contains term,
// case-insensitively. An empty term returns the full snapshot unchanged in
// order. Pure over the snapshot: no mutation, no re-fetch.
func (e *Engine) Search(term string) []model.Submission {
	return Filter(e.Snapshot(), term)
}

// Filter is the search predicate applied by Search, exposed for reuse.
func Filter(subs []model.Submission, term string) []model.Submission {
	if term == "" {
		return subs
	}
	term = strings.ToLower(term)
	out := make([]model.Submission, 0, len(subs))
	for _, s := range subs {
		if strings.Contains(strings.ToLower(s.Name), term) ||
			strings.Contains(strings.ToLower(s.Email), term) ||
			strings.Contains(strings.ToLower(s.Subject), term) {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the snapshot record with the given id.
func (e *Engine) Get(id string) (model.Submission, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.subs {
		if s.ID == id {
			return s, true
		}
	}
	return model.Submission{}, false
}

// SetStatus updates one submission remotely and, only after remote success,
// patches the matching snapshot record's status field. Review metadata is
// maintained server-side and not mirrored locally; the next full fetch picks
// it up. On failure the snapshot is unchanged.
func (e *Engine) SetStatus(ctx context.Context, id string, status model.Status) error {
	if err := e.store.UpdateSubmissionStatus(ctx, id, status); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.subs {
		if e.subs[i].ID == id {
			e.subs[i].Status = status
			break
		}
	}
	return nil
}

// Toggle flips the status of the given snapshot record and returns the new
// status. It is the single review control: pending becomes reviewed and
// reviewed becomes pending.
func (e *Engine) Toggle(ctx context.Context, id string) (model.Status, error) {
	current, ok := e.Get(id)
	if !ok {
		return "", ErrUnknownSubmission
	}
	next := current.Status.Toggled()
	if err := e.SetStatus(ctx, id, next); err != nil {
		return "", err
	}
	return next, nil
}
