package review

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/payam/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mockStore — func-field stub for the remote collection
// ---------------------------------------------------------------------------

type mockStore struct {
	fetchFunc  func(ctx context.Context, opts model.SubmissionListOptions) ([]model.Submission, error)
	updateFunc func(ctx context.Context, id string, status model.Status) error
}

func (m *mockStore) FetchSubmissions(ctx context.Context, opts model.SubmissionListOptions) ([]model.Submission, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockStore) UpdateSubmissionStatus(ctx context.Context, id string, status model.Status) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, status)
	}
	return nil
}

func fixedSubs() []model.Submission {
	return []model.Submission{
		{ID: "1", Name: "Ali Rezaei", Email: "ali@example.com", Subject: "Website quote", Status: model.StatusPending},
		{ID: "2", Name: "Sara Ahmadi", Email: "sara@example.com", Subject: "Support", Status: model.StatusReviewed},
		{ID: "3", Name: "John Doe", Email: "john@corp.io", Subject: "Partnership", Status: model.StatusPending},
	}
}

func fetchedEngine(t *testing.T, store *mockStore) *Engine {
	t.Helper()
	if store.fetchFunc == nil {
		store.fetchFunc = func(ctx context.Context, opts model.SubmissionListOptions) ([]model.Submission, error) {
			return fixedSubs(), nil
		}
	}
	e := New(store)
	if err := e.Fetch(context.Background(), model.SubmissionListOptions{}); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	return e
}

// ---------------------------------------------------------------------------
// Fetch tests
// ---------------------------------------------------------------------------

func TestEngine_Fetch_ReplacesSnapshot(t *testing.T) {
	e := fetchedEngine(t, &mockStore{})

	snap := e.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(snap))
	}
	if e.Loading() {
		t.Error("expected loading to be cleared after fetch")
	}
}

// TestEngine_Fetch_ErrorKeepsSnapshot: a failed re-fetch must leave the
// previous collection untouched and still clear the loading flag.
func TestEngine_Fetch_ErrorKeepsSnapshot(t *testing.T) {
	store := &mockStore{}
	e := fetchedEngine(t, store)

	store.fetchFunc = func(ctx context.Context, opts model.SubmissionListOptions) ([]model.Submission, error) {
		return nil, errors.New("network down")
	}
	if err := e.Fetch(context.Background(), model.SubmissionListOptions{}); err == nil {
		t.Fatal("expected fetch error")
	}

	if len(e.Snapshot()) != 3 {
		t.Errorf("expected snapshot unchanged after failed fetch, got %d records", len(e.Snapshot()))
	}
	if e.Loading() {
		t.Error("expected loading to be cleared after a failed fetch")
	}
}

func TestEngine_Fetch_PassesNormalizedOptions(t *testing.T) {
	var gotOpts model.SubmissionListOptions
	store := &mockStore{
		fetchFunc: func(ctx context.Context, opts model.SubmissionListOptions) ([]model.Submission, error) {
			gotOpts = opts
			return nil, nil
		},
	}
	e := New(store)

	_ = e.Fetch(context.Background(), model.SubmissionListOptions{})

	if gotOpts.SortBy != model.SortByCreatedAt || gotOpts.SortOrder != model.SortDesc || gotOpts.StatusFilter != model.FilterAll {
		t.Errorf("expected default options, got %+v", gotOpts)
	}
}

// TestEngine_Fetch_StaleResponseDiscarded: when two fetches overlap, the
// response belonging to the older request must not overwrite the newer one,
// regardless of arrival order.
func TestEngine_Fetch_StaleResponseDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	calls := 0

	store := &mockStore{}
	store.fetchFunc = func(ctx context.Context, opts model.SubmissionListOptions) ([]model.Submission, error) {
		calls++
		if calls == 1 {
			close(firstStarted)
			<-releaseFirst
			return []model.Submission{{ID: "stale"}}, nil
		}
		return []model.Submission{{ID: "fresh"}}, nil
	}
	e := New(store)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = e.Fetch(context.Background(), model.SubmissionListOptions{})
	}()

	<-firstStarted
	// Second fetch starts and completes while the first is stuck.
	if err := e.Fetch(context.Background(), model.SubmissionListOptions{}); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	close(releaseFirst)
	wg.Wait()

	snap := e.Snapshot()
	if len(snap) != 1 || snap[0].ID != "fresh" {
		t.Errorf("expected the fresh response to win, got %+v", snap)
	}
}

// ---------------------------------------------------------------------------
// Search tests
// ---------------------------------------------------------------------------

func TestEngine_Search_EmptyTermReturnsAllInOrder(t *testing.T) {
	e := fetchedEngine(t, &mockStore{})

	got := e.Search("")
	if len(got) != 3 {
		t.Fatalf("expected all 3, got %d", len(got))
	}
	for i, want := range []string{"1", "2", "3"} {
		if got[i].ID != want {
			t.Errorf("position %d: expected id %s, got %s", i, want, got[i].ID)
		}
	}
}

func TestEngine_Search_CaseInsensitive(t *testing.T) {
	e := fetchedEngine(t, &mockStore{})

	got := e.Search("ALI")
	if len(got) != 1 || got[0].Name != "Ali Rezaei" {
		t.Errorf(`expected "ALI" to match Ali Rezaei, got %+v`, got)
	}
}

func TestEngine_Search_MatchesAnyOfNameEmailSubject(t *testing.T) {
	e := fetchedEngine(t, &mockStore{})

	cases := []struct {
		term string
		want []string
	}{
		{"corp.io", []string{"3"}},     // email only
		{"support", []string{"2"}},     // subject only
		{"sara", []string{"2"}},        // name only
		{"a", []string{"1", "2", "3"}}, // OR semantics across fields
		{"zzz", nil},
	}
	for _, tc := range cases {
		got := e.Search(tc.term)
		if len(got) != len(tc.want) {
			t.Errorf("term %q: expected %d matches, got %d", tc.term, len(tc.want), len(got))
			continue
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Errorf("term %q position %d: expected id %s, got %s", tc.term, i, id, got[i].ID)
			}
		}
	}
}

func TestEngine_Search_DoesNotMutateSnapshot(t *testing.T) {
	e := fetchedEngine(t, &mockStore{})

	_ = e.Search("ali")
	if len(e.Snapshot()) != 3 {
		t.Error("expected search to leave the snapshot intact")
	}
}

// ---------------------------------------------------------------------------
// SetStatus / Toggle tests
// ---------------------------------------------------------------------------

func TestEngine_SetStatus_OptimisticPatchAfterRemoteSuccess(t *testing.T) {
	store := &mockStore{}
	e := fetchedEngine(t, store)

	if err := e.SetStatus(context.Background(), "1", model.StatusReviewed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := e.Get("1")
	if !ok {
		t.Fatal("record 1 missing from snapshot")
	}
	if got.Status != model.StatusReviewed {
		t.Errorf("expected record 1 reviewed, got %q", got.Status)
	}
	// Only the status field is mirrored; review metadata stays server-side.
	if got.ReviewedBy != nil || got.ReviewedAt != nil {
		t.Error("expected review metadata not to be mirrored locally")
	}
	// Other records untouched.
	if other, _ := e.Get("2"); other.Status != model.StatusReviewed {
		t.Errorf("expected record 2 unchanged, got %q", other.Status)
	}
	if other, _ := e.Get("3"); other.Status != model.StatusPending {
		t.Errorf("expected record 3 unchanged, got %q", other.Status)
	}
}

func TestEngine_SetStatus_RemoteFailureLeavesSnapshot(t *testing.T) {
	store := &mockStore{
		updateFunc: func(ctx context.Context, id string, status model.Status) error {
			return errors.New("remote update failed")
		},
	}
	e := fetchedEngine(t, store)

	if err := e.SetStatus(context.Background(), "1", model.StatusReviewed); err == nil {
		t.Fatal("expected error")
	}

	got, _ := e.Get("1")
	if got.Status != model.StatusPending {
		t.Errorf("expected record 1 still pending, got %q", got.Status)
	}
}

func TestEngine_Toggle_RoundTrip(t *testing.T) {
	store := &mockStore{}
	e := fetchedEngine(t, store)

	next, err := e.Toggle(context.Background(), "1")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if next != model.StatusReviewed {
		t.Errorf("expected pending->reviewed, got %q", next)
	}

	next, err = e.Toggle(context.Background(), "1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if next != model.StatusPending {
		t.Errorf("expected reviewed->pending, got %q", next)
	}

	got, _ := e.Get("1")
	if got.Status != model.StatusPending {
		t.Errorf("expected round trip back to pending, got %q", got.Status)
	}
}

func TestEngine_Toggle_UnknownID(t *testing.T) {
	e := fetchedEngine(t, &mockStore{})

	if _, err := e.Toggle(context.Background(), "nope"); !errors.Is(err, ErrUnknownSubmission) {
		t.Errorf("expected ErrUnknownSubmission, got %v", err)
	}
}
