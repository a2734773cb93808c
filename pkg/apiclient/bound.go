package apiclient

import (
	"context"

	"github.com/payam/backend/internal/model"
)

// Bound fixes a Client to a token source, yielding the store interface the
// review engine consumes. The token is read per call so a re-login is
// picked up without rebinding.
type Bound struct {
	client Client
	token  func() string
}

// Bind wraps client with the given token source.
func Bind(client Client, token func() string) *Bound {
	return &Bound{client: client, token: token}
}

func (b *Bound) FetchSubmissions(ctx context.Context, opts model.SubmissionListOptions) ([]model.Submission, error) {
	return b.client.ListSubmissions(ctx, b.token(), opts)
}

func (b *Bound) UpdateSubmissionStatus(ctx context.Context, id string, status model.Status) error {
	return b.client.UpdateSubmissionStatus(ctx, b.token(), id, status)
}
