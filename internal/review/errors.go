package review

import "errors"

// ErrUnknownSubmission is returned by Toggle when the id is not present in
// the current snapshot.
var ErrUnknownSubmission = errors.New("submission not in current snapshot")
