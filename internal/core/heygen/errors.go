package heygen

import "errors"

var (
	// ErrUnavailable covers transport failures and provider 5xx: the call
	// may be retried by whoever owns the retry budget.
	ErrUnavailable = errors.New("heygen: provider unavailable")
	// ErrRejected is a provider client error (bad script, quota, bad
	// template). Retrying the same request will not help.
	ErrRejected = errors.New("heygen: provider rejected request")
	// ErrAuth means the configured API key is missing or was refused.
	ErrAuth = errors.New("heygen: authentication failed")
	// ErrNotFound means the provider does not know the video id.
	ErrNotFound = errors.New("heygen: video not found")
)
