package video

import "errors"

var (
	// ErrInvalidRequest means the caller's input is malformed (empty
	// script). Nothing was submitted to the provider.
	ErrInvalidRequest = errors.New("video: invalid request")
	// ErrNotFound means this process never issued the request id.
	ErrNotFound = errors.New("video: request not found")
)
