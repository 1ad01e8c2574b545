package errors

import "errors"

var (
	ErrRequesterRequired = errors.New("requester identifier is required")
	ErrCircuitNotFound   = errors.New("circuit has no mesa state")
	ErrResultsNotVisible = errors.New("results available only once the mesa is closed")
)
