package errors

import "errors"

var (
	ErrCredentialRequired = errors.New("credential is required")
	ErrVoterNotFound      = errors.New("voter not found")
)
