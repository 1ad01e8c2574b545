package errors

import "errors"

var (
	ErrMesaNotFound       = errors.New("mesa state not found for circuit")
	ErrMesaAlreadyClosed  = errors.New("mesa is already closed")
	ErrOfficialRequired   = errors.New("closing official identifier is required")
	ErrCloseNotAuthorized = errors.New("identity is not a mesa official for this circuit")
)
