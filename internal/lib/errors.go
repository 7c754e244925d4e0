package lib

import "errors"

// Sentinel errors for the outcome kinds the API distinguishes. Lower layers
// wrap these; handlers map them to status codes and response bodies.
var (
	ErrUnauthenticated    = errors.New("caller is not authenticated")
	ErrNotFound           = errors.New("resource not found")
	ErrPersistenceFailure = errors.New("persistence failure")
)
