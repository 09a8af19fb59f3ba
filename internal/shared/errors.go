package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrNotAuthenticated  = fmt.Errorf("not authenticated")
	ErrSessionUnresolved = fmt.Errorf("session bootstrap has not resolved")
	ErrLoginFailed       = fmt.Errorf("login failed")

	// API errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Cache and mutation errors
	ErrMutationPending    = fmt.Errorf("mutation already in flight")
	ErrDependencyNotReady = fmt.Errorf("dependent cache key not resolved")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
