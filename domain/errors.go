package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput     = errors.New("Given Param is not valid")
	ErrUnsupportedSchema = errors.New("Unsupported schema")
	ErrInvalidJsonFormat = errors.New("invalid JSON format")
	ErrInvalidChainId    = errors.New("invalid chain id")
	ErrInvalidAddress    = errors.New("Invalid address")
	ErrNotConfigured     = errors.New("not configured")
)
