package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUpstreamData          = errors.New("upstream data error")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
