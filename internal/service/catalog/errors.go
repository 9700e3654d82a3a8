package catalog

import "errors"

var (
	ErrBusinessNotFound = errors.New("catalog: business not found")
	ErrInternal         = errors.New("catalog: internal error")
)
