package catalog

import "errors"

var (
	ErrServiceNotFound = errors.New("catalog.repository: service not found")
	ErrStaffNotFound   = errors.New("catalog.repository: staff member not found")
	ErrBuildQuery      = errors.New("catalog.repository: failed to build query")
	ErrExecQuery       = errors.New("catalog.repository: failed to execute query")
	ErrScanRow         = errors.New("catalog.repository: failed to scan row")
)
