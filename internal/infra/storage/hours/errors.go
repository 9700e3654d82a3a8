package hours

import "errors"

var (
	ErrBuildQuery = errors.New("hours.repository: failed to build query")
	ErrExecQuery  = errors.New("hours.repository: failed to execute query")
	ErrScanRow    = errors.New("hours.repository: failed to scan row")
)
