package domain

import "errors"

// ErrTenantNotFound means the requested tenant has no resolvable data
// store. Fatal to the calling operation, mapped to 404 at the edge.
var ErrTenantNotFound = errors.New("tenant not found")
