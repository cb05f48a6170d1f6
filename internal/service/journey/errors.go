package journey

import "errors"

// Sentinel errors for the journey service layer.
var (
	ErrTenantNotFound = errors.New("tenant not found")
)
