package domain

import "errors"

// Sentinel errors for the catalog. Handlers match on these with errors.Is
// to pick the HTTP status, so validation problems wrap ErrValidation and
// backing-store problems wrap ErrStorageUnavailable.
var (
	ErrValidation         = errors.New("validation failed")
	ErrProductNotFound    = errors.New("product not found")
	ErrStorageUnavailable = errors.New("storage unavailable: check database connection configuration")
)
