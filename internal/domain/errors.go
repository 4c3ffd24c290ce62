package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrMissingOwner is returned when a request carries no owner identity
	ErrMissingOwner = errors.New("owner identity missing")

	// ErrItemNotFound is returned when an inventory row or shopping entry does not exist
	ErrItemNotFound = errors.New("item not found")

	// ErrRecipeNotFound is returned when the recipe catalog has no matching recipe
	ErrRecipeNotFound = errors.New("recipe not found in catalog")

	// ErrProviderFailure is returned when a recipe catalog request fails
	ErrProviderFailure = errors.New("recipe provider request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrStorageUnavailable is returned when the persistent store cannot be reached
	ErrStorageUnavailable = errors.New("storage unavailable")
)
