package feed

import (
	"errors"
	"fmt"
)

// Category is the normalized failure taxonomy for upstream feed calls.
type Category string

const (
	CategoryTimeout     Category = "timeout"
	CategoryBadData     Category = "bad_data"
	CategoryAuth        Category = "auth"
	CategoryOutage      Category = "outage"
	CategoryRateLimited Category = "rate_limited"
)

// FeedError wraps a failed page fetch with its category.
type FeedError struct {
	Category   Category
	Page       int
	StatusCode int
	Message    string
	Underlying error
}

func (e *FeedError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("feed page %d [%s]: %s: %v", e.Page, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("feed page %d [%s]: %s", e.Page, e.Category, e.Message)
}

func (e *FeedError) Unwrap() error {
	return e.Underlying
}

// Retryable reports whether a later attempt could succeed without any change
// on our side.
func (e *FeedError) Retryable() bool {
	switch e.Category {
	case CategoryTimeout, CategoryOutage, CategoryRateLimited:
		return true
	default:
		return false
	}
}

func newFeedError(category Category, page int, message string, underlying error) *FeedError {
	return &FeedError{
		Category:   category,
		Page:       page,
		Message:    message,
		Underlying: underlying,
	}
}

// CategoryOf extracts the category from err, or "" when err is not a FeedError.
func CategoryOf(err error) Category {
	var fe *FeedError
	if errors.As(err, &fe) {
		return fe.Category
	}
	return ""
}

// IsRetryable checks if err is a FeedError worth retrying.
func IsRetryable(err error) bool {
	var fe *FeedError
	if errors.As(err, &fe) {
		return fe.Retryable()
	}
	return false
}
