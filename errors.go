package sipsub

import "github.com/ghettovoice/sipsub/internal/errorutil"

// Common errors.
const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument
)

// Subscription errors.
const (
	// ErrUnsupportedMethod is returned when a subscription creation is
	// attempted from a request that is neither SUBSCRIBE nor REFER.
	ErrUnsupportedMethod Error = "method cannot create a subscription"
	// ErrSubscriptionNotFound is returned when a request references a
	// subscription with no live match in the dialog.
	ErrSubscriptionNotFound Error = "subscription not found"
	// ErrResponseNotMatched is returned when a response's CSeq has no
	// recorded pending request.
	ErrResponseNotMatched Error = "response not matched"
	// ErrOverlappingRefresh is returned when a SUBSCRIBE or REFER arrives
	// while a previous one on the same usage still awaits its final response.
	ErrOverlappingRefresh Error = "overlapping subscription refresh"
	// ErrMissingExpires is returned when a SUBSCRIBE success response
	// carries no Expires header.
	ErrMissingExpires Error = "missing Expires header"
	// ErrManagerClosed is returned when the subscription manager was closed.
	ErrManagerClosed Error = "subscription manager closed"
)

// Error represents a subscription layer error.
// See [errorutil.Error].
type Error = errorutil.Error

// NewInvalidArgumentError creates a new error with [ErrInvalidArgument] or
// wraps provided error with [ErrInvalidArgument].
func NewInvalidArgumentError(args ...any) error {
	return errorutil.NewInvalidArgumentError(args...) //errtrace:skip
}
