package sipsub

import (
	"context"

	"github.com/ghettovoice/sipsub/header"
)

//go:generate mockgen -source=dialog.go -destination=internal/testutil/submock/dialog.go -package=submock

// Dialog is the owning SIP dialog as seen by the subscription core.
//
// The dialog reference-counts its usages: each live subscription holds one
// usage, taken on creation and released exactly once when the subscription
// reaches the terminated state. RemoteTag and the route set are adopted
// from the first dialog-forming answer to a locally sent SUBSCRIBE/REFER.
//
// Implementations are called from the dialog's serialized processing
// context and from timer goroutines; they must not call back into the
// subscription core.
type Dialog interface {
	// RemoteTag returns the dialog's remote tag, empty until established.
	RemoteTag() string
	// SetRemoteTag records the remote tag from a dialog-forming answer.
	SetRemoteTag(tag string)
	// SetRouteSet records the route set from a dialog-forming answer.
	SetRouteSet(routes []string)
	// IncUsages takes one dialog usage.
	IncUsages()
	// DecUsages releases one dialog usage. The dialog survives only while
	// it has at least one usage.
	DecUsages()
	// Reply sends a response to the given request with optional extra headers.
	Reply(ctx context.Context, req *Request, status ResponseStatus, reason string, hdrs header.Headers) error
}

// Waker posts a wake-up notification to the dialog's processing queue.
// The subscription core wakes the queue after a timer-driven termination so
// pending dialog-level cleanup is scheduled promptly.
type Waker interface {
	Wake()
}
