// Package sipsub implements the SIP event-subscription dialog-usage state
// machine defined by RFC 6665 (SUBSCRIBE/NOTIFY) and RFC 4488 (REFER
// implicit subscription), with the usage termination rules of RFC 5057.
//
// A [SubscriptionManager] tracks, within a single SIP dialog, zero or more
// independent subscriptions distinguished by event package, subscription id
// and role. The owning dialog layer feeds it every inbound/outbound request
// and response; the manager matches or creates a [Subscription], correlates
// responses back to it through per-direction CSeq tables, and each
// subscription drives its own lifecycle
//
//	init -> notify_wait -> {pending, active} -> terminated
//
// using two timers: the RFC 6665 Timer N liveness guard (64*T1) and the
// negotiated expiration timer. Entering the terminated state releases the
// subscription's dialog usage exactly once.
//
// The transport/transaction layer, the dialog itself and message parsing
// are external collaborators, consumed through the [Dialog] and [Waker]
// contracts and the light [Request]/[Response] message model.
package sipsub
