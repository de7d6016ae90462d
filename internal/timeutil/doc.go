// Package timeutil provides Timer, a one-shot re-armable timer built on
// time.AfterFunc for long-lived protocol timeouts such as SIP subscription
// expiration.
//
// A Timer fires its callback at most once per arm. Reset re-arms the timer
// and cancels any pending fire from the previous arm; Stop is an idempotent
// cancellation. Stopping a timer whose fire callback is already queued for
// dispatch is a safe no-op on both sides: whichever operation observes the
// timer first wins.
//
// All timer operations are thread-safe and can be called concurrently from
// multiple goroutines.
package timeutil
