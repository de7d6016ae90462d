package sipsub

import (
	"context"
	"log/slog"
	"slices"

	"braces.dev/errtrace"

	"github.com/ghettovoice/sipsub/header"
	"github.com/ghettovoice/sipsub/log"
)

// SubscriptionManagerOptions contains options for a subscription manager.
type SubscriptionManagerOptions struct {
	// Queue is the dialog's processing queue to wake after timer-driven
	// terminations. Optional.
	Queue Waker
	// Timings is the timing config that will be used with the subscriptions.
	// If zero, the default timing config will be used.
	Timings TimingConfig
	// Log is the logger that will be used with the manager.
	// If nil, the [log.Default] will be used.
	Log *slog.Logger
}

func (o *SubscriptionManagerOptions) queue() Waker {
	if o == nil {
		return nil
	}
	return o.Queue
}

func (o *SubscriptionManagerOptions) timings() TimingConfig {
	if o == nil {
		return defTimingCfg
	}
	return o.Timings
}

func (o *SubscriptionManagerOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// SubscriptionManager owns the subscription usages of one SIP dialog.
//
// The dialog layer feeds it every request and response crossing the dialog:
// RecvRequest/SentRequest match or create a [Subscription] and record the
// request's CSeq, RecvResponse/SentResponse resolve the CSeq back to the
// subscription and drive its FSM, dropping it once termination is observed.
//
// The manager is driven from the dialog's serialized processing context;
// subscription timers fire concurrently and are synchronized by the
// per-subscription lock.
type SubscriptionManager struct {
	dlg     Dialog
	queue   Waker
	timings TimingConfig
	log     *slog.Logger

	// subs keeps live subscriptions in insertion order; the CSeq tables
	// hold stable pointers into it, removed when the response is processed
	subs       []*Subscription
	uacCSeqMap map[uint32]*Subscription // locally sent request CSeq -> subscription
	uasCSeqMap map[uint32]*Subscription // peer request CSeq -> subscription
	closed     bool
}

// NewSubscriptionManager creates a subscription manager for the dialog.
func NewSubscriptionManager(dlg Dialog, opts *SubscriptionManagerOptions) (*SubscriptionManager, error) {
	if dlg == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid dialog"))
	}

	return &SubscriptionManager{
		dlg:        dlg,
		queue:      opts.queue(),
		timings:    opts.timings(),
		log:        opts.log(),
		uacCSeqMap: make(map[uint32]*Subscription),
		uasCSeqMap: make(map[uint32]*Subscription),
	}, nil
}

// Len returns the number of subscriptions held by the manager, including
// timer-terminated ones not yet reaped.
func (m *SubscriptionManager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.subs)
}

// Subscriptions returns the held subscriptions in insertion order.
func (m *SubscriptionManager) Subscriptions() []*Subscription {
	if m == nil {
		return nil
	}
	return slices.Clone(m.subs)
}

// Snapshot returns snapshots of all held subscriptions in insertion order.
func (m *SubscriptionManager) Snapshot() []*SubscriptionSnapshot {
	if m == nil {
		return nil
	}

	snaps := make([]*SubscriptionSnapshot, 0, len(m.subs))
	for _, sub := range m.subs {
		snaps = append(snaps, sub.Snapshot())
	}
	return snaps
}

// RecvRequest processes a request received from the dialog's peer.
// A SUBSCRIBE/REFER referencing no live subscription creates a new one; a
// NOTIFY referencing no live subscription is answered with 481, and a NOTIFY
// attempting to create one with 501.
func (m *SubscriptionManager) RecvRequest(ctx context.Context, req *Request) error {
	if err := req.Validate(); err != nil {
		return errtrace.Wrap(err)
	}
	if m.closed {
		return errtrace.Wrap(ErrManagerClosed)
	}

	sub, err := m.matchSubscription(ctx, req, false)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if sub == nil || sub.Terminated() {
		if err := m.dlg.Reply(ctx, req, ResponseStatusTransactionNotExist, "Subscription does not exist", nil); err != nil {
			m.log.LogAttrs(ctx, slog.LevelWarn, "reply 481 failed",
				slog.Any("request", req), slog.Any("error", err))
		}
		return errtrace.Wrap(ErrSubscriptionNotFound)
	}

	if err := sub.recvRequest(ctx, req); err != nil {
		// rejected before being admitted: no response correlation
		return errtrace.Wrap(err)
	}
	m.uasCSeqMap[req.CSeq] = sub
	return nil
}

// SentRequest processes a request the dialog layer just sent to the peer.
func (m *SubscriptionManager) SentRequest(ctx context.Context, req *Request) error {
	if err := req.Validate(); err != nil {
		return errtrace.Wrap(err)
	}
	if m.closed {
		return errtrace.Wrap(ErrManagerClosed)
	}

	sub, err := m.matchSubscription(ctx, req, true)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if sub == nil {
		// the request was already sent, nothing to report to the peer
		m.log.LogAttrs(ctx, slog.LevelError, "sent request matches no subscription",
			slog.Any("request", req))
		return errtrace.Wrap(ErrSubscriptionNotFound)
	}

	m.uacCSeqMap[req.CSeq] = sub
	sub.sentRequest(ctx, req)
	return nil
}

// RecvResponse processes a response received for a request recorded by
// [SubscriptionManager.SentRequest].
func (m *SubscriptionManager) RecvResponse(ctx context.Context, req *Request, res *Response) error {
	return errtrace.Wrap(m.responseFSM(ctx, req, res, m.uacCSeqMap))
}

// SentResponse processes a response the dialog layer sent for a request
// recorded by [SubscriptionManager.RecvRequest].
func (m *SubscriptionManager) SentResponse(ctx context.Context, req *Request, res *Response) error {
	return errtrace.Wrap(m.responseFSM(ctx, req, res, m.uasCSeqMap))
}

func (m *SubscriptionManager) responseFSM(ctx context.Context, req *Request, res *Response, cseqMap map[uint32]*Subscription) error {
	if err := req.Validate(); err != nil {
		return errtrace.Wrap(err)
	}
	if err := res.Validate(); err != nil {
		return errtrace.Wrap(err)
	}
	if m.closed {
		return errtrace.Wrap(ErrManagerClosed)
	}

	sub, ok := cseqMap[req.CSeq]
	if !ok {
		m.log.LogAttrs(ctx, slog.LevelDebug, "response matches no pending request",
			slog.Any("request", req), slog.Any("response", res))
		return errtrace.Wrap(ErrResponseNotMatched)
	}
	if res.Status.IsProvisional() {
		// final response still pending, keep the correlation
		return nil
	}
	delete(cseqMap, req.CSeq)

	sub.responseFSM(ctx, req, res)
	if sub.Terminated() {
		m.remove(ctx, sub)
	}
	return nil
}

// Terminate forces every held subscription into the terminated state, e.g.
// on dialog teardown. Subscriptions are not removed; Close drops them.
func (m *SubscriptionManager) Terminate(ctx context.Context) {
	for _, sub := range m.subs {
		sub.forceTerminate(ctx)
	}
}

// Close cancels all subscription timers and drops all state.
// The manager accepts no requests afterwards.
func (m *SubscriptionManager) Close() {
	if m == nil || m.closed {
		return
	}

	m.closed = true
	for _, sub := range m.subs {
		sub.stopTimers()
	}
	m.subs = nil
	clear(m.uacCSeqMap)
	clear(m.uasCSeqMap)
}

// matchSubscription finds the live subscription the request belongs to,
// creating one when the request may establish a new usage:
// the first SUBSCRIBE/REFER of a dialog and every REFER always create,
// REFER subscriptions are never refreshed by further REFERs.
func (m *SubscriptionManager) matchSubscription(ctx context.Context, req *Request, local bool) (*Subscription, error) {
	if m.dlg.RemoteTag() == "" || req.Method.Equal(RequestMethodRefer) || len(m.subs) == 0 {
		return errtrace.Wrap2(m.createSubscription(ctx, req, local))
	}

	var role Role
	switch {
	case req.Method.Equal(RequestMethodSubscribe):
		role = RoleNotifier
		if local {
			role = RoleSubscriber
		}
	case req.Method.Equal(RequestMethodNotify):
		// NOTIFY flows from the notifier to the subscriber
		role = RoleSubscriber
		if local {
			role = RoleNotifier
		}
	default:
		return nil, nil
	}

	raw, _ := req.Headers.Get(header.NameEvent)
	event := header.StripParams(raw)
	id := header.Param(raw, "id")

	// peer-side REFER subscriptions carry no id in their NOTIFYs:
	// match by role and event alone
	noID := id == "" && event == referEventType

	var match *Subscription
	for _, sub := range m.subs {
		if sub.role == role && sub.event == event && (noID || sub.id == id) {
			match = sub
			break
		}
	}

	if match != nil && match.Terminated() {
		m.log.LogAttrs(ctx, slog.LevelDebug, "matched terminated subscription, dropping it",
			slog.Any("subscription", match))
		m.remove(ctx, match)
		match = nil
	}

	if match == nil && req.Method.Equal(RequestMethodSubscribe) {
		return errtrace.Wrap2(m.createSubscription(ctx, req, local))
	}

	return match, nil
}

// createSubscription builds a new subscription usage from the request and
// takes one dialog usage for it. A request that cannot create a
// subscription is answered with 501 when peer-initiated.
func (m *SubscriptionManager) createSubscription(ctx context.Context, req *Request, local bool) (*Subscription, error) {
	sub, err := newSubscription(m.dlg, req, local, m.queue, m.timings, m.log)
	if err != nil {
		if !local {
			if rerr := m.dlg.Reply(ctx, req, ResponseStatusNotImplemented, "NOTIFY cannot create a subscription", nil); rerr != nil {
				m.log.LogAttrs(ctx, slog.LevelWarn, "reply 501 failed",
					slog.Any("request", req), slog.Any("error", rerr))
			}
		}
		return nil, errtrace.Wrap(err)
	}

	m.dlg.IncUsages()
	m.subs = append(m.subs, sub)

	m.log.LogAttrs(ctx, slog.LevelDebug, "subscription created",
		slog.Any("subscription", sub), slog.Any("request", req))
	return sub, nil
}

// remove drops the subscription from the collection and both CSeq tables
// and cancels its timers.
func (m *SubscriptionManager) remove(ctx context.Context, sub *Subscription) {
	if i := slices.Index(m.subs, sub); i >= 0 {
		m.subs = slices.Delete(m.subs, i, i+1)
	}
	for cseq, s := range m.uacCSeqMap {
		if s == sub {
			delete(m.uacCSeqMap, cseq)
		}
	}
	for cseq, s := range m.uasCSeqMap {
		if s == sub {
			delete(m.uasCSeqMap, cseq)
		}
	}
	sub.stopTimers()

	m.log.LogAttrs(ctx, slog.LevelDebug, "subscription removed", slog.Any("subscription", sub))
}
