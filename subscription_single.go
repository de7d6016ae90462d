package sipsub

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/sipsub/header"
	"github.com/ghettovoice/sipsub/internal/randutils"
	"github.com/ghettovoice/sipsub/internal/timeutil"
)

// Role identifies the local party's role in a subscription.
type Role string

const (
	// RoleSubscriber is the party that sent the SUBSCRIBE/REFER.
	RoleSubscriber Role = "subscriber"
	// RoleNotifier is the party that accepted it and sends NOTIFYs.
	RoleNotifier Role = "notifier"
)

func (r Role) String() string { return string(r) }

// SubscriptionState represents a subscription lifecycle state.
type SubscriptionState string

// Subscription lifecycle states, RFC 6665 Section 4.1.2.
const (
	SubscriptionStateInit       SubscriptionState = "init"
	SubscriptionStateNotifyWait SubscriptionState = "notify_wait"
	SubscriptionStatePending    SubscriptionState = "pending"
	SubscriptionStateActive     SubscriptionState = "active"
	SubscriptionStateTerminated SubscriptionState = "terminated"
)

func (s SubscriptionState) String() string { return string(s) }

const (
	subEvtSubscribe     = "subscribe"
	subEvtNotifyActive  = "notify_active"
	subEvtNotifyPending = "notify_pending"
	subEvtTerminate     = "terminate"
)

// referEventType is the implicit event package of REFER subscriptions, RFC 4488.
const referEventType = "refer"

// Subscription is a single subscription usage inside a SIP dialog,
// identified by its event package name, id and role.
//
// It is owned by a [SubscriptionManager] and driven through the manager's
// request/response entry points and by its own two timers: Timer N
// (RFC 6665 Section 4.1.2) and the negotiated expiration timer. Both timer
// expirations terminate the usage. The terminated state is absorbing and
// entering it releases the dialog usage exactly once.
type Subscription struct {
	// identifiers
	event string
	id    string
	role  Role

	dlg     Dialog
	queue   Waker
	timings TimingConfig
	log     *slog.Logger

	// mu guards the FSM and the pending request counter. Every
	// read-then-write of the subscription state runs under it; timer
	// callbacks take it before mutating and release it before waking the
	// dialog queue.
	mu      sync.Mutex
	fsm     *stateless.StateMachine
	pending int // in-flight SUBSCRIBE/REFER awaiting a final response

	tmrN       *timeutil.Timer
	tmrExpires *timeutil.Timer
}

// newSubscription derives the subscription identity from the request that
// creates it. Only SUBSCRIBE and REFER can create a subscription; an
// unsolicited NOTIFY cannot (RFC 6665 Section 3.2).
func newSubscription(dlg Dialog, req *Request, local bool, queue Waker, timings TimingConfig, logger *slog.Logger) (*Subscription, error) {
	role := RoleNotifier
	if local {
		role = RoleSubscriber
	}

	var event, id string
	switch {
	case req.Method.Equal(RequestMethodSubscribe):
		raw, _ := req.Headers.Get(header.NameEvent)
		event = header.StripParams(raw)
		id = header.Param(raw, "id")
	case req.Method.Equal(RequestMethodRefer):
		// TODO: honor Refer-Sub: false (RFC 4488 Section 2.2)
		event = referEventType
		id = strconv.FormatUint(uint64(req.CSeq), 10)
	default:
		return nil, errtrace.Wrap(ErrUnsupportedMethod)
	}

	sub := &Subscription{
		event:   event,
		id:      id,
		role:    role,
		dlg:     dlg,
		queue:   queue,
		timings: timings,
		log:     logger,
	}
	sub.initFSM()
	return sub, nil
}

func (s *Subscription) initFSM() {
	fsm := stateless.NewStateMachine(SubscriptionStateInit)

	fsm.Configure(SubscriptionStateInit).
		Permit(subEvtSubscribe, SubscriptionStateNotifyWait).
		Permit(subEvtNotifyActive, SubscriptionStateActive).
		Permit(subEvtNotifyPending, SubscriptionStatePending).
		Permit(subEvtTerminate, SubscriptionStateTerminated)

	fsm.Configure(SubscriptionStateNotifyWait).
		InternalTransition(subEvtSubscribe, s.actNoop).
		Permit(subEvtNotifyActive, SubscriptionStateActive).
		Permit(subEvtNotifyPending, SubscriptionStatePending).
		Permit(subEvtTerminate, SubscriptionStateTerminated)

	fsm.Configure(SubscriptionStatePending).
		InternalTransition(subEvtSubscribe, s.actNoop).
		InternalTransition(subEvtNotifyPending, s.actNoop).
		Permit(subEvtNotifyActive, SubscriptionStateActive).
		Permit(subEvtTerminate, SubscriptionStateTerminated)

	fsm.Configure(SubscriptionStateActive).
		InternalTransition(subEvtSubscribe, s.actNoop).
		InternalTransition(subEvtNotifyActive, s.actNoop).
		Permit(subEvtNotifyPending, SubscriptionStatePending).
		Permit(subEvtTerminate, SubscriptionStateTerminated)

	// terminated is absorbing: every event becomes a no-op so that timer
	// races with reply-path termination resolve to a single entry
	fsm.Configure(SubscriptionStateTerminated).
		OnEntry(s.actTerminated).
		InternalTransition(subEvtSubscribe, s.actNoop).
		InternalTransition(subEvtNotifyActive, s.actNoop).
		InternalTransition(subEvtNotifyPending, s.actNoop).
		InternalTransition(subEvtTerminate, s.actNoop)

	s.fsm = fsm
}

func (s *Subscription) actNoop(context.Context, ...any) error { return nil }

// actTerminated runs exactly once, on the single entry into terminated.
func (s *Subscription) actTerminated(ctx context.Context, _ ...any) error {
	s.log.LogAttrs(ctx, slog.LevelDebug, "subscription terminated", slog.Any("subscription", s))

	if s.tmrN.Stop() {
		s.log.LogAttrs(ctx, slog.LevelDebug, "timer N stopped", slog.Any("subscription", s))
	}
	if s.tmrExpires.Stop() {
		s.log.LogAttrs(ctx, slog.LevelDebug, "expiration timer stopped", slog.Any("subscription", s))
	}

	s.dlg.DecUsages()
	return nil
}

// mustFire fires an FSM trigger that is configured for every state.
// Caller must hold the mutex.
func (s *Subscription) mustFire(ctx context.Context, trigger string) {
	if err := s.fsm.FireCtx(ctx, trigger); err != nil {
		panic(fmt.Errorf("fire %q in state %q: %w", trigger, s.stateUnsafe(), err))
	}
}

func (s *Subscription) stateUnsafe() SubscriptionState {
	return s.fsm.MustState().(SubscriptionState) //nolint:forcetypeassert
}

// terminateUnsafe moves the subscription into terminated.
// Caller must hold the mutex. Idempotent.
func (s *Subscription) terminateUnsafe(ctx context.Context) {
	s.mustFire(ctx, subEvtTerminate)
}

// Event returns the subscription's event package name.
func (s *Subscription) Event() string { return s.event }

// ID returns the subscription's id, empty when the Event header had none.
func (s *Subscription) ID() string { return s.id }

// Role returns the local party's role for the subscription.
func (s *Subscription) Role() Role { return s.role }

// State returns the current subscription state.
func (s *Subscription) State() SubscriptionState {
	if s == nil {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateUnsafe()
}

// Terminated reports whether the subscription reached the terminated state.
func (s *Subscription) Terminated() bool {
	return s.State() == SubscriptionStateTerminated
}

// LogValue implements [slog.LogValuer].
func (s *Subscription) LogValue() slog.Value {
	if s == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("event", s.event),
		slog.String("id", s.id),
		slog.String("role", string(s.role)),
	)
}

// recvRequest processes a peer-initiated SUBSCRIBE/REFER or NOTIFY on this
// usage. An overlapping SUBSCRIBE/REFER while a previous one awaits its
// final response is rejected with 500 and a small random Retry-After,
// leaving the usage state untouched.
func (s *Subscription) recvRequest(ctx context.Context, req *Request) error {
	if isSubscribeMethod(req.Method) {
		s.mu.Lock()
		if s.pending > 0 {
			s.mu.Unlock()

			retry := &header.RetryAfter{Delay: time.Duration(randutils.RandInt(10)) * time.Second}
			hdrs := header.Headers{}.Add(retry.CanonicName(), retry.String())
			if err := s.dlg.Reply(ctx, req, ResponseStatusServerInternalError, "Server Internal Error", hdrs); err != nil {
				s.log.LogAttrs(ctx, slog.LevelWarn, "reply 500 failed",
					slog.Any("subscription", s), slog.Any("error", err))
			}
			return errtrace.Wrap(ErrOverlappingRefresh)
		}
		s.pending++
		s.requestFSMUnsafe(ctx, req)
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.requestFSMUnsafe(ctx, req)
	s.mu.Unlock()
	return nil
}

// sentRequest processes a locally originated SUBSCRIBE/REFER or NOTIFY on
// this usage. The request was already sent; overlap policing belongs to the
// sender.
func (s *Subscription) sentRequest(ctx context.Context, req *Request) {
	s.mu.Lock()
	if isSubscribeMethod(req.Method) {
		s.pending++
	}
	s.requestFSMUnsafe(ctx, req)
	s.mu.Unlock()
}

// requestFSMUnsafe runs the shared request transition: establishing or
// refreshing a usage moves init to notify_wait and always re-starts the
// Timer N liveness guard. Caller must hold the mutex.
func (s *Subscription) requestFSMUnsafe(ctx context.Context, req *Request) {
	if !isSubscribeMethod(req.Method) {
		return
	}

	s.mustFire(ctx, subEvtSubscribe)
	s.armTimerNUnsafe(ctx)
}

func (s *Subscription) armTimerNUnsafe(ctx context.Context) {
	d := s.timings.TimeN()
	if s.tmrN == nil {
		s.tmrN = timeutil.AfterFunc(d, s.timerHdlr(ctx, "timer N"))
	} else {
		s.tmrN.Reset(d)
	}

	s.log.LogAttrs(ctx, slog.LevelDebug,
		"timer N started",
		slog.Any("subscription", s),
		slog.Time("expires_at", time.Now().Add(d)),
	)
}

func (s *Subscription) armTimerExpiresUnsafe(ctx context.Context, d time.Duration) {
	if s.tmrExpires == nil {
		s.tmrExpires = timeutil.AfterFunc(d, s.timerHdlr(ctx, "expiration timer"))
	} else {
		s.tmrExpires.Reset(d)
	}

	s.log.LogAttrs(ctx, slog.LevelDebug,
		"expiration timer started",
		slog.Any("subscription", s),
		slog.Time("expires_at", time.Now().Add(d)),
	)
}

// timerHdlr builds the fire callback shared by both timers: terminate the
// usage and wake the dialog queue. The callback runs on the timer
// goroutine, concurrently with the dialog's processing context.
func (s *Subscription) timerHdlr(ctx context.Context, name string) func() {
	return func() {
		s.log.LogAttrs(ctx, slog.LevelDebug, name+" expired", slog.Any("subscription", s))

		s.mu.Lock()
		s.terminateUnsafe(ctx)
		s.mu.Unlock()

		if s.queue != nil {
			s.queue.Wake()
		}
	}
}

// responseFSM processes a final response for a request previously recorded
// on this usage, for both directions. Provisional responses are ignored.
func (s *Subscription) responseFSM(ctx context.Context, req *Request, res *Response) {
	if res.Status.IsProvisional() {
		return
	}

	switch {
	case isSubscribeMethod(req.Method):
		s.subscribeResponseFSM(ctx, req, res)
	case res.CSeqMethod.Equal(RequestMethodNotify):
		s.notifyResponseFSM(ctx, req, res)
	}
}

func (s *Subscription) subscribeResponseFSM(ctx context.Context, _ *Request, res *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !res.Status.IsSuccessful() {
		if s.stateUnsafe() == SubscriptionStateNotifyWait {
			// initial SUBSCRIBE/REFER failed
			s.terminateUnsafe(ctx)
		} else if res.Status.IsUsageTerminating() {
			// subscription refresh failed, RFC 5057: terminate usage;
			// any other failure fails the transaction only
			s.terminateUnsafe(ctx)
		}
		s.pending--
		return
	}

	// set dialog identifier if not yet set
	if s.dlg.RemoteTag() == "" {
		s.dlg.SetRemoteTag(res.ToTag)
		s.dlg.SetRouteSet(res.RouteSet)
	}

	raw, ok := res.Headers.Get(header.NameExpires)
	var exp *header.Expires
	if ok {
		// unparsable degrades to absent
		exp, _ = header.ParseExpires(raw)
	}

	switch {
	case exp != nil && exp.Duration > 0:
		s.armTimerExpiresUnsafe(ctx, exp.Duration)
	case exp != nil:
		// zero Expires: timer N is re-armed on each SUBSCRIBE anyway
		s.log.LogAttrs(ctx, slog.LevelDebug, "Expires header equals 0", slog.Any("subscription", s))
	case res.CSeqMethod.Equal(RequestMethodSubscribe):
		// replies to SUBSCRIBE must carry an Expires header,
		// RFC 6665 Section 4.2.1.1
		s.log.LogAttrs(ctx, slog.LevelWarn, "success response without Expires header",
			slog.Any("subscription", s), slog.Any("error", error(ErrMissingExpires)))
		s.terminateUnsafe(ctx)
	}

	s.pending--
}

func (s *Subscription) notifyResponseFSM(ctx context.Context, req *Request, res *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !res.Status.IsSuccessful() {
		if res.Status.IsUsageTerminating() {
			// RFC 5057: terminate usage
			s.terminateUnsafe(ctx)
		}
		return
	}

	// the Subscription-State of the NOTIFY that produced this response
	raw, _ := req.Headers.Get(header.NameSubscriptionState)
	ss, err := header.ParseSubscriptionState(raw)

	switch {
	case err == nil && ss.HasExpires && ss.Expires > 0 && ss.IsActive():
		s.mustFire(ctx, subEvtNotifyActive)
	case err == nil && ss.HasExpires && ss.Expires > 0 && ss.IsPending():
		s.mustFire(ctx, subEvtNotifyPending)
	default:
		// terminated, unknown token, or zero/absent expires
		s.terminateUnsafe(ctx)
		return
	}

	// liveness proven by NOTIFY: kill timer N, reset the expiration timer
	if s.tmrN.Stop() {
		s.log.LogAttrs(ctx, slog.LevelDebug, "timer N stopped", slog.Any("subscription", s))
	}
	s.armTimerExpiresUnsafe(ctx, ss.Expires)
}

// forceTerminate terminates the usage regardless of its state, e.g. on
// dialog teardown.
func (s *Subscription) forceTerminate(ctx context.Context) {
	s.mu.Lock()
	s.terminateUnsafe(ctx)
	s.mu.Unlock()
}

// stopTimers cancels both timers. Idempotent; always called before the
// subscription is dropped from the manager.
func (s *Subscription) stopTimers() {
	s.tmrN.Stop()
	s.tmrExpires.Stop()
}

// SubscriptionSnapshot represents an observable snapshot of a subscription.
type SubscriptionSnapshot struct {
	// Time is the snapshot timestamp.
	Time time.Time `json:"time"`
	// Event is the event package name.
	Event string `json:"event"`
	// ID is the subscription id.
	ID string `json:"id,omitempty"`
	// Role is the local party's role.
	Role Role `json:"role"`
	// State is the current subscription state.
	State SubscriptionState `json:"state"`
	// PendingRequests counts in-flight SUBSCRIBE/REFER requests.
	PendingRequests int `json:"pending_requests,omitempty"`
	// TimerNLeft is the time remaining on Timer N, 0 when not running.
	TimerNLeft time.Duration `json:"timer_n_left,omitempty"`
	// ExpiresLeft is the time remaining on the expiration timer, 0 when not running.
	ExpiresLeft time.Duration `json:"expires_left,omitempty"`
}

// Snapshot returns a snapshot of the subscription state.
func (s *Subscription) Snapshot() *SubscriptionSnapshot {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return &SubscriptionSnapshot{
		Time:            time.Now(),
		Event:           s.event,
		ID:              s.id,
		Role:            s.role,
		State:           s.stateUnsafe(),
		PendingRequests: s.pending,
		TimerNLeft:      s.tmrN.Left(),
		ExpiresLeft:     s.tmrExpires.Left(),
	}
}
