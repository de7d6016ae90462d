package sipsub

import (
	"log/slog"
	"slices"

	"github.com/ghettovoice/sipsub/header"
	"github.com/ghettovoice/sipsub/internal/util"
)

// RequestMethod represents a SIP request method.
type RequestMethod string

// Request methods this core distinguishes. Any other method passes through
// untouched.
const (
	RequestMethodSubscribe RequestMethod = "SUBSCRIBE"
	RequestMethodNotify    RequestMethod = "NOTIFY"
	RequestMethodRefer     RequestMethod = "REFER"
)

// Equal checks whether the method is equal to another method.
// Comparison is case-insensitive.
func (m RequestMethod) Equal(val any) bool {
	var other RequestMethod
	switch v := val.(type) {
	case RequestMethod:
		other = v
	case *RequestMethod:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(m, other)
}

// ResponseStatus represents a SIP response status code.
type ResponseStatus int

// Response statuses produced or inspected by this core.
const (
	ResponseStatusOK                  ResponseStatus = 200
	ResponseStatusAccepted            ResponseStatus = 202 // [RFC6665]
	ResponseStatusMethodNotAllowed    ResponseStatus = 405
	ResponseStatusTransactionNotExist ResponseStatus = 481
	ResponseStatusBadEvent            ResponseStatus = 489 // [RFC6665]
	ResponseStatusServerInternalError ResponseStatus = 500
	ResponseStatusNotImplemented      ResponseStatus = 501
)

// IsProvisional reports whether the status is a provisional (1xx) status.
func (s ResponseStatus) IsProvisional() bool { return s < 200 }

// IsSuccessful reports whether the status is a final success (2xx) status.
func (s ResponseStatus) IsSuccessful() bool { return s >= 200 && s < 300 }

// IsUsageTerminating reports whether a failed transaction with this status
// also destroys the dialog usage it was sent on, per RFC 5057 Section 5.2.
func (s ResponseStatus) IsUsageTerminating() bool {
	switch s {
	case ResponseStatusMethodNotAllowed,
		ResponseStatusTransactionNotExist,
		ResponseStatusBadEvent,
		ResponseStatusNotImplemented:
		return true
	default:
		return false
	}
}

// Request is the slice of a SIP request this core reads: the method, the
// CSeq sequence number and the raw header block. The full message stays
// with the transport layer.
type Request struct {
	Method  RequestMethod  `json:"method"`
	CSeq    uint32         `json:"cseq"`
	Headers header.Headers `json:"headers,omitempty"`
}

// Validate checks the request fields for validity.
func (req *Request) Validate() error {
	if req == nil || req.Method == "" {
		return NewInvalidArgumentError("invalid request") //errtrace:skip
	}
	return nil
}

// LogValue implements [slog.LogValuer].
func (req *Request) LogValue() slog.Value {
	if req == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("method", string(req.Method)),
		slog.Uint64("cseq", uint64(req.CSeq)),
	)
}

// Response is the slice of a SIP response this core reads. CSeq and
// CSeqMethod come from the response's CSeq header and correlate it with the
// request it answers; ToTag and RouteSet are consulted only on
// dialog-forming answers.
type Response struct {
	Status     ResponseStatus `json:"status"`
	Reason     string         `json:"reason,omitempty"`
	CSeq       uint32         `json:"cseq"`
	CSeqMethod RequestMethod  `json:"cseq_method"`
	ToTag      string         `json:"to_tag,omitempty"`
	RouteSet   []string       `json:"route_set,omitempty"`
	Headers    header.Headers `json:"headers,omitempty"`
}

// Validate checks the response fields for validity.
func (res *Response) Validate() error {
	if res == nil || res.Status < 100 || res.Status > 699 {
		return NewInvalidArgumentError("invalid response") //errtrace:skip
	}
	return nil
}

// Clone returns a deep copy of the response.
func (res *Response) Clone() *Response {
	if res == nil {
		return nil
	}
	res2 := *res
	res2.RouteSet = slices.Clone(res.RouteSet)
	res2.Headers = res.Headers.Clone()
	return &res2
}

// LogValue implements [slog.LogValuer].
func (res *Response) LogValue() slog.Value {
	if res == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.Int("status", int(res.Status)),
		slog.String("cseq_method", string(res.CSeqMethod)),
		slog.Uint64("cseq", uint64(res.CSeq)),
	)
}

// isSubscribeMethod reports whether the method establishes or refreshes a
// subscription usage: SUBSCRIBE (RFC 6665) or REFER (RFC 4488).
func isSubscribeMethod(m RequestMethod) bool {
	return m.Equal(RequestMethodSubscribe) || m.Equal(RequestMethodRefer)
}
